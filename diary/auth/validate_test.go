package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	type testCase struct {
		username string
		valid    bool
	}
	for _, tc := range []testCase{
		{"bob", true},
		{"alice42", true},
		{"a.b-c_d9", true},
		{"Alice.Smith", true},
		{"abcdefghijklmnopqrst", true}, // 20 chars
		{"ab", false},                  // too short
		{"abcdefghijklmnopqrstu", false}, // 21 chars
		{"9lives", false},              // must start with a letter
		{"_bob", false},
		{"bob_", false}, // must end with a letter or digit
		{"bob.", false},
		{"bo b", false},
		{"böb1", false},
		// shape-valid but with consecutive specials, caught by the second pass
		{"a..b", false},
		{"a._b", false},
		{"a-_b", false},
		{"a__b", false},
		{"a.-b", false},
		{"a--b", false},
	} {
		err := ValidateUsername(tc.username)
		if tc.valid {
			assert.NoError(t, err, "username %q should be valid", tc.username)
		} else {
			assert.Error(t, err, "username %q should be rejected", tc.username)
			assert.IsType(t, ValidationError{}, err)
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	type testCase struct {
		password string
		valid    bool
	}
	for _, tc := range []testCase{
		{"Abcdef1!", true},
		{"sup3r-Secret", true},
		{"Ab1!xyzw", true},
		{"Ab1!xyz", false},      // 7 chars
		{"abcdef1!", false},     // no uppercase
		{"ABCDEF1!", false},     // no lowercase
		{"Abcdefg!", false},     // no digit
		{"Abcdefg1", false},     // no symbol
		{"", false},
	} {
		err := ValidatePasswordStrength(tc.password)
		if tc.valid {
			assert.NoError(t, err, "password %q should be valid", tc.password)
		} else {
			assert.Error(t, err, "password %q should be rejected", tc.password)
		}
	}
}
