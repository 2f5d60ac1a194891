package auth

import (
	"regexp"
	"strings"
)

type (
	// ValidationError carries a client-correctable message about a bad
	// username or password shape.
	ValidationError struct {
		Message string
	}
)

func (v ValidationError) Error() string {
	return v.Message
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]{1,18}[a-zA-Z0-9]$`)

// ValidateUsername checks the username shape: 3 to 20 characters, starts
// with a letter, ends with a letter or digit, interior limited to letters,
// digits and . _ -. The regexp alone still admits runs like "a..b", so a
// second pass rejects any two consecutive special characters.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ValidationError{Message: "Invalid username format."}
	}
	special := func(b byte) bool {
		return b == '.' || b == '_' || b == '-'
	}
	for i := 0; i+1 < len(username); i++ {
		if special(username[i]) && special(username[i+1]) {
			return ValidationError{Message: "Username cannot have consecutive special characters."}
		}
	}
	return nil
}

// ValidatePasswordStrength requires length >= 8 plus at least one ASCII
// uppercase letter, one lowercase letter, one digit and one symbol. All
// four requirements are checked; callers get a single generic message.
func ValidatePasswordStrength(password string) error {
	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if len(password) < 8 || !upper || !lower || !digit || !symbol {
		return ValidationError{Message: strings.Join([]string{
			"Password must be at least 8 characters long,",
			"contain upper and lower case letters, a digit, and a special character",
		}, " ")}
	}
	return nil
}
