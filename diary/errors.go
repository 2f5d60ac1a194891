package diary

import "fmt"

type (
	// UsernameTaken reports a registration conflict on the unique
	// username column.
	UsernameTaken struct {
		Username string
	}
)

func (u UsernameTaken) Error() string {
	return fmt.Sprintf("username %v is already taken", u.Username)
}
