package auth

import (
	"context"
	"errors"
	"time"

	"github.com/selfdiary/selfdiary/diary"
)

// ErrInvalidCredentials is the single login failure visible to callers,
// regardless of which step actually failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Register creates a new account. Validation runs before any hashing so a
// bad username never costs an argon2 derivation. The first failure wins:
// ValidationError, diary.UsernameTaken or a wrapped storage error.
func Register(ctx context.Context, store *diary.Store, username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return store.CreateUser(ctx, username, hash, time.Now().Format(diary.TimestampLayout))
}

// Login checks the credentials and, on success, returns the identity to
// bind into the session. A missing user and a failed verification are
// deliberately indistinguishable.
func Login(ctx context.Context, store *diary.Store, username, password string) (int64, string, error) {
	user, err := store.LookupUser(ctx, username)
	if err != nil {
		return 0, "", err
	}
	if user == nil {
		return 0, "", ErrInvalidCredentials
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return 0, "", ErrInvalidCredentials
	}
	return user.ID, user.Username, nil
}
