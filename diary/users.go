package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mattn/go-sqlite3"
)

// CreateUser inserts a new user row. The password hash is opaque to the
// store. Returns UsernameTaken when the username unique constraint on
// users.username fires; every other storage failure is wrapped as-is.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, createdAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`insert into users (username, username_hash64, password_hash, created_at) values (?, ?, ?, ?)`,
		username, usernameHash(username), passwordHash, createdAt)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) &&
			serr.ExtendedCode == sqlite3.ErrConstraintUnique &&
			strings.Contains(serr.Error(), "users.username") {
			return UsernameTaken{Username: username}
		}
		return fmt.Errorf("unable to store user, cause %w", err)
	}
	return nil
}

// LookupUser finds a user by exact username. A missing user is not an
// error: the returned pointer is nil.
func (s *Store) LookupUser(ctx context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var u User
	err := s.db.QueryRowContext(ctx,
		`select id, username, password_hash, created_at from users where username_hash64 = ? and username = ?`,
		usernameHash(username), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("unable to lookup user, cause %w", err)
	}
	return &u, nil
}

func usernameHash(username string) int64 {
	return int64(xxhash.Sum64String(username))
}
