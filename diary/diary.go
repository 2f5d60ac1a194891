// Package diary implements the storage core of the journal service:
// user rows, entry rows and the date-filtered entry queries.
//
// All operations go through a single shared sqlite handle guarded by one
// exclusive lock, so storage access is serialized process-wide. Ownership
// scoping happens at statement level: every entry operation takes an
// explicit user id and its predicate never matches rows of another user.
package diary

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

type (
	// Store owns the shared sqlite handle. Safe for concurrent use,
	// at the price of fully serialized statements.
	Store struct {
		mu sync.Mutex
		db *sql.DB
	}

	// User is a registered account as persisted.
	User struct {
		ID           int64  `json:"id"`
		Username     string `json:"username"`
		PasswordHash string `json:"-"`
		CreatedAt    string `json:"created_at"`
	}

	// Entry is a journal entry as persisted. RecordingsMap is an opaque
	// serialized payload, stored and returned verbatim.
	Entry struct {
		ID            int64  `json:"id"`
		UserID        int64  `json:"user_id"`
		Content       string `json:"content"`
		RecordingsMap string `json:"recordings_map"`
		CreatedAt     string `json:"created_at"`
	}
)

// TimestampLayout is how created_at columns are encoded. The layout keeps
// sqlite's DATE() able to extract the date component.
const TimestampLayout = "2006-01-02 15:04:05"

// Open opens (creating if needed) the diary database at path and ensures
// the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	connstr := fmt.Sprintf("file:%v?_journal=wal&_fk=on&mode=rwc", path)
	db, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open diary database %v, cause %w", path, err)
	}
	// one handle that everyone waits on, see Store docs
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping diary database %v, cause %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to init diary database %v, cause %w", path, err)
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	for _, cmd := range []string{
		`create table if not exists users(
			id integer not null primary key,
			username text not null unique,
			username_hash64 integer not null,
			password_hash text not null,
			created_at text not null
		)`,
		`create index if not exists idx_users_username_hash64
			on users(username_hash64)
		`,
		`create table if not exists entries(
			id integer not null primary key,
			user_id integer not null,
			content text not null,
			recordings_map text default '[]',
			created_at text not null,
			foreign key(user_id) references users(id)
		)`,
	} {
		_, err := s.db.ExecContext(ctx, cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
