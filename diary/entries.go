package diary

import (
	"context"
	"fmt"
)

// AddEntry stores a new entry owned by userID. recordingsMap is kept
// verbatim; callers are expected to hand in a serialized structure.
func (s *Store) AddEntry(ctx context.Context, userID int64, content, recordingsMap, createdAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`insert into entries (user_id, content, recordings_map, created_at) values (?, ?, ?, ?)`,
		userID, content, recordingsMap, createdAt)
	if err != nil {
		return fmt.Errorf("unable to store entry, cause %w", err)
	}
	return nil
}

// EditEntry rewrites content and recordings of the entry, but only when
// the entry exists and belongs to userID. A non-matching id/owner pair is
// not an error: nothing happens and zero affected rows are reported.
func (s *Store) EditEntry(ctx context.Context, userID, entryID int64, content, recordingsMap string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx,
		`update entries set content = ?, recordings_map = ? where id = ? and user_id = ?`,
		content, recordingsMap, entryID, userID)
	if err != nil {
		return 0, fmt.Errorf("unable to update entry %v, cause %w", entryID, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteEntry removes the entry scoped by the same id+owner predicate as
// EditEntry, with the same silent no-op on a non-match.
func (s *Store) DeleteEntry(ctx context.Context, userID, entryID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteEntryLocked(ctx, userID, entryID)
}

func (s *Store) deleteEntryLocked(ctx context.Context, userID, entryID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`delete from entries where id = ? and user_id = ?`,
		entryID, userID)
	if err != nil {
		return 0, fmt.Errorf("unable to delete entry %v, cause %w", entryID, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteEntries deletes the given ids one statement at a time, in order,
// without a wrapping transaction. The first failing delete stops the loop
// and its error is returned; earlier deletes stay deleted and later ids
// are never attempted.
func (s *Store) DeleteEntries(ctx context.Context, userID int64, entryIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range entryIDs {
		if _, err := s.deleteEntryLocked(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

// ListEntries returns every entry owned by userID whose creation date
// matches the filter. No ordering is imposed beyond whatever the scan
// produces.
func (s *Store) ListEntries(ctx context.Context, userID int64, filter DateFilter) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	query := `select id, user_id, content, recordings_map, created_at from entries where user_id = ?`
	args := []interface{}{userID}
	clause, filterArgs := filter.clause()
	query += clause
	args = append(args, filterArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list entries, cause %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		err = rows.Scan(&e.ID, &e.UserID, &e.Content, &e.RecordingsMap, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("unable to scan entry row, cause %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to list entries, cause %w", err)
	}
	return out, nil
}
