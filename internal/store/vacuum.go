// vacuum.go implements database compaction.
//
// Deletes are immediate, so the only thing left behind is free pages in
// the database file. Vacuum rebuilds the file and truncates the WAL.

package store

import (
	"context"
	"fmt"
	"os"
)

// Vacuum rebuilds the database file and returns the number of bytes
// reclaimed, or 0 when the size cannot be determined.
func (s *SQLiteStore) Vacuum(ctx context.Context) (int64, error) {
	before := s.fileSize(ctx)
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return 0, fmt.Errorf("vacuum: %w", err)
	}
	if err := s.Checkpoint(ctx); err != nil {
		return 0, err
	}
	after := s.fileSize(ctx)
	if before <= after {
		return 0, nil
	}
	return before - after, nil
}

// fileSize returns the size of the main database file.
func (s *SQLiteStore) fileSize(ctx context.Context) int64 {
	var seq int
	var name, file string
	if err := s.db.QueryRowContext(ctx, `PRAGMA database_list`).Scan(&seq, &name, &file); err != nil || file == "" {
		return 0
	}
	info, err := os.Stat(file)
	if err != nil {
		return 0
	}
	return info.Size()
}
