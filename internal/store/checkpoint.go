// checkpoint.go flushes the WAL into the database file. Vacuum calls it so
// the size it reports is the size on disk, and Close calls it so a closed
// store leaves no -wal or -shm files behind.

package store

import (
	"context"
	"fmt"
)

// Checkpoint copies the WAL into the database file and truncates it.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
