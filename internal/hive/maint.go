// maint.go implements database maintenance.

package hive

import "context"

// Vacuum rebuilds the database file and returns the bytes reclaimed.
func (s *Service) Vacuum(ctx context.Context) (int64, error) {
	return s.store.Vacuum(ctx)
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
