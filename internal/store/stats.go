// stats.go implements aggregate queries for operational visibility.

package store

import (
	"context"
	"fmt"
)

// Stats returns key and value counts. Roots are not counted.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `SELECT
			(SELECT COUNT(*) FROM keys WHERE parent <> ''),
			(SELECT COUNT(*) FROM key_values),
			(SELECT COALESCE(SUM(length(data)), 0) FROM key_values),
			(SELECT COALESCE(MAX(updated_at), 0) FROM keys)`).
		Scan(&st.Keys, &st.Values, &st.DataBytes, &st.Newest)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}
