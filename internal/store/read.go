// read.go implements key and value retrieval for the SQLite store.
//
// Lookups are case-insensitive through the NOCASE collation on path
// columns. Paths handed in are expected to be normalised already; the
// service layer does that before calling the store.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jpl-au/hive/internal/path"
)

// Key returns the key at p.
func (s *SQLiteStore) Key(ctx context.Context, p string) (*Key, error) {
	k, err := scanKey(s.db.QueryRowContext(ctx, `SELECT `+keyCols+` FROM keys WHERE path = ?`, p))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get key %s: %w", p, err)
	}
	return &k, nil
}

// Exists reports whether a key exists at p.
func (s *SQLiteStore) Exists(ctx context.Context, p string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM keys WHERE path = ?`, p).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", p, err)
	}
	return n > 0, nil
}

// Roots returns the root paths of the selected views in display order.
// Roots are seeded by the schema, so they always exist.
func (s *SQLiteStore) Roots(_ context.Context, std, real bool) ([]string, error) {
	return path.Roots(std, real), nil
}

// Subkeys returns the direct children of p ordered case-insensitively by name.
func (s *SQLiteStore) Subkeys(ctx context.Context, p string) ([]Key, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+keyCols+` FROM keys
		WHERE parent = ? ORDER BY name COLLATE NOCASE, name`, p)
	if err != nil {
		return nil, fmt.Errorf("list subkeys of %s: %w", p, err)
	}
	defer rows.Close()
	return scanKeys(rows)
}

// Descendants returns every key strictly below p ordered by path.
func (s *SQLiteStore) Descendants(ctx context.Context, p string) ([]Key, error) {
	prefix := p + path.Sep
	rows, err := s.db.QueryContext(ctx, `SELECT `+keyCols+` FROM keys
		WHERE substr(path, 1, ?) = ? COLLATE NOCASE
		ORDER BY path COLLATE NOCASE`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys below %s: %w", p, err)
	}
	defer rows.Close()
	return scanKeys(rows)
}

// Values returns the values of p with the default value first, then by name.
func (s *SQLiteStore) Values(ctx context.Context, p string) ([]Value, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+valueCols+` FROM key_values
		WHERE key_path = ? ORDER BY name <> '', name COLLATE NOCASE`, p)
	if err != nil {
		return nil, fmt.Errorf("list values of %s: %w", p, err)
	}
	defer rows.Close()
	return scanValues(rows)
}

// Value returns the value called name at key p.
func (s *SQLiteStore) Value(ctx context.Context, p, name string) (*Value, error) {
	v, err := scanValue(s.db.QueryRowContext(ctx, `SELECT `+valueCols+` FROM key_values
		WHERE key_path = ? AND name = ?`, p, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrValueNotFound
		}
		return nil, fmt.Errorf("get value %s [%s]: %w", p, name, err)
	}
	return &v, nil
}
