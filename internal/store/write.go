// write.go implements key and value mutations.
//
// Every write validates its input first; the store is the persistence
// boundary. Multi-row changes (ancestor creation, subtree removal) run in a
// single transaction so a failure never leaves half a tree behind.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/hive/internal/path"
	"github.com/jpl-au/hive/internal/validate"
)

// CreateKey creates p and any missing ancestors. Existing keys keep the case
// they were created with.
func (s *SQLiteStore) CreateKey(ctx context.Context, p string, opts WriteOptions) (bool, error) {
	p, err := validate.Path(p, opts.MaxPath)
	if err != nil {
		return false, err
	}
	var created bool
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		_, created, err = ensureKey(ctx, tx, p, time.Now().Unix())
		return err
	})
	return created, err
}

// ensureKey creates the missing keys along p and returns p as stored.
func ensureKey(ctx context.Context, tx *sql.Tx, p string, now int64) (string, bool, error) {
	parts := strings.Split(p, path.Sep)
	cur := parts[0]
	created := false
	for _, name := range parts[1:] {
		child := cur + path.Sep + name
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO keys (path, parent, name, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`, child, cur, name, now, now)
		if err != nil {
			return "", false, fmt.Errorf("create key %s: %w", child, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return "", false, fmt.Errorf("create key %s: %w", child, err)
		}
		created = n > 0
		if err := tx.QueryRowContext(ctx, `SELECT path FROM keys WHERE path = ?`, child).Scan(&cur); err != nil {
			return "", false, fmt.Errorf("resolve key %s: %w", child, err)
		}
	}
	return cur, created, nil
}

// SetValue creates or replaces the value called name at key p. An empty name
// sets the default value.
func (s *SQLiteStore) SetValue(ctx context.Context, p, name, typ, data string, opts WriteOptions) error {
	p, err := validate.Path(p, opts.MaxPath)
	if err != nil {
		return err
	}
	if err := validate.ValueName(name); err != nil {
		return err
	}
	typ, err = validate.Type(typ)
	if err != nil {
		return err
	}
	if err := validate.Data(typ, data, opts.MaxData); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		stored, _, err := ensureKey(ctx, tx, p, now)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO key_values (key_path, name, type, data, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(key_path, name) DO UPDATE SET
				type = excluded.type, data = excluded.data, updated_at = excluded.updated_at`,
			stored, name, typ, data, now)
		if err != nil {
			return fmt.Errorf("set value %s [%s]: %w", p, name, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE keys SET updated_at = ? WHERE path = ?`, now, stored); err != nil {
			return fmt.Errorf("touch key %s: %w", p, err)
		}
		return nil
	})
}

// DeleteKey removes p, every key below it and all their values.
func (s *SQLiteStore) DeleteKey(ctx context.Context, p string) (int64, error) {
	p, err := validate.Path(p, 0)
	if err != nil {
		return 0, err
	}
	if path.IsRoot(p) {
		return 0, fmt.Errorf("%w: %s", ErrRootKey, p)
	}

	prefix := p + path.Sep
	var total int64
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM keys WHERE path = ?`, p).Scan(&n); err != nil {
			return fmt.Errorf("check key %s: %w", p, err)
		}
		if n == 0 {
			return ErrNotFound
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM key_values
			WHERE key_path = ? OR substr(key_path, 1, ?) = ? COLLATE NOCASE`, p, len(prefix), prefix)
		if err != nil {
			return fmt.Errorf("delete values below %s: %w", p, err)
		}
		if c, err := res.RowsAffected(); err == nil {
			total += c
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM keys
			WHERE path = ? OR substr(path, 1, ?) = ? COLLATE NOCASE`, p, len(prefix), prefix)
		if err != nil {
			return fmt.Errorf("delete keys below %s: %w", p, err)
		}
		if c, err := res.RowsAffected(); err == nil {
			total += c
		}

		parent := path.Parent(p)
		if _, err := tx.ExecContext(ctx, `UPDATE keys SET updated_at = ? WHERE path = ? AND parent <> ''`,
			time.Now().Unix(), parent); err != nil {
			return fmt.Errorf("touch key %s: %w", parent, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteValue removes the value called name at key p. It returns
// ErrNotFound when the key is missing and ErrValueNotFound when only the
// value is.
func (s *SQLiteStore) DeleteValue(ctx context.Context, p, name string) error {
	p, err := validate.Path(p, 0)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM key_values WHERE key_path = ? AND name = ?`, p, name)
	if err != nil {
		return fmt.Errorf("delete value %s [%s]: %w", p, name, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete value %s [%s]: %w", p, name, err)
	}
	if rows > 0 {
		return nil
	}
	ok, err := s.Exists(ctx, p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return ErrValueNotFound
}
