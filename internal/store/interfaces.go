// interfaces.go defines the storage abstraction for the key tree.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (Reader, Writer,
// Maintainer) so consumers only depend on the capabilities they need.
//
// Deletes are immediate. Removing a key removes its whole subtree and every
// value in it.

package store

import (
	"context"
	"database/sql"
)

// Reader defines read-only operations on keys and values.
type Reader interface {
	// Key returns the key at path. Returns ErrNotFound if it does not exist.
	Key(ctx context.Context, path string) (*Key, error)

	// Exists reports whether a key exists without loading it.
	Exists(ctx context.Context, path string) (bool, error)

	// Roots returns the root paths of the selected views.
	Roots(ctx context.Context, std, real bool) ([]string, error)

	// Subkeys returns the direct children of path ordered by name.
	Subkeys(ctx context.Context, path string) ([]Key, error)

	// Descendants returns every key below path ordered by path.
	Descendants(ctx context.Context, path string) ([]Key, error)

	// Values returns the values of a key, default value first, then by name.
	Values(ctx context.Context, path string) ([]Value, error)

	// Value returns a single value. Returns ErrValueNotFound if absent.
	Value(ctx context.Context, path, name string) (*Value, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify the tree.
type Writer interface {
	// CreateKey creates path and any missing ancestors. It reports whether
	// the final key was newly created.
	CreateKey(ctx context.Context, path string, opts WriteOptions) (bool, error)

	// SetValue creates or replaces a value, creating the key if needed.
	SetValue(ctx context.Context, path, name, typ, data string, opts WriteOptions) error

	// DeleteKey removes a key with its subtree and values. It returns the
	// number of keys and values removed.
	DeleteKey(ctx context.Context, path string) (int64, error)

	// DeleteValue removes a single value.
	DeleteValue(ctx context.Context, path, name string) error
}

// Maintainer defines operations for database maintenance and lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum rebuilds the database file to reclaim space left by deletes.
	Vacuum(ctx context.Context) (int64, error)
}

// Store defines the persistence interface for the key tree.
type Store interface {
	Reader
	Writer
	Maintainer
}
