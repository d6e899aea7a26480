// Package service defines the interface commands and extensions use to
// reach the key tree. They depend on it rather than on the concrete
// service so tests can substitute their own.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/store"
)

// Service is the key tree as commands see it.
//
// Obtain one with hive.New and always defer Close:
//
//	svc, err := hive.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	vals, err := svc.Values(ctx, `HKCU\Software\Acme`)
//
// Paths are normalised on the way in, so root aliases such as HKCU are
// accepted everywhere.
type Service interface {
	// Close checkpoints and releases the database.
	Close() error

	// Key returns a key. Returns store.ErrNotFound if it does not exist.
	Key(ctx context.Context, path string) (*store.Key, error)

	// Exists reports whether a key exists.
	Exists(ctx context.Context, path string) (bool, error)

	// Roots returns the root paths of the selected views.
	Roots(ctx context.Context, std, real bool) ([]string, error)

	// Subkeys returns the direct children of a key ordered by name.
	Subkeys(ctx context.Context, path string) ([]store.Key, error)

	// Descendants returns every key below path ordered by path.
	Descendants(ctx context.Context, path string) ([]store.Key, error)

	// Values returns the values of a key, default value first.
	Values(ctx context.Context, path string) ([]store.Value, error)

	// Value returns one value. Returns store.ErrValueNotFound if the key
	// exists but the value does not.
	Value(ctx context.Context, path, name string) (*store.Value, error)

	// CreateKey creates a key and its missing ancestors, reporting whether
	// it was new.
	CreateKey(ctx context.Context, path, author string) (bool, error)

	// SetValue creates or replaces a value. An empty name is the default
	// value; an empty type is REG_SZ.
	SetValue(ctx context.Context, path, name, typ, data, author string) error

	// DeleteKey removes a key with everything below it and returns how
	// many keys and values went.
	DeleteKey(ctx context.Context, path, author string) (int64, error)

	// DeleteValue removes one value.
	DeleteValue(ctx context.Context, path, name, author string) error

	// Tree returns the read view a find walks.
	Tree() find.Tree

	// GoTo reports whether the item a match points at still exists.
	GoTo(ctx context.Context, m result.Match) (bool, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// Vacuum rebuilds the database file and returns the bytes reclaimed.
	Vacuum(ctx context.Context) (int64, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// DB returns the underlying connection. Do not close it directly.
	DB() *sql.DB

	// Tx runs fn in a transaction, committing when it returns nil.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Dir returns the .hive directory holding the database.
	Dir() string
}
