// read.go implements lookups. Every path is normalised first so aliases
// and either separator work.

package hive

import (
	"context"
	"errors"

	"github.com/jpl-au/hive/internal/store"
)

// Key returns the key at p.
func (s *Service) Key(ctx context.Context, p string) (*store.Key, error) {
	p, err := norm(p)
	if err != nil {
		return nil, err
	}
	return s.store.Key(ctx, p)
}

// Exists reports whether a key exists.
func (s *Service) Exists(ctx context.Context, p string) (bool, error) {
	p, err := norm(p)
	if err != nil {
		return false, err
	}
	return s.store.Exists(ctx, p)
}

// Roots returns the roots of the selected views.
func (s *Service) Roots(ctx context.Context, std, real bool) ([]string, error) {
	return s.store.Roots(ctx, std, real)
}

// Subkeys returns the children of p. A missing key is store.ErrNotFound.
func (s *Service) Subkeys(ctx context.Context, p string) ([]store.Key, error) {
	p, err := s.existing(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.store.Subkeys(ctx, p)
}

// Descendants returns every key below p.
func (s *Service) Descendants(ctx context.Context, p string) ([]store.Key, error) {
	p, err := s.existing(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.store.Descendants(ctx, p)
}

// Values returns the values of p.
func (s *Service) Values(ctx context.Context, p string) ([]store.Value, error) {
	p, err := s.existing(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.store.Values(ctx, p)
}

// Value returns one value, telling a missing key (store.ErrNotFound) from
// a missing value (store.ErrValueNotFound).
func (s *Service) Value(ctx context.Context, p, name string) (*store.Value, error) {
	p, err := norm(p)
	if err != nil {
		return nil, err
	}
	v, err := s.store.Value(ctx, p, name)
	if errors.Is(err, store.ErrValueNotFound) {
		if ok, xerr := s.store.Exists(ctx, p); xerr == nil && !ok {
			return nil, store.ErrNotFound
		}
	}
	return v, err
}

// Stats returns aggregate statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) existing(ctx context.Context, p string) (string, error) {
	p, err := norm(p)
	if err != nil {
		return "", err
	}
	ok, err := s.store.Exists(ctx, p)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", store.ErrNotFound
	}
	return p, nil
}
