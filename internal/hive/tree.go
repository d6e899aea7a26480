// tree.go adapts the service to the read view of a find and to result
// navigation.

package hive

import (
	"context"
	"errors"

	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/store"
)

type tree struct{ s *store.SQLiteStore }

// Tree returns the view a find walks. Paths it receives come from the
// walk itself, so they are already in stored form.
func (s *Service) Tree() find.Tree { return tree{s.store} }

func (t tree) Roots(ctx context.Context, std, real bool) ([]string, error) {
	return t.s.Roots(ctx, std, real)
}

func (t tree) Subkeys(ctx context.Context, key string) ([]string, error) {
	keys, err := t.s.Subkeys(ctx, key)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name
	}
	return names, nil
}

func (t tree) Values(ctx context.Context, key string) ([]find.Value, error) {
	vals, err := t.s.Values(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]find.Value, len(vals))
	for i, v := range vals {
		out[i] = find.Value{Name: v.Name, Data: v.Data}
	}
	return out, nil
}

// GoTo reports whether m still points at something: the key for a key
// match, the value for a value match.
func (s *Service) GoTo(ctx context.Context, m result.Match) (bool, error) {
	if m.Kind() == result.KindKey {
		return s.Exists(ctx, m.Path)
	}
	_, err := s.Value(ctx, m.Path, m.Name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrValueNotFound):
		return false, nil
	default:
		return false, err
	}
}
