// write.go implements tree mutations. Events fire only after the store
// has committed the change.

package hive

import (
	"context"
	"fmt"

	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/validate"
)

func authorOr(a string) string {
	if a == "" {
		return DefaultAuthor
	}
	return a
}

// CreateKey creates p and its missing ancestors.
func (s *Service) CreateKey(ctx context.Context, p, author string) (bool, error) {
	created, err := s.store.CreateKey(ctx, p, s.writeOptions())
	if err != nil {
		return false, fmt.Errorf("create key %q: %w", p, err)
	}
	if created {
		p, _ = norm(p)
		s.fireEvent(extension.KeyEvent{Path: p, Author: authorOr(author), Created: true})
	}
	return created, nil
}

// SetValue creates or replaces a value.
func (s *Service) SetValue(ctx context.Context, p, name, typ, data, author string) error {
	if err := s.store.SetValue(ctx, p, name, typ, data, s.writeOptions()); err != nil {
		return fmt.Errorf("set value %q [%s]: %w", p, name, err)
	}
	p, _ = norm(p)
	typ, _ = validate.Type(typ)
	s.fireEvent(extension.ValueEvent{Path: p, Name: name, Type: typ, Data: data, Author: authorOr(author)})
	return nil
}

// DeleteKey removes p and its subtree.
func (s *Service) DeleteKey(ctx context.Context, p, author string) (int64, error) {
	n, err := s.store.DeleteKey(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("delete key %q: %w", p, err)
	}
	p, _ = norm(p)
	s.fireEvent(extension.KeyEvent{Path: p, Author: authorOr(author), Removed: n})
	return n, nil
}

// DeleteValue removes one value.
func (s *Service) DeleteValue(ctx context.Context, p, name, author string) error {
	if err := s.store.DeleteValue(ctx, p, name); err != nil {
		return fmt.Errorf("delete value %q [%s]: %w", p, name, err)
	}
	p, _ = norm(p)
	s.fireEvent(extension.ValueEvent{Path: p, Name: name, Author: authorOr(author), Deleted: true})
	return nil
}
