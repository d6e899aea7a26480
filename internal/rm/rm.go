// Package rm removes keys and values. Removal is immediate: a key goes
// with its whole subtree, and nothing is kept for restoring.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/service"
)

// Options configures a delete operation.
type Options struct {
	Value  bool   // Remove the named value rather than the key
	Name   string // Value name; "" is the default value
	Author string
}

// Result contains the outcome of a delete operation.
type Result struct {
	Key     string `json:"key"`
	Name    string `json:"name,omitempty"`
	Value   bool   `json:"value,omitempty"`
	Removed int64  `json:"removed"`
}

// Run removes a key, or one of its values when opts.Value is set.
func Run(ctx context.Context, w io.Writer, svc service.Service, key string, opts Options) (Result, error) {
	res := Result{Key: key, Name: opts.Name, Value: opts.Value}

	if opts.Value {
		if err := svc.DeleteValue(ctx, key, opts.Name, opts.Author); err != nil {
			return res, err
		}
		res.Removed = 1
		name := opts.Name
		if name == "" {
			name = result.DefaultValueName
		}
		fmt.Fprintf(w, "Deleted %s [%s]\n", key, name)
		return res, nil
	}

	n, err := svc.DeleteKey(ctx, key, opts.Author)
	if err != nil {
		return res, err
	}
	res.Removed = n
	fmt.Fprintf(w, "Deleted %s (%d items)\n", key, n)
	return res, nil
}
