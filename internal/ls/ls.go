// Package ls lists the tree: the roots, or one key's subkeys and values,
// or with Recursive every key below it.
package ls

import (
	"context"
	"io"

	"github.com/jpl-au/hive/internal/format"
	"github.com/jpl-au/hive/internal/service"
	"github.com/jpl-au/hive/internal/store"
)

// Options configures a list operation.
type Options struct {
	Recursive bool // Show every key below as a tree
	Real      bool // With no key, include the real view roots
	Styled    bool // Colour output
}

// Result contains the outcome of a list operation.
type Result struct {
	Key     string            `json:"key,omitempty"`
	Roots   []string          `json:"roots,omitempty"`
	Subkeys []store.KeyJSON   `json:"subkeys,omitempty"`
	Values  []store.ValueJSON `json:"values,omitempty"`
}

// Run lists key, or the roots when key is empty, and writes the listing
// to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, key string, opts Options) (Result, error) {
	var res Result

	if key == "" {
		roots, err := svc.Roots(ctx, true, opts.Real)
		if err != nil {
			return res, err
		}
		res.Roots = roots
		keys := make([]store.Key, len(roots))
		for i, r := range roots {
			keys[i] = store.Key{Path: r, Name: r}
		}
		return res, format.Listing(w, keys, nil, opts.Styled)
	}

	k, err := svc.Key(ctx, key)
	if err != nil {
		return res, err
	}
	res.Key = k.Path

	if opts.Recursive {
		keys, err := svc.Descendants(ctx, k.Path)
		if err != nil {
			return res, err
		}
		for i := range keys {
			res.Subkeys = append(res.Subkeys, keys[i].ToJSON())
		}
		return res, format.Tree(w, k.Path, keys)
	}

	keys, err := svc.Subkeys(ctx, k.Path)
	if err != nil {
		return res, err
	}
	vals, err := svc.Values(ctx, k.Path)
	if err != nil {
		return res, err
	}
	for i := range keys {
		res.Subkeys = append(res.Subkeys, keys[i].ToJSON())
	}
	for i := range vals {
		res.Values = append(res.Values, vals[i].ToJSON())
	}
	return res, format.Listing(w, keys, vals, opts.Styled)
}
