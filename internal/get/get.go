// Package get reads values: one by name, or all of a key's values.
package get

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/hive/internal/format"
	"github.com/jpl-au/hive/internal/service"
	"github.com/jpl-au/hive/internal/store"
)

// Options configures a get operation.
type Options struct {
	All  bool // Every value of the key
	Raw  bool // Print data only
	Name string
}

// Result contains the values read.
type Result struct {
	Key    string            `json:"key"`
	Values []store.ValueJSON `json:"values"`
}

// Run reads from key and writes to w. With Raw only the data is written,
// which lets shell scripts consume a value directly.
func Run(ctx context.Context, w io.Writer, svc service.Service, key string, opts Options) (Result, error) {
	res := Result{Key: key}

	var vals []store.Value
	if opts.All {
		var err error
		if vals, err = svc.Values(ctx, key); err != nil {
			return res, err
		}
	} else {
		v, err := svc.Value(ctx, key, opts.Name)
		if err != nil {
			return res, err
		}
		vals = []store.Value{*v}
	}

	for _, v := range vals {
		res.Key = v.KeyPath
		res.Values = append(res.Values, v.ToJSON())
		var err error
		if opts.Raw {
			_, err = fmt.Fprintln(w, v.Data)
		} else {
			err = format.Value(w, v)
		}
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
