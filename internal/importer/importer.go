// Package importer loads a TOML key file written by the exporter (or by
// hand) into the store.
//
// With Under set, the file's root is replaced by another key, which is how
// a subtree is copied to a new place.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/hive/internal/exporter"
	"github.com/jpl-au/hive/internal/path"
	"github.com/jpl-au/hive/internal/progress"
	"github.com/jpl-au/hive/internal/service"
	"github.com/jpl-au/hive/internal/validate"
	"github.com/pelletier/go-toml/v2"
)

// Options configures an import operation.
type Options struct {
	Under  string // Replace the file's root with this key
	DryRun bool   // Show what would be imported without importing
	Author string // Author recorded for the writes
}

// Result contains the outcome of an import operation.
type Result struct {
	Keys   int      `json:"keys"`
	Values int      `json:"values"`
	Paths  []string `json:"paths"`
}

// Parse decodes and checks a key file. Unknown fields are rejected so a
// typo does not silently drop data.
func Parse(r io.Reader) (exporter.File, error) {
	var f exporter.File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("parse key file: %w", err)
	}
	if f.Root == "" {
		return f, fmt.Errorf("parse key file: missing root")
	}
	root, err := validate.Path(f.Root, 0)
	if err != nil {
		return f, err
	}
	f.Root = root
	for i, k := range f.Keys {
		p, err := validate.Path(k.Path, 0)
		if err != nil {
			return f, fmt.Errorf("key %d: %w", i+1, err)
		}
		if !path.Within(p, root) {
			return f, fmt.Errorf("key %d: %s is outside root %s", i+1, p, root)
		}
		f.Keys[i].Path = p
		for _, v := range k.Values {
			typ, err := validate.Type(v.Type)
			if err != nil {
				return f, fmt.Errorf("%s [%s]: %w", p, v.Name, err)
			}
			if err := validate.ValueName(v.Name); err != nil {
				return f, fmt.Errorf("%s: %w", p, err)
			}
			if err := validate.Data(typ, v.Data, 0); err != nil {
				return f, fmt.Errorf("%s [%s]: %w", p, v.Name, err)
			}
		}
	}
	return f, nil
}

// rebase moves p from below root to below under.
func rebase(p, root, under string) string {
	if under == "" {
		return p
	}
	return under + p[len(root):]
}

// Run imports the key file src.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	fh, err := os.Open(src)
	if err != nil {
		return Result{}, err
	}
	defer fh.Close()
	return Load(ctx, w, svc, fh, opts)
}

// Load imports a key file read from r.
func Load(ctx context.Context, w io.Writer, svc service.Service, r io.Reader, opts Options) (Result, error) {
	var res Result
	f, err := Parse(r)
	if err != nil {
		return res, err
	}
	under := ""
	if opts.Under != "" {
		if under, err = validate.Path(opts.Under, 0); err != nil {
			return res, err
		}
	}

	prog := progress.New("Importing", len(f.Keys))
	defer prog.Done()
	for _, k := range f.Keys {
		p := rebase(k.Path, f.Root, under)
		res.Paths = append(res.Paths, p)
		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s (%d values)\n", p, len(k.Values))
			res.Keys++
			res.Values += len(k.Values)
			continue
		}
		if !path.IsRoot(p) {
			if _, err := svc.CreateKey(ctx, p, opts.Author); err != nil {
				return res, err
			}
		}
		res.Keys++
		for _, v := range k.Values {
			if err := svc.SetValue(ctx, p, v.Name, v.Type, v.Data, opts.Author); err != nil {
				return res, err
			}
			res.Values++
		}
		prog.Increment()
	}
	if !opts.DryRun {
		fmt.Fprintf(w, "Imported %d keys, %d values\n", res.Keys, res.Values)
	}
	return res, nil
}
