// Package exporter writes a key and everything below it as a TOML file.
//
// The file lists keys in path order, each with its values, so an export
// fed back through the importer rebuilds the same subtree:
//
//	root = 'HKEY_CURRENT_USER\Software\Acme'
//
//	[[keys]]
//	path = 'HKEY_CURRENT_USER\Software\Acme'
//
//	[[keys.values]]
//	name = 'InstallDir'
//	type = 'REG_SZ'
//	data = 'C:\Acme'
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/hive/internal/progress"
	"github.com/jpl-au/hive/internal/service"
	"github.com/pelletier/go-toml/v2"
)

// File is the TOML layout shared with the importer.
type File struct {
	Root string `toml:"root"`
	Keys []Key  `toml:"keys"`
}

// Key is one exported key.
type Key struct {
	Path   string  `toml:"path"`
	Values []Value `toml:"values,omitempty"`
}

// Value is one exported value. An empty Name is the default value.
type Value struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
	Data string `toml:"data"`
}

// Options configures an export operation.
type Options struct {
	Force bool // Overwrite an existing file
}

// Result contains the outcome of an export operation.
type Result struct {
	Root   string `json:"root"`
	File   string `json:"file,omitempty"`
	Keys   int    `json:"keys"`
	Values int    `json:"values"`
}

// Build collects key and its subtree.
func Build(ctx context.Context, svc service.Service, key string) (File, error) {
	k, err := svc.Key(ctx, key)
	if err != nil {
		return File{}, err
	}
	below, err := svc.Descendants(ctx, k.Path)
	if err != nil {
		return File{}, err
	}

	f := File{Root: k.Path}
	paths := make([]string, 0, len(below)+1)
	paths = append(paths, k.Path)
	for _, d := range below {
		paths = append(paths, d.Path)
	}

	prog := progress.New("Exporting", len(paths))
	defer prog.Done()
	for _, p := range paths {
		vals, err := svc.Values(ctx, p)
		if err != nil {
			return File{}, err
		}
		ek := Key{Path: p}
		for _, v := range vals {
			ek.Values = append(ek.Values, Value{Name: v.Name, Type: v.Type, Data: v.Data})
		}
		f.Keys = append(f.Keys, ek)
		prog.Increment()
	}
	return f, nil
}

// Write exports key to w.
func Write(ctx context.Context, w io.Writer, svc service.Service, key string) (Result, error) {
	f, err := Build(ctx, svc, key)
	if err != nil {
		return Result{}, err
	}
	res := Result{Root: f.Root, Keys: len(f.Keys)}
	for _, k := range f.Keys {
		res.Values += len(k.Values)
	}
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return res, fmt.Errorf("encode %s: %w", key, err)
	}
	return res, nil
}

// Run exports key to the file dst, or to w when dst is empty or "-".
func Run(ctx context.Context, w io.Writer, svc service.Service, key, dst string, opts Options) (Result, error) {
	if dst == "" || dst == "-" {
		return Write(ctx, w, svc, key)
	}

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			return Result{}, fmt.Errorf("%s exists (use --force to overwrite)", dst)
		} else if !errors.Is(err, os.ErrNotExist) {
			return Result{}, err
		}
	}
	out, err := os.Create(dst)
	if err != nil {
		return Result{}, err
	}
	res, err := Write(ctx, out, svc, key)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return res, err
	}
	res.File = dst
	fmt.Fprintf(w, "Exported %s to %s (%d keys, %d values)\n", res.Root, dst, res.Keys, res.Values)
	return res, nil
}
