// Package results works on saved result files: listing, sorting, pruning,
// merging, copying and comparing them, and resolving a row back to the
// key tree.
//
// Every operation that changes a file reads it whole, changes the set in
// memory and writes it back with result.WriteFile. A file that fails to
// parse is reported and left as it was.
package results

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/hive/internal/diff"
	"github.com/jpl-au/hive/internal/findall"
	"github.com/jpl-au/hive/internal/format"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/service"
)

// Summary describes a result file after an operation.
type Summary struct {
	File    string         `json:"file"`
	Total   int            `json:"total"`
	Changed int            `json:"changed,omitempty"`
	First   int            `json:"first,omitempty"`
	Matches []result.Match `json:"matches,omitempty"`
}

// CatOptions configures Cat.
type CatOptions struct {
	Range  string // "from:to", half-open; "" is every row
	Raw    bool   // Print the file's tab-separated rows instead of a table
	Styled bool
}

// Cat prints the rows of file as an indexed table.
func Cat(w io.Writer, file string, opts CatOptions) (Summary, error) {
	res := Summary{File: file}
	ms, err := result.ReadFile(file)
	if err != nil {
		return res, err
	}
	res.Total = len(ms)

	from, to := 0, len(ms)
	if opts.Range != "" {
		f, t, err := diff.ParseRange(opts.Range)
		if err != nil {
			return res, err
		}
		from = min(f, len(ms))
		if t > 0 {
			to = min(t, len(ms))
		}
		to = max(to, from)
	}
	res.First = from
	res.Matches = ms[from:to]
	if opts.Raw {
		_, err := io.WriteString(w, result.Format(res.Matches))
		return res, err
	}
	if len(res.Matches) == 0 {
		fmt.Fprintln(w, "No results")
		return res, nil
	}
	return res, format.ResultsAt(w, res.Matches, from, opts.Styled)
}

// Sort reorders file by col.
func Sort(w io.Writer, file string, col result.Column, ascending bool) (Summary, error) {
	res := Summary{File: file}
	s := result.NewSet()
	if err := s.LoadFile(file, false, false); err != nil {
		return res, err
	}
	s.Sort(col, ascending)
	if err := s.WriteFile(file); err != nil {
		return res, err
	}
	res.Total = s.Len()
	dir := "ascending"
	if !ascending {
		dir = "descending"
	}
	fmt.Fprintf(w, "Sorted %d result(s) by %s, %s\n", res.Total, col, dir)
	return res, nil
}

// Delete removes the rows at idx from file. An empty idx clears it.
func Delete(w io.Writer, file string, idx []int) (Summary, error) {
	res := Summary{File: file}
	s := result.NewSet()
	if err := s.LoadFile(file, false, false); err != nil {
		return res, err
	}
	before := s.Len()
	if err := s.DeleteSelected(idx); err != nil {
		return res, err
	}
	if err := s.WriteFile(file); err != nil {
		return res, err
	}
	res.Total = s.Len()
	res.Changed = before - res.Total
	fmt.Fprintf(w, "Deleted %d result(s), %d left\n", res.Changed, res.Total)
	return res, nil
}

// Merge appends the rows of each source to dst, creating dst when it does
// not exist. Nothing is written unless every source loads.
func Merge(w io.Writer, dst string, srcs []string) (Summary, error) {
	res := Summary{File: dst}
	s := result.NewSet()
	if err := s.LoadFile(dst, false, true); err != nil {
		return res, err
	}
	before := s.Len()
	for _, src := range srcs {
		if err := s.LoadFile(src, true, false); err != nil {
			return res, err
		}
	}
	if err := s.WriteFile(dst); err != nil {
		return res, err
	}
	res.Total = s.Len()
	res.Changed = res.Total - before
	fmt.Fprintf(w, "Merged %d result(s) into %s, %d total\n", res.Changed, dst, res.Total)
	return res, nil
}

// Text returns the rows at idx, or every row, in result file form.
func Text(file string, idx []int) (string, int, error) {
	s := result.NewSet()
	if err := s.LoadFile(file, false, false); err != nil {
		return "", 0, err
	}
	ms, err := s.Selected(idx)
	if err != nil {
		return "", 0, err
	}
	return result.Format(ms), len(ms), nil
}

// Target is what a result row resolved to.
type Target struct {
	Index int          `json:"index"`
	Match result.Match `json:"match"`
	Type  string       `json:"type,omitempty"`
	Data  string       `json:"data,omitempty"`
}

// GoTo resolves row i of file against the tree and prints the item: the
// key path for a key match, the value for a value match. It returns
// findall.ErrItemNotFound when the item is gone.
func GoTo(ctx context.Context, w io.Writer, svc service.Service, file string, i int) (Target, error) {
	t := Target{Index: i}
	f, err := os.Open(file)
	if err != nil {
		return t, err
	}
	defer f.Close()
	c := findall.New(svc.Tree(), findall.Settings{}, findall.WithNavigator(svc))
	if err := c.Load(f, false); err != nil {
		return t, fmt.Errorf("%s: %w", file, err)
	}
	m, err := c.GoTo(ctx, i)
	t.Match = m
	if err != nil {
		return t, err
	}
	if m.Kind() == result.KindKey {
		fmt.Fprintln(w, m.Path)
		return t, nil
	}
	v, err := svc.Value(ctx, m.Path, m.Name)
	if err != nil {
		return t, err
	}
	t.Type, t.Data = v.Type, v.Data
	fmt.Fprintln(w, m.Path)
	return t, format.Value(w, *v)
}

// Diff compares two result files row by row.
func Diff(oldFile, newFile string) (diff.Result, error) {
	old, err := result.ReadFile(oldFile)
	if err != nil {
		return diff.Result{}, err
	}
	cur, err := result.ReadFile(newFile)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Results(old, cur, oldFile, newFile), nil
}
