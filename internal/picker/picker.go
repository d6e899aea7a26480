// Package picker lets the user choose a result row with a fuzzy finder.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/hive/internal/result"
	"github.com/ktr0731/go-fuzzyfinder"
)

// ErrAborted is returned when the finder is closed without a choice.
var ErrAborted = errors.New("no result picked")

// findFunc is the finder. Tests replace it.
var findFunc = func(ms []result.Match, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(ms, label, opts...)
}

// Label is the line a row is listed and matched by.
func Label(m result.Match) string {
	s := m.Path
	if m.Kind() != result.KindKey {
		s += "  [" + m.ColumnText(result.ColumnName) + "]"
	}
	if m.Data != "" {
		s += "  " + m.Data
	}
	return s
}

// preview describes row i in the finder's side window.
func preview(ms []result.Match, i int) string {
	if i < 0 || i >= len(ms) {
		return ""
	}
	m := ms[i]
	var b strings.Builder
	fmt.Fprintf(&b, "#%d  %s match\n\n", i, m.Kind())
	fmt.Fprintf(&b, "key:  %s\n", m.Path)
	if m.Kind() != result.KindKey {
		fmt.Fprintf(&b, "name: %s\n", m.ColumnText(result.ColumnName))
	}
	if m.Data != "" {
		fmt.Fprintf(&b, "data: %s\n", m.Data)
	}
	return b.String()
}

// Pick shows ms in a fuzzy finder seeded with query and returns the index
// of the chosen row.
func Pick(ms []result.Match, query string) (int, error) {
	if len(ms) == 0 {
		return -1, ErrAborted
	}
	opts := []fuzzyfinder.Option{
		fuzzyfinder.WithHeader(fmt.Sprintf("%d result(s)", len(ms))),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string { return preview(ms, i) }),
	}
	if query != "" {
		opts = append(opts, fuzzyfinder.WithQuery(query))
	}
	i, err := findFunc(ms, func(i int) string { return Label(ms[i]) }, opts...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return -1, ErrAborted
	}
	if err != nil {
		return -1, fmt.Errorf("picker: %w", err)
	}
	return i, nil
}
