// Package diff compares two result sets, such as the saved output of the
// same find run before and after a change to the tree.
package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/hive/internal/result"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged rows shown around changes.
// Longer unchanged runs are collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Diff    string `json:"diff"`
}

// Same reports whether the two sides matched row for row.
func (r Result) Same() bool { return r.Added == 0 && r.Removed == 0 }

// row renders a match as one comparable line.
func row(m result.Match) string {
	s := m.Path
	if m.Kind() != result.KindKey {
		s += " [" + m.ColumnText(result.ColumnName) + "]"
	}
	if m.Data != "" {
		s += " = " + m.Data
	}
	return s
}

func lines(ms []result.Match) string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(row(m))
		b.WriteByte('\n')
	}
	return b.String()
}

// Results diffs two result sets row by row. Order matters: a set compared
// with a re-sorted copy of itself shows moves as removals and additions.
func Results(old, new []result.Match, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(lines(old), lines(new))
	d := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	r := Result{Old: oldLabel, New: newLabel}
	r.Diff = format(d, &r)
	return r
}

// format converts diffs to unified-style text and counts changed rows.
func format(diffs []diffmatchpatch.Diff, r *Result) string {
	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		ls := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			r.Removed += len(ls)
			for _, l := range ls {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			r.Added += len(ls)
			for _, l := range ls {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(ls) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + ls[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(ls) - contextLines; i < len(ls); i++ {
					b.WriteString("  " + ls[i] + "\n")
				}
			} else {
				for _, l := range ls {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}

// ParseRange parses an index range "from:to". Either side may be empty:
// ":5" is 0 to 5 and "3:" is 3 to the end, reported as to = 0.
func ParseRange(s string) (from, to int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q (expected from:to)", s)
	}
	if parts[0] != "" {
		if from, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, fmt.Errorf("invalid range start: %w", err)
		}
	}
	if parts[1] != "" {
		if to, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid range end: %w", err)
		}
	}
	if from < 0 || to < 0 {
		return 0, 0, fmt.Errorf("invalid range %q: indexes must be >= 0", s)
	}
	if parts[1] != "" && to < from {
		return 0, 0, fmt.Errorf("invalid range %q: end before start", s)
	}
	return from, to, nil
}
