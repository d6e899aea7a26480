// Package result holds the matches collected by a find-all search.
//
// A Set is an ordered, dense sequence of matches. It grows by Append while a
// search is live, and supports a stable re-sort, deletion by original index,
// and a flat tab/CRLF text form used for saved result files and clipboard
// copies.
//
// Set is not safe for concurrent use. Owners that share a Set between a
// search callback and a display loop guard it with their own lock.
package result

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultValueName is shown in the name column for the unnamed (default)
// value of a key. The model itself keeps the name empty.
const DefaultValueName = "(Default)"

// ErrIndexOutOfRange is returned when a delete targets an index that does
// not exist in the set.
var ErrIndexOutOfRange = errors.New("index out of range")

// Match is one located item. Name is empty for key matches and for the
// default value. Data is empty unless the match was on value data.
type Match struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
	Data string `json:"data,omitempty"`
}

// Kind classifies a match for display.
type Kind int

const (
	KindKey  Kind = iota // matched a key name
	KindName             // matched a value name
	KindData             // matched value data
)

// String returns the lower-case kind label used in JSON and listings.
func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindData:
		return "data"
	default:
		return "key"
	}
}

// Kind reports which part of the store the match came from.
func (m Match) Kind() Kind {
	switch {
	case m.Data != "":
		return KindData
	case m.Name != "":
		return KindName
	default:
		return KindKey
	}
}

// Column identifies one of the three fields of a match.
type Column int

const (
	ColumnPath Column = iota
	ColumnName
	ColumnData
)

// ParseColumn maps a column name ("path", "name", "data") to a Column.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(s) {
	case "path", "key":
		return ColumnPath, nil
	case "name":
		return ColumnName, nil
	case "data":
		return ColumnData, nil
	}
	return 0, fmt.Errorf("unknown column %q (valid: path, name, data)", s)
}

// String returns the column name.
func (c Column) String() string {
	switch c {
	case ColumnName:
		return "name"
	case ColumnData:
		return "data"
	default:
		return "path"
	}
}

// ColumnText returns the display text of one column. An empty name is
// rendered as DefaultValueName only when the match carries data, so key
// matches keep an empty name column.
func (m Match) ColumnText(c Column) string {
	switch c {
	case ColumnName:
		if m.Name == "" && m.Data != "" {
			return DefaultValueName
		}
		return m.Name
	case ColumnData:
		return m.Data
	default:
		return m.Path
	}
}

// Set is an ordered collection of matches.
type Set struct {
	items []Match
}

// NewSet returns a set holding a copy of ms.
func NewSet(ms ...Match) *Set {
	return &Set{items: slices.Clone(ms)}
}

// Append adds m to the end of the set.
func (s *Set) Append(m Match) {
	s.items = append(s.items, m)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.items = nil
}

// DeleteAll empties the set. It is the explicit "delete all" operation and
// behaves exactly like Clear.
func (s *Set) DeleteAll() {
	s.Clear()
}

// Len returns the number of matches.
func (s *Set) Len() int {
	return len(s.items)
}

// At returns the match at index i.
func (s *Set) At(i int) (Match, error) {
	if i < 0 || i >= len(s.items) {
		return Match{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(s.items))
	}
	return s.items[i], nil
}

// All returns a copy of the matches in order.
func (s *Set) All() []Match {
	return slices.Clone(s.items)
}

// Sort reorders the set by the display text of column c. Comparison is
// case-insensitive, matching how the store treats names. The sort is stable,
// so rows that tie keep their relative order and repeating a sort is a no-op.
func (s *Set) Sort(c Column, ascending bool) {
	slices.SortStableFunc(s.items, func(a, b Match) int {
		r := cmp.Compare(strings.ToLower(a.ColumnText(c)), strings.ToLower(b.ColumnText(c)))
		if !ascending {
			return -r
		}
		return r
	})
}

// DeleteSelected removes the matches at the given original indices.
//
// An empty selection clears the whole set. Every index is checked before
// anything is removed, so an out-of-range index leaves the set untouched.
// Duplicate indices are removed once.
func (s *Set) DeleteSelected(selected []int) error {
	if len(selected) == 0 {
		s.Clear()
		return nil
	}
	for _, i := range selected {
		if i < 0 || i >= len(s.items) {
			return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(s.items))
		}
	}
	idx := slices.Clone(selected)
	slices.Sort(idx)
	idx = slices.Compact(idx)
	s.items = deleteAscending(s.items, idx)
	return nil
}

// deleteAscending removes original indices idx (sorted ascending, unique)
// from items. Each removal shifts later elements down by one, so the target
// position of an original index is that index minus the number of lower
// indices already removed.
func deleteAscending(items []Match, idx []int) []Match {
	offset := 0
	for _, n := range idx {
		pos := n - offset
		items = slices.Delete(items, pos, pos+1)
		offset++
	}
	return items
}

// Selected returns the matches at the given indices in the order given.
// An empty selection returns every match, mirroring copy-all behaviour.
func (s *Set) Selected(selected []int) ([]Match, error) {
	if len(selected) == 0 {
		return s.All(), nil
	}
	out := make([]Match, 0, len(selected))
	for _, i := range selected {
		m, err := s.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
