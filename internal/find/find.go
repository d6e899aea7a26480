// Package find walks the key tree looking for text in key names, value
// names and value data.
//
// The walk is incremental. An Engine stops after every match, hands it to
// the caller's callback and waits for Continue before taking another step.
// The traversal state lives on an explicit stack, so a paused search costs
// nothing and resumes exactly where it stopped.
package find

import (
	"strings"
)

// Options selects what a search looks at and how text is compared.
type Options uint16

const (
	SearchKeys         Options = 1 << iota // match key names
	SearchValues                           // match value names
	SearchData                             // match value data
	SearchSelected                         // search below the start key only
	MatchWholeWords                        // hits must be bounded by non-word runes
	MatchCase                              // compare case-sensitively
	SearchStdRegistry                      // include the HKEY_* view
	SearchRealRegistry                     // include the REGISTRY view
)

// DefaultOptions searches everything in the standard view.
const DefaultOptions = SearchKeys | SearchValues | SearchData | SearchStdRegistry

var optionNames = []struct {
	flag Options
	name string
}{
	{SearchKeys, "keys"},
	{SearchValues, "values"},
	{SearchData, "data"},
	{SearchSelected, "selected"},
	{MatchWholeWords, "whole"},
	{MatchCase, "case"},
	{SearchStdRegistry, "std"},
	{SearchRealRegistry, "real"},
}

// Has reports whether every flag in f is set.
func (o Options) Has(f Options) bool { return o&f == f }

// With returns o with f set.
func (o Options) With(f Options) Options { return o | f }

// Without returns o with f cleared.
func (o Options) Without(f Options) Options { return o &^ f }

// Set returns o with f set or cleared.
func (o Options) Set(f Options, on bool) Options {
	if on {
		return o.With(f)
	}
	return o.Without(f)
}

// CanStart reports whether at least one store view is selected.
func (o Options) CanStart() bool {
	return o&(SearchStdRegistry|SearchRealRegistry) != 0
}

// String lists the set flags, e.g. "keys|values|std".
func (o Options) String() string {
	var parts []string
	for _, n := range optionNames {
		if o.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
