// matcher.go implements the text comparison used during a walk.

package find

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher tests candidate strings against the search text.
type Matcher struct {
	text  string
	fold  bool
	whole bool
}

// NewMatcher builds a matcher for text under the MatchCase and
// MatchWholeWords flags of opts.
func NewMatcher(text string, opts Options) Matcher {
	m := Matcher{
		text:  text,
		fold:  !opts.Has(MatchCase),
		whole: opts.Has(MatchWholeWords),
	}
	if m.fold {
		m.text = strings.ToLower(text)
	}
	return m
}

// Match reports whether s contains the search text.
func (m Matcher) Match(s string) bool {
	if m.text == "" || s == "" {
		return false
	}
	if m.fold {
		s = strings.ToLower(s)
	}
	if !m.whole {
		return strings.Contains(s, m.text)
	}
	for from := 0; from <= len(s)-len(m.text); {
		i := strings.Index(s[from:], m.text)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(m.text)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return false
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWord(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWord(r)
}
