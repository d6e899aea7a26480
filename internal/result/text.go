// text.go implements the flat tab/CRLF text form of a result set.

package result

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	fieldSep = "\t"
	lineEnd  = "\r\n"
)

// ErrMalformed is returned when loaded text does not follow the
// path<TAB>name<TAB>data<CRLF> record layout.
var ErrMalformed = errors.New("malformed result data")

// ParseError locates the first malformed record in loaded text.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

// Format renders ms in the record layout. The default value's empty name is
// written as DefaultValueName when the match carries data.
func Format(ms []Match) string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(m.ColumnText(ColumnPath))
		b.WriteString(fieldSep)
		b.WriteString(m.ColumnText(ColumnName))
		b.WriteString(fieldSep)
		b.WriteString(m.ColumnText(ColumnData))
		b.WriteString(lineEnd)
	}
	return b.String()
}

// Serialize renders the whole set.
func (s *Set) Serialize() string {
	return Format(s.items)
}

// WriteTo writes the serialised set to w.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.Serialize())
	return int64(n), err
}

// Text renders the selected matches, or every match when selected is empty.
func (s *Set) Text(selected []int) (string, error) {
	ms, err := s.Selected(selected)
	if err != nil {
		return "", err
	}
	return Format(ms), nil
}

// Parse decodes text in the record layout. Every line must end in CRLF and
// hold exactly three tab-separated fields.
func Parse(text string) ([]Match, error) {
	var out []Match
	rest := text
	line := 0
	for rest != "" {
		line++
		i := strings.Index(rest, lineEnd)
		if i < 0 {
			return nil, &ParseError{Line: line, Reason: "missing CRLF terminator"}
		}
		rec := rest[:i]
		rest = rest[i+len(lineEnd):]

		fields := strings.Split(rec, fieldSep)
		if len(fields) != 3 {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
		}
		m := Match{Path: fields[0], Name: fields[1], Data: fields[2]}
		if m.Name == DefaultValueName && m.Data != "" {
			m.Name = ""
		}
		out = append(out, m)
	}
	return out, nil
}

// Deserialize loads text into the set. With appendMode false the set is
// replaced, otherwise the parsed matches are added after the existing ones.
// A malformed input leaves the set as it was.
func (s *Set) Deserialize(text string, appendMode bool) error {
	ms, err := Parse(text)
	if err != nil {
		return err
	}
	if !appendMode {
		s.items = nil
	}
	s.items = append(s.items, ms...)
	return nil
}

// Read loads the set from r. See Deserialize.
func (s *Set) Read(r io.Reader, appendMode bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading results: %w", err)
	}
	return s.Deserialize(string(data), appendMode)
}
