// Package progress draws progress on stderr while a long command runs.
// Nothing is drawn when stderr is not a terminal, so scripted output stays
// clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest total worth a progress line.
const minItems = 5

// clearWidth is how many columns Done and Stop blank out.
const clearWidth = 60

// Progress counts through a known number of items.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
func New(label string, total int) *Progress {
	return &Progress{
		w:     os.Stderr,
		label: label,
		total: total,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Increment advances the counter by one and redraws.
func (p *Progress) Increment() {
	p.current++
	if p.total < minItems || !p.isTTY {
		return
	}
	pct := p.current * 100 / p.total
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the line for the final output.
func (p *Progress) Done() {
	if p.total >= minItems && p.isTTY {
		clearLine(p.w)
	}
}

// Spinner shows activity of unknown length with a running count, such as
// matches found by a find.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	count   int
	isTTY   bool
	frames  []string
	running bool
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      os.Stderr,
		label:  label,
		isTTY:  term.IsTerminal(int(os.Stderr.Fd())),
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.running = true
	s.draw()
}

// Tick advances one frame and records one more item.
func (s *Spinner) Tick() {
	s.count++
	if !s.isTTY || !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(s.frames)
	s.draw()
}

// Count returns the number of ticks so far.
func (s *Spinner) Count() int { return s.count }

func (s *Spinner) draw() {
	fmt.Fprintf(s.w, "\r%s %s... %d", s.frames[s.frame], s.label, s.count)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.isTTY || !s.running {
		return
	}
	s.running = false
	clearLine(s.w)
}

func clearLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", clearWidth))
}
