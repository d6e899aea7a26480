package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_TTY(t *testing.T) {
	var buf bytes.Buffer
	p := &Progress{w: &buf, label: "Importing", total: 5, isTTY: true}
	for range 5 {
		p.Increment()
	}
	assert.Contains(t, buf.String(), "Importing... 5/5 (100%)")
	p.Done()
	assert.True(t, strings.HasSuffix(buf.String(), "\r"))
}

func TestProgress_SmallOrPiped(t *testing.T) {
	var buf bytes.Buffer
	small := &Progress{w: &buf, label: "x", total: 2, isTTY: true}
	small.Increment()
	small.Done()
	piped := &Progress{w: &buf, label: "x", total: 50}
	piped.Increment()
	piped.Done()
	assert.Empty(t, buf.String())
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{w: &buf, label: "Searching", isTTY: true, frames: []string{"a", "b"}}
	s.Start()
	s.Tick()
	s.Tick()
	assert.Equal(t, 2, s.Count())
	assert.Contains(t, buf.String(), "a Searching... 2")
	s.Stop()

	off := &Spinner{w: &buf, frames: []string{"a"}}
	buf.Reset()
	off.Start()
	off.Tick()
	off.Stop()
	assert.Empty(t, buf.String())
	assert.Equal(t, 1, off.Count())
}
