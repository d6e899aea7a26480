package clip

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, fn func(string) error) {
	t.Helper()
	old := writeAll
	writeAll = fn
	t.Cleanup(func() { writeAll = old })
}

func TestCopy(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this system")
	}
	var got string
	stub(t, func(s string) error { got = s; return nil })

	require.NoError(t, Copy("HKEY_CURRENT_USER\\Software\tName\tData\r\n"))
	assert.Equal(t, "HKEY_CURRENT_USER\\Software\tName\tData\r\n", got)
}

func TestCopyError(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this system")
	}
	boom := errors.New("boom")
	stub(t, func(string) error { return boom })

	err := Copy("x")
	assert.ErrorIs(t, err, boom)
}
