package result

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")
	in := []Match{
		{Path: `HKEY_CURRENT_USER\Software\Acme`},
		{Path: `HKEY_CURRENT_USER\Software\Acme`, Data: "Acme Corp"},
		{Path: `HKEY_CURRENT_USER\Software\Acme`, Name: "Version", Data: "1.2"},
	}
	require.NoError(t, WriteFile(name, in))

	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\t(Default)\tAcme Corp\r\n")

	out, err := ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	entries, err := os.ReadDir(filepath.Dir(name))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.txt")
	require.NoError(t, WriteFile(name, []Match{{Path: `HKEY_USERS\a`}}))

	t.Run("append", func(t *testing.T) {
		s := NewSet(Match{Path: `HKEY_USERS\z`})
		require.NoError(t, s.LoadFile(name, true, false))
		assert.Equal(t, []Match{{Path: `HKEY_USERS\z`}, {Path: `HKEY_USERS\a`}}, s.All())
	})

	t.Run("replace", func(t *testing.T) {
		s := NewSet(Match{Path: `HKEY_USERS\z`})
		require.NoError(t, s.LoadFile(name, false, false))
		assert.Equal(t, []Match{{Path: `HKEY_USERS\a`}}, s.All())
	})

	t.Run("missing", func(t *testing.T) {
		s := NewSet(Match{Path: `HKEY_USERS\z`})
		assert.ErrorIs(t, s.LoadFile(filepath.Join(dir, "nope"), true, false), os.ErrNotExist)
		require.NoError(t, s.LoadFile(filepath.Join(dir, "nope"), true, true))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("malformed keeps set", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.txt")
		require.NoError(t, os.WriteFile(bad, []byte("a\tb\r\n"), 0o644))
		s := NewSet(Match{Path: `HKEY_USERS\z`})
		err := s.LoadFile(bad, false, false)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Equal(t, []Match{{Path: `HKEY_USERS\z`}}, s.All())
	})
}
