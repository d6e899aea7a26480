package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1536, "1.5K"},
		{3 * 1024 * 1024, "3.0M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.in))
	}
}

func TestResults(t *testing.T) {
	ms := []result.Match{
		{Path: `HKEY_CURRENT_USER\Acme`},
		{Path: `HKEY_CURRENT_USER\Acme`, Name: "Vendor"},
		{Path: `HKEY_CURRENT_USER\Acme`, Data: "acme"},
	}
	var buf bytes.Buffer
	require.NoError(t, Results(&buf, ms, false))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Equal(t, `0  K  HKEY_CURRENT_USER\Acme`, lines[1], "key rows have an empty name column")
	assert.Contains(t, lines[2], "N  ")
	assert.Contains(t, lines[2], "Vendor")
	assert.Contains(t, lines[3], result.DefaultValueName)
	assert.True(t, strings.HasSuffix(lines[3], "acme"))
}

func TestResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Results(&buf, nil, false))
	assert.Empty(t, buf.String())
}

func TestMatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Match(&buf, result.Match{Path: `HKEY_USERS\X`, Name: "n"}, false))
	require.NoError(t, Match(&buf, result.Match{Path: `HKEY_USERS\X`, Data: strings.Repeat("x", 100)}, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, `N  HKEY_USERS\X  [n]`, lines[0])
	assert.Contains(t, lines[1], "[(Default)]")
	assert.True(t, strings.HasSuffix(lines[1], "..."))
}

func TestListing(t *testing.T) {
	keys := []store.Key{{Name: "Acme"}, {Name: "Beta"}}
	vals := []store.Value{{Name: "", Type: "REG_SZ", Data: "x"}, {Name: "Count", Type: "REG_DWORD", Data: "3"}}
	var buf bytes.Buffer
	require.NoError(t, Listing(&buf, keys, vals, false))
	out := buf.String()
	assert.Contains(t, out, "Acme\\\n")
	assert.Contains(t, out, "(Default)  REG_SZ     x")
	assert.Contains(t, out, "Count      REG_DWORD  3")
}

func TestTree(t *testing.T) {
	root := `HKEY_CURRENT_USER\Software`
	keys := []store.Key{
		{Path: root + `\Acme`},
		{Path: root + `\Acme\Widget`},
		{Path: root + `\Beta`},
	}
	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, root, keys))
	assert.Equal(t, root+"\n├── Acme\n│   └── Widget\n└── Beta\n", buf.String())
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "K", Glyph(result.KindKey, false))
	assert.Equal(t, "N", Glyph(result.KindName, false))
	assert.Equal(t, "D", Glyph(result.KindData, false))
}
