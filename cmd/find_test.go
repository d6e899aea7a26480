package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_Streams(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("find", "acme")
	env.contains(out, `HKEY_CURRENT_USER\Software\Acme`)
	env.contains(out, `HKEY_LOCAL_MACHINE\System\AcmeService`)
	env.contains(out, "Acme Corp")
	assert.NotContains(t, out, "cancelled")
}

func TestFind_Options(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	var res struct {
		Found   int    `json:"found"`
		Options string `json:"options"`
	}
	env.runJSON(&res, "find", "acme")
	assert.Equal(t, 5, res.Found)

	env.runJSON(&res, "find", "acme", "--data=false")
	assert.Equal(t, 2, res.Found)

	env.runJSON(&res, "find", "Acme", "--case")
	assert.Equal(t, 4, res.Found, "value data acme differs in case")

	env.runJSON(&res, "find", "acme", "-k", "HKCU/Software/Other")
	assert.Equal(t, 1, res.Found)

	_, err := env.runErr("find", "acme", "--std=false", "--real=false")
	assert.Error(t, err)
}

func TestFind_NoText(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.runErr("find")
	assert.Error(t, err)
}

func TestFind_Limit(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	var res struct {
		Found     int  `json:"found"`
		Limited   bool `json:"limited"`
		Cancelled bool `json:"cancelled"`
	}
	env.runJSON(&res, "find", "acme", "--limit", "2")
	assert.Equal(t, 2, res.Found)
	assert.True(t, res.Limited)
	assert.False(t, res.Cancelled)
}

func TestFind_Results(t *testing.T) {
	env := newTestEnv(t)
	env.seed()
	file := env.path("found.txt")

	out := env.run("find", "acme", "--results", file)
	env.contains(out, "5 match(es) found, 5 saved to")

	// Without --append the file's rows are replaced.
	out = env.run("find", "other", "--results", file)
	env.contains(out, "1 match(es) found, 1 saved to")

	out = env.run("find", "acme", "--results", file, "--append")
	env.contains(out, "5 match(es) found, 6 saved to")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 6)
}

func TestFind_Sorted(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("find", "acme", "--sort", "path", "--desc")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.Contains(t, lines[1], "HKEY_LOCAL_MACHINE")

	_, err := env.runErr("find", "acme", "--sort", "size")
	assert.Error(t, err)
}

func TestFind_SaveOptions(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	env.run("find", "acme", "--data=false", "--save-options")
	env.equals(env.run("config", "find.data"), "false")

	var res struct {
		Found int `json:"found"`
	}
	env.runJSON(&res, "find", "acme")
	assert.Equal(t, 2, res.Found, "saved options are the new defaults")
}
