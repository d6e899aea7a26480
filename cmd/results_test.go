package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// found writes the result file of an "acme" search and returns its path.
func (e *testEnv) found(name string) string {
	e.t.Helper()
	e.seed()
	file := e.path(name)
	e.run("find", "acme", "--results", file)
	return file
}

func TestResults_Cat(t *testing.T) {
	env := newTestEnv(t)
	file := env.found("found.txt")

	out := env.run("results", "cat", file)
	env.contains(out, "AcmeService")
	env.contains(out, "Acme Corp")

	var res struct {
		Total   int   `json:"total"`
		Matches []any `json:"matches"`
	}
	env.runJSON(&res, "results", "cat", file, "--range", "1:3")
	assert.Equal(t, 5, res.Total)
	assert.Len(t, res.Matches, 2)

	_, err := env.runErr("results", "cat", env.path("missing.txt"))
	assert.Error(t, err)
}

func TestResults_Malformed(t *testing.T) {
	env := newBareEnv(t)
	file := env.path("bad.txt")
	require.NoError(t, os.WriteFile(file, []byte("not a result row\n"), 0o644))

	_, err := env.runErr("results", "cat", file)
	assert.Error(t, err)
}

func TestResults_SortRmClear(t *testing.T) {
	env := newTestEnv(t)
	file := env.found("found.txt")

	env.contains(env.run("results", "sort", file, "--sort", "data"), "Sorted 5 result(s) by data, ascending")
	env.contains(env.run("results", "rm", file, "0", "1"), "Deleted 2 result(s), 3 left")

	env.contains(env.run("results", "clear", file), "Cancelled")
	env.contains(env.run("results", "clear", file, "--force"), "0 left")
	env.contains(env.run("results", "cat", file), "No results")
}

func TestResults_Merge(t *testing.T) {
	env := newTestEnv(t)
	a := env.found("a.txt")
	b := env.path("b.txt")
	env.run("find", "other", "--results", b)

	dst := env.path("all.txt")
	out := env.run("results", "merge", dst, a, b)
	env.contains(out, "Merged 6 result(s)")
	env.contains(out, "6 total")
}

func TestResults_Diff(t *testing.T) {
	env := newTestEnv(t)
	a := env.found("a.txt")
	b := env.path("b.txt")
	env.run("find", "acme", "--results", b)

	env.contains(env.run("results", "diff", a, b), "No differences")

	env.run("results", "rm", b, "0")
	out := env.run("results", "diff", a, b)
	env.contains(out, "--- ")
	assert.NotContains(t, out, "No differences")
}

func TestResults_GoTo(t *testing.T) {
	env := newTestEnv(t)
	env.seed()
	file := env.path("found.txt")
	env.run("find", "Corp", "--results", file)

	out := env.run("results", "goto", file, "0")
	env.contains(out, `HKEY_CURRENT_USER\Software\Acme`)
	env.contains(out, "Acme Corp")

	_, err := env.runErr("results", "goto", file, "9")
	assert.Error(t, err)

	env.run("rm", "HKCU/Software/Acme", "--force")
	_, err = env.runErr("results", "goto", file, "0")
	assert.Error(t, err)
}
