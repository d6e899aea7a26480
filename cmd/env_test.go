// CLI integration tests build the hive binary once and drive it in a
// temporary directory, exercising command parsing, the service and the
// store together. Each environment gets its own HOME so global config and
// the audit log stay out of the user's.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the hive binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "hive-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "hive"
		if os.PathSeparator == '\\' {
			binaryName = "hive.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := filepath.Dir(mustGetwd())
		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv returns an environment with no store.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv returns an environment with an initialised store and an
// author configured.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	env.run("config", "author.name", "tester")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "HIVE_DB=", "HIVE_DIR=")
	return cmd
}

// run executes hive with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("hive %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes hive and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes hive with input on stdin.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("hive %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runJSON executes hive with -o json and decodes the output into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	cmd := e.command(append(args, "-o", "json")...)
	out, err := cmd.Output()
	require.NoError(e.t, err, "hive %v: %s", args, out)
	require.NoError(e.t, json.Unmarshal(out, v), "output: %s", out)
}

// path returns name inside the environment's directory.
func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// seed writes the tree most find tests search.
func (e *testEnv) seed() {
	e.t.Helper()
	e.run("set", "HKCU/Software/Acme", "@", "Acme Corp")
	e.run("set", "HKCU/Software/Acme", "InstallDir", `C:\Acme`)
	e.run("set", "HKCU/Software/Other", "Vendor", "acme")
	e.run("mkkey", "HKLM/System/AcmeService")
}
