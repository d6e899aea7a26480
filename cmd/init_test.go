package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)
	out := env.run("init")
	env.contains(out, "Initialised hive store")

	assert.FileExists(t, env.path(filepath.Join(".hive", "hive.db")))
	assert.FileExists(t, env.path(filepath.Join(".hive", ".gitignore")))
	assert.NoFileExists(t, env.path(filepath.Join(".hive", "config.yaml")))
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newBareEnv(t)
	env.run("init")
	out, err := env.runErr("init")
	assert.Error(t, err)
	env.contains(out, "already exists")

	env.run("init", "--force")
}

func TestInit_NamedAndLocal(t *testing.T) {
	env := newBareEnv(t)
	env.run("init", "--db", "work", "--local")

	assert.FileExists(t, env.path(filepath.Join(".hive", "hive-work.db")))
	gi, err := os.ReadFile(env.path(filepath.Join(".hive", ".gitignore")))
	require.NoError(t, err)
	assert.Contains(t, string(gi), "hive-work.db")

	out := env.run("db")
	env.contains(out, "hive-work.db")
	env.contains(out, "local")
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)
	out, err := env.runErr("ls")
	assert.Error(t, err)
	env.contains(out, "hive init")
}

func TestDiscovery_FromSubdirectory(t *testing.T) {
	env := newTestEnv(t)
	env.run("mkkey", "HKCU/Software/Acme")

	sub := env.path(filepath.Join("a", "b"))
	require.NoError(t, os.MkdirAll(sub, 0o755))
	env.dir = sub
	env.contains(env.run("ls", "HKCU/Software"), "Acme")
}
