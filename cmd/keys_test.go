package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	env := newTestEnv(t)
	env.equals(env.run("set", "HKCU/Software/Acme", "Version", "1.0"), `Set HKCU/Software/Acme [Version]`)
	env.run("set", "HKCU/Software/Acme", "@", "Acme Corp")

	env.equals(env.run("get", "HKCU/Software/Acme", "Version", "--raw"), "1.0")
	env.contains(env.run("get", "HKCU/Software/Acme"), "(Default) (REG_SZ): Acme Corp")

	out := env.run("get", "HKCU/Software/Acme", "--all")
	env.contains(out, "Version (REG_SZ): 1.0")
	env.contains(out, "Acme Corp")
}

func TestSet_Type(t *testing.T) {
	env := newTestEnv(t)
	env.run("set", "HKLM/System/Acme", "Port", "8080", "--type", "REG_DWORD")
	env.contains(env.run("get", "HKLM/System/Acme", "Port"), "Port (REG_DWORD): 8080")

	_, err := env.runErr("set", "HKLM/System/Acme", "Port", "x", "--type", "REG_NOPE")
	assert.Error(t, err)
}

func TestSet_RequiresAuthor(t *testing.T) {
	env := newBareEnv(t)
	env.run("init")
	out, err := env.runErr("set", "HKCU/Software/Acme", "Version", "1.0")
	assert.Error(t, err)
	env.contains(out, "author not configured")

	env.run("set", "HKCU/Software/Acme", "Version", "1.0", "--author", "someone")
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("ls")
	env.contains(out, "HKEY_CURRENT_USER")
	assert.NotContains(t, out, "REGISTRY")
	env.contains(env.run("ls", "--real"), "REGISTRY")

	env.run("set", "HKCU/Software/Acme/Plugins", "Enabled", "yes")
	out = env.run("ls", "HKCU/Software/Acme")
	env.contains(out, "Plugins")

	out = env.run("ls", "HKCU/Software", "-r")
	env.contains(out, "Acme")
	env.contains(out, "Plugins")

	var res struct {
		Key     string `json:"key"`
		Subkeys []any  `json:"subkeys"`
	}
	env.runJSON(&res, "ls", "HKCU/Software")
	assert.Equal(t, `HKEY_CURRENT_USER\Software`, res.Key)
	assert.Len(t, res.Subkeys, 1)
}

func TestMkkey(t *testing.T) {
	env := newTestEnv(t)
	env.contains(env.run("mkkey", "HKCU/Software/Acme"), "Created")
	env.contains(env.run("mkkey", "HKCU/Software/Acme"), "already exists")
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	env.run("set", "HKCU/Software/Acme", "Version", "1.0")
	env.run("set", "HKCU/Software/Acme", "Keep", "yes")

	env.run("rm", "HKCU/Software/Acme", "Version")
	_, err := env.runErr("get", "HKCU/Software/Acme", "Version")
	assert.Error(t, err)

	// No answer on stdin means no.
	env.contains(env.run("rm", "HKCU/Software/Acme"), "Cancelled")
	env.contains(env.run("get", "HKCU/Software/Acme", "Keep"), "yes")

	env.runStdin("y\n", "rm", "HKCU/Software/Acme")
	_, err = env.runErr("ls", "HKCU/Software/Acme")
	assert.Error(t, err)

	env.run("mkkey", "HKCU/Software/Gone")
	env.contains(env.run("rm", "HKCU/Software/Gone", "--force"), "Deleted")
}

func TestRm_Root(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.runErr("rm", "HKCU", "--force")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.run("set", "HKCU/Software/Acme", "@", "Acme Corp")
	env.run("set", "HKCU/Software/Acme/Plugins", "Enabled", "yes")

	file := env.path("acme.toml")
	env.contains(env.run("export", "HKCU/Software/Acme", file), "2 keys")

	_, err := env.runErr("export", "HKCU/Software/Acme", file)
	assert.Error(t, err, "existing file needs --force")

	out := env.run("import", file, "--under", "HKLM/Software/Acme", "--dry-run")
	env.contains(out, "Would import")
	_, err = env.runErr("ls", "HKLM/Software/Acme")
	assert.Error(t, err)

	env.run("import", file, "--under", "HKLM/Software/Acme")
	env.contains(env.run("get", "HKLM/Software/Acme/Plugins", "Enabled"), "yes")

	stdout := env.run("export", "HKCU/Software/Acme")
	env.contains(stdout, "[[keys]]")

	var res struct {
		Keys int    `json:"keys"`
		File string `json:"file"`
	}
	env.runJSON(&res, "export", "HKLM/Software/Acme", env.path("copy.toml"))
	require.Equal(t, 2, res.Keys)
}
