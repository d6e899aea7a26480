package hive_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/findall"
	"github.com/jpl-au/hive/internal/hive"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a store in a temp directory and opens it.
func setupService(t *testing.T) *hive.Service {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	_, err = hive.Init(repo.InitOptions{})
	require.NoError(t, err)
	svc, err := hive.New("")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func seed(t *testing.T, svc *hive.Service) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.SetValue(ctx, `HKCU\Software\Acme`, "", "", "Acme Corp", "tester"))
	require.NoError(t, svc.SetValue(ctx, `HKCU\Software\Acme`, "InstallDir", "", `C:\Acme`, "tester"))
	require.NoError(t, svc.SetValue(ctx, `HKCU\Software\Acme\Widget`, "Colour", "", "blue", "tester"))
	_, err := svc.CreateKey(ctx, `HKLM\System\AcmeService`, "tester")
	require.NoError(t, err)
}

func TestService_AliasesAndSeparators(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)
	ctx := context.Background()

	k, err := svc.Key(ctx, "hkey_current_user/software/acme")
	require.NoError(t, err)
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Acme`, k.Path)

	v, err := svc.Value(ctx, `HKCU\Software\Acme`, "installdir")
	require.NoError(t, err)
	assert.Equal(t, `C:\Acme`, v.Data)
	assert.Equal(t, "REG_SZ", v.Type)
}

func TestService_MissingKeyVersusValue(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.Value(ctx, `HKCU\Software\Nope`, "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Value(ctx, `HKCU\Software\Acme`, "Nope")
	assert.ErrorIs(t, err, store.ErrValueNotFound)
	_, err = svc.Subkeys(ctx, `HKCU\Nope`)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Key(ctx, `HKXX\Nope`)
	assert.Error(t, err)
}

func TestService_ListAndDelete(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)
	ctx := context.Background()

	subs, err := svc.Subkeys(ctx, `HKCU\Software`)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Acme", subs[0].Name)

	desc, err := svc.Descendants(ctx, "HKCU")
	require.NoError(t, err)
	assert.Len(t, desc, 3)

	n, err := svc.DeleteKey(ctx, `HKCU\Software\Acme`, "tester")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n, "two keys and three values")

	ok, err := svc.Exists(ctx, `HKCU\Software\Acme\Widget`)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.DeleteKey(ctx, "HKCU", "tester")
	assert.ErrorIs(t, err, store.ErrRootKey)
}

func TestService_TreeDrivesFindAll(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	c := findall.New(svc.Tree(), findall.Settings{}, findall.WithNavigator(svc))
	require.NoError(t, c.Find(context.Background(), "acme", "", find.DefaultOptions))

	want := []result.Match{
		{Path: `HKEY_CURRENT_USER\Software\Acme`},
		{Path: `HKEY_CURRENT_USER\Software\Acme`, Name: "", Data: "Acme Corp"},
		{Path: `HKEY_CURRENT_USER\Software\Acme`, Name: "InstallDir", Data: `C:\Acme`},
		{Path: `HKEY_LOCAL_MACHINE\System\AcmeService`},
	}
	assert.Equal(t, want, c.Results())

	_, err := c.GoTo(context.Background(), 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteValue(context.Background(), `HKCU\Software\Acme`, "InstallDir", "tester"))
	_, err = c.GoTo(context.Background(), 2)
	assert.ErrorIs(t, err, findall.ErrItemNotFound)
}

func TestService_LimitsFromConfig(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir, "config.yaml"),
		[]byte("limits:\n  max_data: 4\n"), 0o644))
	require.NoError(t, svc.ReloadConfig())

	err := svc.SetValue(ctx, `HKCU\A`, "v", "", "toolong", "tester")
	assert.Error(t, err)
	require.NoError(t, svc.SetValue(ctx, `HKCU\A`, "v", "", "ok", "tester"))
}

type recorder struct {
	events []extension.Event
}

func (r *recorder) Name() string                  { return "hive-test-recorder" }
func (r *recorder) Commands() []*cobra.Command    { return nil }
func (r *recorder) MCPTools() []extension.MCPTool { return nil }
func (r *recorder) HandleEvent(_ extension.Context, e extension.Event) error {
	r.events = append(r.events, e)
	return nil
}

func TestService_FiresEvents(t *testing.T) {
	rec := &recorder{}
	extension.Register(rec)

	svc := setupService(t)
	svc.SetExtensionContext(extension.NewContext(svc, svc.DB(), nil))
	ctx := context.Background()

	_, err := svc.CreateKey(ctx, `HKCU\Ev`, "amy")
	require.NoError(t, err)
	_, err = svc.CreateKey(ctx, `HKCU\Ev`, "amy")
	require.NoError(t, err)
	require.NoError(t, svc.SetValue(ctx, `hkcu\Ev`, "n", "dword", "1", "amy"))
	require.NoError(t, svc.DeleteValue(ctx, `HKCU\Ev`, "n", "amy"))
	_, err = svc.DeleteKey(ctx, `HKCU\Ev`, "")
	require.NoError(t, err)

	var types []extension.EventType
	for _, e := range rec.events {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []extension.EventType{
		extension.EventKeyCreate,
		extension.EventValueSet,
		extension.EventValueDelete,
		extension.EventKeyDelete,
	}, types, "an existing key fires nothing")

	set := rec.events[1].(extension.ValueEvent)
	assert.Equal(t, `HKEY_CURRENT_USER\Ev`, set.Path)
	assert.Equal(t, "REG_DWORD", set.Type)
	assert.Equal(t, hive.DefaultAuthor, rec.events[3].(extension.KeyEvent).Author)
}
