package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/hive/internal/store"
	"github.com/jpl-au/hive/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "hive-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

var opts = store.WriteOptions{}

// --- Keys ---

func TestStore_RootsSeeded(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, r := range []string{"HKEY_CURRENT_USER", "hkey_local_machine", "REGISTRY"} {
		ok, err := s.Exists(ctx, r)
		require.NoError(t, err)
		assert.True(t, ok, r)
	}

	roots, err := s.Roots(ctx, true, false)
	require.NoError(t, err)
	assert.Len(t, roots, 5)
}

func TestStore_InitIdempotent(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	require.NoError(t, s.Init())
}

func TestStore_CreateKeyCreatesAncestors(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateKey(ctx, `HKCU\Software\Acme\Widget`, opts)
	require.NoError(t, err)
	assert.True(t, created)

	for _, p := range []string{`HKEY_CURRENT_USER\Software`, `HKEY_CURRENT_USER\Software\Acme`} {
		k, err := s.Key(ctx, p)
		require.NoError(t, err, p)
		assert.Equal(t, p, k.Path)
	}

	created, err = s.CreateKey(ctx, `HKEY_CURRENT_USER\software\acme\widget`, opts)
	require.NoError(t, err)
	assert.False(t, created, "existing key is not recreated")
}

func TestStore_KeepsOriginalCase(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.CreateKey(ctx, `HKCU\Software\Acme`, opts)
	require.NoError(t, err)
	_, err = s.CreateKey(ctx, `HKCU\SOFTWARE\ACME\Child`, opts)
	require.NoError(t, err)

	k, err := s.Key(ctx, `HKEY_CURRENT_USER\software\acme\child`)
	require.NoError(t, err)
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Acme\Child`, k.Path)
	assert.Equal(t, "Child", k.Name)
}

func TestStore_KeyNotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.Key(context.Background(), `HKEY_CURRENT_USER\Nope`)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Subkeys(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, n := range []string{"beta", "Alpha", "gamma"} {
		_, err := s.CreateKey(ctx, `HKCU\Software\`+n, opts)
		require.NoError(t, err)
	}
	_, err := s.CreateKey(ctx, `HKCU\Software\Alpha\Deep`, opts)
	require.NoError(t, err)

	subs, err := s.Subkeys(ctx, `HKEY_CURRENT_USER\Software`)
	require.NoError(t, err)
	var names []string
	for _, k := range subs {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names)

	desc, err := s.Descendants(ctx, `HKEY_CURRENT_USER\Software`)
	require.NoError(t, err)
	assert.Len(t, desc, 4)
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Alpha`, desc[0].Path)
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Alpha\Deep`, desc[1].Path)
}

// --- Values ---

func TestStore_SetValueUpsert(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	key := `HKEY_CURRENT_USER\Software\Acme`
	require.NoError(t, s.SetValue(ctx, key, "Count", "dword", "1", opts))
	require.NoError(t, s.SetValue(ctx, key, "count", "REG_DWORD", "2", opts))

	v, err := s.Value(ctx, key, "COUNT")
	require.NoError(t, err)
	assert.Equal(t, "2", v.Data)
	assert.Equal(t, validate.TypeDword, v.Type)
	assert.Equal(t, "Count", v.Name, "upsert keeps the original name")

	vals, err := s.Values(ctx, key)
	require.NoError(t, err)
	assert.Len(t, vals, 1)
}

func TestStore_ValuesOrderDefaultFirst(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	key := `HKEY_LOCAL_MACHINE\System`
	require.NoError(t, s.SetValue(ctx, key, "zeta", "", "z", opts))
	require.NoError(t, s.SetValue(ctx, key, "Alpha", "", "a", opts))
	require.NoError(t, s.SetValue(ctx, key, "", "", "default", opts))

	vals, err := s.Values(ctx, key)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, "", vals[0].Name)
	assert.Equal(t, "Alpha", vals[1].Name)
	assert.Equal(t, "zeta", vals[2].Name)
}

func TestStore_SetValueValidation(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	key := `HKEY_CURRENT_USER\K`

	assert.ErrorIs(t, s.SetValue(ctx, key, "(Default)", "", "x", opts), validate.ErrInvalidName)
	assert.ErrorIs(t, s.SetValue(ctx, key, "n", "REG_LINK", "x", opts), validate.ErrInvalidType)
	assert.ErrorIs(t, s.SetValue(ctx, key, "n", "dword", "abc", opts), validate.ErrInvalidData)
	assert.ErrorIs(t, s.SetValue(ctx, key, "n", "", "toolong", store.WriteOptions{MaxData: 3}), validate.ErrDataTooLarge)
	assert.ErrorIs(t, s.SetValue(ctx, `NOPE\K`, "n", "", "x", opts), validate.ErrInvalidPath)

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "rejected writes create nothing")
}

func TestStore_DeleteValue(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()
	key := `HKEY_CURRENT_USER\K`

	require.NoError(t, s.SetValue(ctx, key, "a", "", "1", opts))
	require.NoError(t, s.DeleteValue(ctx, key, "A"))

	_, err := s.Value(ctx, key, "a")
	assert.ErrorIs(t, err, store.ErrValueNotFound)

	assert.ErrorIs(t, s.DeleteValue(ctx, key, "a"), store.ErrValueNotFound)
	assert.ErrorIs(t, s.DeleteValue(ctx, `HKEY_CURRENT_USER\Missing`, "a"), store.ErrNotFound)
}

// --- Delete subtree ---

func TestStore_DeleteKeySubtree(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.SetValue(ctx, `HKCU\App`, "v", "", "1", opts))
	require.NoError(t, s.SetValue(ctx, `HKCU\App\Sub`, "w", "", "2", opts))
	require.NoError(t, s.SetValue(ctx, `HKCU\App_Other`, "x", "", "3", opts))

	n, err := s.DeleteKey(ctx, `hkcu\app`)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n, "two keys and two values")

	ok, err := s.Exists(ctx, `HKEY_CURRENT_USER\App\Sub`)
	require.NoError(t, err)
	assert.False(t, ok)

	// A sibling sharing the prefix survives.
	ok, err = s.Exists(ctx, `HKEY_CURRENT_USER\App_Other`)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = s.Value(ctx, `HKEY_CURRENT_USER\App_Other`, "x")
	assert.NoError(t, err)
}

func TestStore_DeleteKeyErrors(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.DeleteKey(ctx, "HKCU")
	assert.ErrorIs(t, err, store.ErrRootKey)

	_, err = s.DeleteKey(ctx, `HKCU\Missing`)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- Maintenance ---

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.SetValue(ctx, `HKCU\A\B`, "n", "", "abcd", opts))
	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Keys)
	assert.Equal(t, int64(1), st.Values)
	assert.Equal(t, int64(4), st.DataBytes)
	assert.Positive(t, st.Newest)
}

func TestStore_VacuumAndCheckpoint(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.SetValue(ctx, `HKCU\A`, "n", "", "x", opts))
	_, err := s.DeleteKey(ctx, `HKCU\A`)
	require.NoError(t, err)

	_, err = s.Vacuum(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Checkpoint(ctx))
}

func TestStore_DB(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.SetValue(ctx, `HKCU\A`, "n", "", "x", opts))
	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM key_values`).Scan(&n))
	assert.Equal(t, 1, n)
}
