package find

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jpl-au/hive/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTree is an in-memory Tree keyed by full path.
type memTree struct {
	mu     sync.Mutex
	roots  []string
	real   []string
	subs   map[string][]string
	values map[string][]Value
	calls  int
	fail   string
}

func newMemTree() *memTree {
	return &memTree{
		roots:  []string{"HKEY_CURRENT_USER", "HKEY_LOCAL_MACHINE"},
		real:   []string{"REGISTRY"},
		subs:   map[string][]string{},
		values: map[string][]Value{},
	}
}

func (t *memTree) key(p string) {
	for {
		i := strings.LastIndex(p, `\`)
		if i < 0 {
			return
		}
		parent, name := p[:i], p[i+1:]
		if !contains(t.subs[parent], name) {
			t.subs[parent] = append(t.subs[parent], name)
		}
		p = parent
	}
}

func (t *memTree) value(p, name, data string) {
	t.key(p)
	t.values[p] = append(t.values[p], Value{Name: name, Data: data})
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func (t *memTree) Roots(_ context.Context, std, real bool) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	var out []string
	if std {
		out = append(out, t.roots...)
	}
	if real {
		out = append(out, t.real...)
	}
	return out, nil
}

func (t *memTree) Subkeys(_ context.Context, key string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	if key == t.fail {
		return nil, errors.New("disk on fire")
	}
	return t.subs[key], nil
}

func (t *memTree) Values(_ context.Context, key string) ([]Value, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return t.values[key], nil
}

func fixture() *memTree {
	t := newMemTree()
	t.key(`HKEY_CURRENT_USER\Software\Acme\Widget`)
	t.value(`HKEY_CURRENT_USER\Software\Acme`, "", "acme default")
	t.value(`HKEY_CURRENT_USER\Software\Acme`, "InstallDir", `C:\Acme`)
	t.value(`HKEY_CURRENT_USER\Software\Acme\Widget`, "AcmeColour", "red")
	t.key(`HKEY_LOCAL_MACHINE\System\AcmeService`)
	return t
}

// recorder collects events and never continues on its own.
type recorder struct {
	events []Event
}

func (r *recorder) cb(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) last() Event { return r.events[len(r.events)-1] }

func (r *recorder) matches() []result.Match {
	var out []result.Match
	for _, ev := range r.events {
		if !ev.Done {
			out = append(out, ev.Match)
		}
	}
	return out
}

func TestEngine_StartContinueCount(t *testing.T) {
	e := NewEngine(fixture())
	var r recorder

	require.NoError(t, e.Start(context.Background(), "", "acme", DefaultOptions, r.cb))
	continues := 0
	for !r.last().Done {
		require.NoError(t, e.Continue())
		continues++
	}

	got := r.matches()
	assert.Equal(t, len(got), continues, "N matches need exactly N continues after start")
	assert.Equal(t, []result.Match{
		{Path: `HKEY_CURRENT_USER\Software\Acme`},
		{Path: `HKEY_CURRENT_USER\Software\Acme`, Name: "", Data: "acme default"},
		{Path: `HKEY_CURRENT_USER\Software\Acme`, Name: "InstallDir", Data: `C:\Acme`},
		{Path: `HKEY_CURRENT_USER\Software\Acme\Widget`, Name: "AcmeColour"},
		{Path: `HKEY_LOCAL_MACHINE\System\AcmeService`},
	}, got)
	assert.False(t, r.last().Cancelled)
	assert.False(t, e.IsRunning())
}

func TestEngine_NoDuplicates(t *testing.T) {
	e := NewEngine(fixture())
	var r recorder
	require.NoError(t, e.Start(context.Background(), "", "a", DefaultOptions, r.cb))
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	seen := map[result.Match]bool{}
	for _, m := range r.matches() {
		assert.False(t, seen[m], "duplicate %v", m)
		seen[m] = true
	}
}

func TestEngine_EmptyTextNoStep(t *testing.T) {
	tree := fixture()
	e := NewEngine(tree)
	called := false
	require.NoError(t, e.Start(context.Background(), "", "", DefaultOptions, func(Event) { called = true }))
	assert.False(t, called)
	assert.Zero(t, tree.calls)
	assert.False(t, e.IsRunning())
}

func TestEngine_ContinueNotRunning(t *testing.T) {
	e := NewEngine(fixture())
	assert.ErrorIs(t, e.Continue(), ErrInvalidState)
}

func TestEngine_CancelAtMostOneMore(t *testing.T) {
	e := NewEngine(fixture())
	var r recorder
	require.NoError(t, e.Start(context.Background(), "", "acme", DefaultOptions, r.cb))
	require.False(t, r.last().Done)

	before := len(r.matches())
	e.Cancel()
	assert.True(t, e.IsCancelled())
	require.NoError(t, e.Continue())
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	assert.LessOrEqual(t, len(r.matches())-before, 1)
	assert.True(t, r.last().Cancelled)
	assert.False(t, e.IsRunning())
}

func TestEngine_NilContext(t *testing.T) {
	e := NewEngine(fixture())
	var r recorder
	var ctx context.Context
	require.NoError(t, e.Start(ctx, "", "acme", DefaultOptions, r.cb))
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	assert.Len(t, r.matches(), 5)
	assert.False(t, r.last().Cancelled)
}

func TestEngine_ContextCancel(t *testing.T) {
	e := NewEngine(fixture())
	ctx, cancel := context.WithCancel(context.Background())
	var r recorder
	require.NoError(t, e.Start(ctx, "", "acme", DefaultOptions, r.cb))
	cancel()
	require.NoError(t, e.Continue())
	assert.True(t, r.last().Done)
	assert.True(t, r.last().Cancelled)
	assert.True(t, e.IsCancelled())
}

func TestEngine_ReentrantContinue(t *testing.T) {
	e := NewEngine(fixture())
	var got []Event
	cb := func(ev Event) {
		got = append(got, ev)
		if !ev.Done {
			require.NoError(t, e.Continue())
		}
	}
	require.NoError(t, e.Start(context.Background(), "", "acme", DefaultOptions, cb))
	require.Len(t, got, 6)
	assert.True(t, got[5].Done)
	assert.False(t, e.IsRunning())
}

func TestEngine_StartWhileRunningCancelsOld(t *testing.T) {
	e := NewEngine(fixture())
	var first, second recorder
	require.NoError(t, e.Start(context.Background(), "", "acme", DefaultOptions, first.cb))
	require.NoError(t, e.Start(context.Background(), "", "widget", DefaultOptions, second.cb))

	assert.True(t, first.last().Done)
	assert.True(t, first.last().Cancelled)
	assert.False(t, e.IsCancelled(), "new session starts uncancelled")
	require.NotEmpty(t, second.events)
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Acme\Widget`, second.events[0].Match.Path)
}

func TestEngine_StartFromCallbackBusy(t *testing.T) {
	e := NewEngine(fixture())
	var inner error
	cb := func(ev Event) {
		if !ev.Done && inner == nil {
			inner = e.Start(context.Background(), "", "other", DefaultOptions, func(Event) {})
		}
	}
	require.NoError(t, e.Start(context.Background(), "", "acme", DefaultOptions, cb))
	assert.ErrorIs(t, inner, ErrBusy)
}

func TestEngine_SelectedKey(t *testing.T) {
	e := NewEngine(fixture())
	var r recorder
	opts := DefaultOptions | SearchSelected
	require.NoError(t, e.Start(context.Background(), `HKEY_CURRENT_USER\Software\Acme`, "acme", opts, r.cb))
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	// The start key's own name is not matched, its values and children are.
	for _, m := range r.matches() {
		assert.NotEqual(t, result.Match{Path: `HKEY_CURRENT_USER\Software\Acme`}, m)
		assert.True(t, strings.HasPrefix(m.Path, `HKEY_CURRENT_USER\Software\Acme`))
	}
	assert.Len(t, r.matches(), 3)
}

func TestEngine_SelectedWithoutStart(t *testing.T) {
	e := NewEngine(fixture())
	err := e.Start(context.Background(), "", "x", DefaultOptions|SearchSelected, func(Event) {})
	assert.ErrorIs(t, err, ErrNoStartKey)
}

func TestEngine_OneMatchPerValueNameWins(t *testing.T) {
	tree := newMemTree()
	tree.value(`HKEY_CURRENT_USER\K`, "blue", "blue")
	e := NewEngine(tree)
	var r recorder
	require.NoError(t, e.Start(context.Background(), "", "blue", DefaultOptions, r.cb))
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	assert.Equal(t, []result.Match{{Path: `HKEY_CURRENT_USER\K`, Name: "blue"}}, r.matches())
}

func TestEngine_RealView(t *testing.T) {
	tree := newMemTree()
	tree.key(`REGISTRY\Machine\Target`)
	tree.key(`HKEY_CURRENT_USER\Target`)
	e := NewEngine(tree)
	var r recorder
	require.NoError(t, e.Start(context.Background(), "", "target", SearchKeys|SearchRealRegistry, r.cb))
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	assert.Equal(t, []result.Match{{Path: `REGISTRY\Machine\Target`}}, r.matches())
}

func TestEngine_TreeError(t *testing.T) {
	tree := fixture()
	tree.fail = `HKEY_CURRENT_USER\Software`
	e := NewEngine(tree)
	var r recorder
	require.NoError(t, e.Start(context.Background(), "", "zzz", DefaultOptions, r.cb))
	require.True(t, r.last().Done)
	assert.Error(t, r.last().Err)
	assert.False(t, e.IsRunning())
}

func TestEngine_CancelFromOtherGoroutine(t *testing.T) {
	tree := newMemTree()
	for i := range 50 {
		tree.key(`HKEY_CURRENT_USER\k` + strings.Repeat("x", i%5) + string(rune('a'+i%26)) + "match")
	}
	e := NewEngine(tree)
	var r recorder
	require.NoError(t, e.Start(context.Background(), "", "match", SearchKeys|SearchStdRegistry, r.cb))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Cancel()
	}()
	wg.Wait()
	for !r.last().Done {
		require.NoError(t, e.Continue())
	}
	assert.True(t, r.last().Cancelled)
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		in   string
		want bool
	}{
		{"substring fold", "acme", 0, "MyAcmeApp", true},
		{"case sensitive miss", "acme", MatchCase, "MyAcmeApp", false},
		{"case sensitive hit", "Acme", MatchCase, "MyAcmeApp", true},
		{"whole word miss", "acme", MatchWholeWords, "MyAcmeApp", false},
		{"whole word hit", "acme", MatchWholeWords, "the acme app", true},
		{"whole word punctuation", "acme", MatchWholeWords, `C:\Acme\bin`, true},
		{"underscore is word", "acme", MatchWholeWords, "acme_app", false},
		{"second occurrence", "acme", MatchWholeWords, "acmeX acme", true},
		{"empty candidate", "acme", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMatcher(tt.text, tt.opts).Match(tt.in))
		})
	}
}

func TestOptions(t *testing.T) {
	o := SearchKeys | SearchStdRegistry
	assert.True(t, o.Has(SearchKeys))
	assert.False(t, o.Has(SearchKeys|SearchData))
	assert.True(t, o.CanStart())
	assert.False(t, SearchKeys.CanStart())
	assert.Equal(t, o, o.With(SearchData).Without(SearchData))
	assert.Equal(t, "keys|std", o.String())
	assert.Equal(t, "none", Options(0).String())
	assert.True(t, o.Set(MatchCase, true).Has(MatchCase))
	assert.Len(t, optionNames, 8)
}
