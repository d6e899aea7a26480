package findall

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatTree is one root with n child keys named item0..itemN-1.
type flatTree struct {
	n     int
	steps int
}

func (t *flatTree) Roots(context.Context, bool, bool) ([]string, error) {
	t.steps++
	return []string{"HKEY_CURRENT_USER"}, nil
}

func (t *flatTree) Subkeys(_ context.Context, key string) ([]string, error) {
	t.steps++
	if key != "HKEY_CURRENT_USER" {
		return nil, nil
	}
	var out []string
	for i := range t.n {
		out = append(out, "item"+string(rune('A'+i)))
	}
	return out, nil
}

func (t *flatTree) Values(context.Context, string) ([]find.Value, error) {
	t.steps++
	return nil, nil
}

const opts = find.SearchKeys | find.SearchStdRegistry

type nav struct{ exists map[string]bool }

func (n nav) GoTo(_ context.Context, m result.Match) (bool, error) {
	return n.exists[m.Path], nil
}

type saver struct{ saved []Settings }

func (s *saver) SaveSettings(st Settings) error {
	s.saved = append(s.saved, st)
	return nil
}

func TestFind_AutoPaceRunsToCompletion(t *testing.T) {
	var states []string
	c := New(&flatTree{n: 4}, Settings{}, OnState(func(from, to State) {
		states = append(states, from.String()+">"+to.String())
	}))

	require.NoError(t, c.Find(context.Background(), "item", "", opts))
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, Idle, c.State())
	assert.Contains(t, states, "searching>completed")
	assert.Equal(t, "completed>idle", states[len(states)-1])
	assert.NotEmpty(t, c.Session())
}

func TestFind_EmptyTextRejected(t *testing.T) {
	tree := &flatTree{n: 3}
	c := New(tree, Settings{})
	assert.ErrorIs(t, c.Find(context.Background(), "", "", opts), ErrCannotStart)
	assert.Zero(t, tree.steps)
	assert.Equal(t, Idle, c.State())
}

func TestFind_NoViewRejected(t *testing.T) {
	tree := &flatTree{n: 3}
	c := New(tree, Settings{})
	assert.ErrorIs(t, c.Find(context.Background(), "item", "", find.SearchKeys), ErrCannotStart)
	assert.Zero(t, tree.steps)
}

// rootsErrTree fails to list its roots.
type rootsErrTree struct{ flatTree }

func (t *rootsErrTree) Roots(context.Context, bool, bool) ([]string, error) {
	return nil, errors.New("roots unavailable")
}

func TestFind_SelectedWithoutStartKeepsResults(t *testing.T) {
	tree := &flatTree{n: 3}
	c := New(tree, Settings{})
	require.NoError(t, c.Find(context.Background(), "itemA", "", opts))
	require.Equal(t, 1, c.Len())

	err := c.Find(context.Background(), "item", "", opts|find.SearchSelected)
	assert.ErrorIs(t, err, ErrCannotStart)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, Idle, c.State())
}

func TestFind_RejectedStartKeepsResults(t *testing.T) {
	c := New(&rootsErrTree{}, Settings{})
	require.NoError(t, c.Load(strings.NewReader(result.Format([]result.Match{{Path: `HKEY_CURRENT_USER\kept`}})), false))

	err := c.Find(context.Background(), "item", "", opts)
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, err, c.Err())

	// The next accepted find still replaces the set.
	c2 := New(&flatTree{n: 2}, Settings{})
	require.NoError(t, c2.Load(strings.NewReader(result.Format([]result.Match{{Path: `HKEY_CURRENT_USER\kept`}})), false))
	require.NoError(t, c2.Find(context.Background(), "item", "", opts))
	assert.Equal(t, 2, c2.Len())
}

func TestFind_ManualPace(t *testing.T) {
	c := New(&flatTree{n: 3}, Settings{}, WithManualPace())
	ctx := context.Background()

	require.NoError(t, c.Find(ctx, "item", "", opts))
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Continue())
	require.NoError(t, c.Continue())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, Paused, c.State())

	require.NoError(t, c.Continue())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 3, c.Len())
}

func TestFind_RepeatWhileRunningContinues(t *testing.T) {
	c := New(&flatTree{n: 3}, Settings{}, WithManualPace())
	ctx := context.Background()

	require.NoError(t, c.Find(ctx, "item", "", opts))
	first := c.Results()
	require.NoError(t, c.Find(ctx, "item", "", opts))

	got := c.Results()
	require.Len(t, got, 2)
	assert.Equal(t, first[0], got[0], "collected matches are kept")
	assert.NotEqual(t, got[0], got[1], "no duplicate")
}

func TestContinues(t *testing.T) {
	c := New(&flatTree{n: 3}, Settings{}, WithManualPace())
	ctx := context.Background()
	assert.False(t, c.Continues("item", "", opts), "idle")

	require.NoError(t, c.Find(ctx, "item", "", opts))
	assert.True(t, c.Continues("item", "", opts))
	assert.False(t, c.Continues("itemC", "", opts))
	assert.False(t, c.Continues("item", "", opts|find.MatchCase))
}

func TestFind_DifferentTextRestarts(t *testing.T) {
	var states []string
	c := New(&flatTree{n: 3}, Settings{}, WithManualPace(), OnState(func(from, to State) {
		states = append(states, to.String())
	}))
	ctx := context.Background()

	require.NoError(t, c.Find(ctx, "item", "", opts))
	require.NoError(t, c.Find(ctx, "itemC", "", opts))

	assert.Contains(t, states, "cancelled")
	assert.Equal(t, []result.Match{{Path: `HKEY_CURRENT_USER\itemC`}}, c.Results())
	assert.Equal(t, Paused, c.State())
}

func TestFind_AppendMode(t *testing.T) {
	c := New(&flatTree{n: 2}, Settings{Append: true})
	ctx := context.Background()
	require.NoError(t, c.Find(ctx, "itemA", "", opts))
	require.NoError(t, c.Find(ctx, "itemB", "", opts))
	assert.Equal(t, 2, c.Len())

	c.SetAppend(false)
	require.NoError(t, c.Find(ctx, "itemB", "", opts))
	assert.Equal(t, 1, c.Len())
}

func TestCancel_Paused(t *testing.T) {
	c := New(&flatTree{n: 5}, Settings{}, WithManualPace())
	require.NoError(t, c.Find(context.Background(), "item", "", opts))

	var last State
	c.onState = func(from, to State) {
		if to != Idle {
			last = to
		}
	}
	c.Cancel()
	assert.Equal(t, Cancelled, last)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 1, c.Len())
}

func TestCancel_FromMatchHook(t *testing.T) {
	var c *Controller
	c = New(&flatTree{n: 10}, Settings{}, OnMatch(func(i int, _ result.Match) {
		if i == 2 {
			c.RequestCancel()
		}
	}))
	require.NoError(t, c.Find(context.Background(), "item", "", opts))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, Idle, c.State())
}

func TestContinue_Idle(t *testing.T) {
	c := New(&flatTree{}, Settings{})
	assert.ErrorIs(t, c.Continue(), find.ErrInvalidState)
}

func TestClose(t *testing.T) {
	s := &saver{}
	c := New(&flatTree{n: 3}, Settings{Options: find.DefaultOptions}, WithManualPace(), WithSaver(s))
	require.NoError(t, c.Find(context.Background(), "item", "", opts))

	err := c.Close(func() bool { return false })
	assert.ErrorIs(t, err, ErrCloseAborted)
	assert.True(t, c.Running())
	assert.Empty(t, s.saved)

	require.NoError(t, c.Close(func() bool { return true }))
	assert.False(t, c.Running())
	require.Len(t, s.saved, 1)
	assert.Equal(t, opts, s.saved[0].Options)
}

func TestClose_IdleSkipsConfirm(t *testing.T) {
	s := &saver{}
	c := New(&flatTree{}, Settings{Append: true}, WithSaver(s))
	require.NoError(t, c.Close(func() bool {
		t.Fatal("confirm called while idle")
		return false
	}))
	require.Len(t, s.saved, 1)
	assert.True(t, s.saved[0].Append)
}

func TestGoTo(t *testing.T) {
	n := nav{exists: map[string]bool{`HKEY_CURRENT_USER\itemA`: true}}
	c := New(&flatTree{n: 2}, Settings{}, WithNavigator(n))
	require.NoError(t, c.Find(context.Background(), "item", "", opts))

	m, err := c.GoTo(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, `HKEY_CURRENT_USER\itemA`, m.Path)

	_, err = c.GoTo(context.Background(), 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, "item not found", ErrItemNotFound.Error())
	assert.Equal(t, 2, c.Len(), "failed navigation leaves results")

	_, err = c.GoTo(context.Background(), 7)
	assert.ErrorIs(t, err, result.ErrIndexOutOfRange)
}

func TestResultOps(t *testing.T) {
	c := New(&flatTree{n: 4}, Settings{})
	require.NoError(t, c.Find(context.Background(), "item", "", opts))

	c.Sort(result.ColumnPath, false)
	assert.Equal(t, `HKEY_CURRENT_USER\itemD`, c.Results()[0].Path)

	require.NoError(t, c.DeleteSelected([]int{0, 3}))
	assert.Equal(t, 2, c.Len())

	text, err := c.Copy(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(text, "\r\n"))

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))
	c.DeleteAll()
	assert.Zero(t, c.Len())

	require.NoError(t, c.Load(&buf, false))
	assert.Equal(t, 2, c.Len())

	err = c.Load(strings.NewReader("broken"), true)
	assert.True(t, errors.Is(err, result.ErrMalformed))
	assert.Equal(t, 2, c.Len())
}
