// Package findall drives a find-all session: it owns the engine, the
// collected results and the state a host displays.
//
// A Controller moves through Idle, Searching, Paused, Completed and
// Cancelled. Completed and Cancelled are passed through on the way back to
// Idle so hooks can observe how a session ended. In auto pace the
// controller resumes the engine after every match itself; in manual pace
// it stays Paused until the host calls Continue, which lets a display
// apply back-pressure.
package findall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/result"
)

var (
	// ErrCannotStart is returned when a find has no text, no store view,
	// or asks for a selected-key search without a start key.
	ErrCannotStart = errors.New("cannot start search: text and a store view are required")
	// ErrItemNotFound is returned when a result no longer exists in the store.
	ErrItemNotFound = errors.New("item not found")
	// ErrCloseAborted is returned when the user declines to stop a running search.
	ErrCloseAborted = errors.New("close aborted")
)

// State is the controller's position in a session.
type State int

const (
	Idle State = iota
	Searching
	Paused
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Settings are the persisted find preferences.
type Settings struct {
	Options find.Options
	Append  bool
}

// Saver persists settings on request.
type Saver interface {
	SaveSettings(Settings) error
}

// Navigator reveals a result in the store. It reports false when the item
// no longer exists.
type Navigator interface {
	GoTo(ctx context.Context, m result.Match) (bool, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithSaver sets where SaveSettings writes.
func WithSaver(s Saver) Option { return func(c *Controller) { c.saver = s } }

// WithNavigator sets the target of GoTo.
func WithNavigator(n Navigator) Option { return func(c *Controller) { c.nav = n } }

// WithManualPace leaves the controller Paused after each match.
func WithManualPace() Option { return func(c *Controller) { c.auto = false } }

// OnState registers a hook called after every state change.
func OnState(fn func(from, to State)) Option { return func(c *Controller) { c.onState = fn } }

// OnMatch registers a hook called after a match is appended, with its index.
func OnMatch(fn func(index int, m result.Match)) Option {
	return func(c *Controller) { c.onMatch = fn }
}

// Controller runs find-all sessions over a tree.
type Controller struct {
	engine *find.Engine
	saver  Saver
	nav    Navigator
	auto   bool

	onState func(from, to State)
	onMatch func(int, result.Match)

	mu       sync.Mutex
	state    State
	settings Settings
	results  *result.Set
	text     string
	start    string
	opts     find.Options
	session  string
	lastErr  error
	// fresh marks a replacing session whose set is cleared on its first
	// event, so a find the engine rejects leaves the old results alone.
	fresh bool
}

// New returns an idle controller over tree using settings as the initial
// preferences.
func New(tree find.Tree, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		engine:   find.NewEngine(tree),
		auto:     true,
		settings: settings,
		results:  result.NewSet(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Find searches for text below start (or across the selected views). A
// find that repeats the running session continues it; a different one
// cancels it and starts over.
func (c *Controller) Find(ctx context.Context, text, start string, opts find.Options) error {
	if text == "" || !opts.CanStart() || (opts.Has(find.SearchSelected) && start == "") {
		return ErrCannotStart
	}

	c.mu.Lock()
	active := c.state == Searching || c.state == Paused
	same := c.same(text, start, opts)
	c.mu.Unlock()

	if active {
		if same {
			return c.Continue()
		}
		c.Cancel()
	}

	c.mu.Lock()
	c.fresh = !c.settings.Append
	c.text, c.start, c.opts = text, start, opts
	c.settings.Options = opts
	sid := uuid.NewString()
	c.session = sid
	c.lastErr = nil
	from := c.state
	c.state = Searching
	c.mu.Unlock()
	c.changed(from, Searching)

	cb := func(ev find.Event) { c.handle(sid, ev) }
	if err := c.engine.Start(ctx, start, text, opts, cb); err != nil {
		c.mu.Lock()
		c.state = Idle
		c.lastErr = err
		c.fresh = false
		c.mu.Unlock()
		c.changed(Searching, Idle)
		return err
	}
	return nil
}

// Continues reports whether Find with these arguments would continue the
// running session rather than start a new one.
func (c *Controller) Continues(text, start string, opts find.Options) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.state == Searching || c.state == Paused) && c.same(text, start, opts)
}

func (c *Controller) same(text, start string, opts find.Options) bool {
	return c.text == text && c.opts == opts && c.start == start
}

// handle receives engine events for session sid. Events from a session
// that has since been replaced are dropped.
func (c *Controller) handle(sid string, ev find.Event) {
	c.mu.Lock()
	stale := sid != c.session
	if !stale && c.fresh {
		c.results.Clear()
		c.fresh = false
	}
	c.mu.Unlock()
	if stale {
		return
	}
	if ev.Done {
		end := Completed
		if ev.Cancelled {
			end = Cancelled
		}
		c.mu.Lock()
		from := c.state
		c.state = end
		c.lastErr = ev.Err
		c.mu.Unlock()
		c.changed(from, end)

		c.mu.Lock()
		c.state = Idle
		c.mu.Unlock()
		c.changed(end, Idle)
		return
	}

	c.mu.Lock()
	c.results.Append(ev.Match)
	idx := c.results.Len() - 1
	from := c.state
	c.state = Paused
	c.mu.Unlock()
	c.changed(from, Paused)

	if c.onMatch != nil {
		c.onMatch(idx, ev.Match)
	}
	if c.auto {
		_ = c.Continue()
	}
}

// Continue resumes a paused session.
func (c *Controller) Continue() error {
	c.mu.Lock()
	from := c.state
	if from == Paused {
		c.state = Searching
	}
	c.mu.Unlock()
	if from == Paused {
		c.changed(Paused, Searching)
	}
	if err := c.engine.Continue(); err != nil {
		return fmt.Errorf("continue: %w", err)
	}
	return nil
}

// Cancel stops the running session. A paused session is resumed so the
// cancellation is delivered before Cancel returns.
func (c *Controller) Cancel() {
	c.engine.Cancel()
	c.mu.Lock()
	paused := c.state == Paused
	c.mu.Unlock()
	if paused {
		if err := c.Continue(); err != nil && !errors.Is(err, find.ErrBusy) && !errors.Is(err, find.ErrInvalidState) {
			c.mu.Lock()
			c.lastErr = err
			c.mu.Unlock()
		}
	}
}

// RequestCancel flags the running session for cancellation without
// resuming it. It is safe to call from any goroutine.
func (c *Controller) RequestCancel() {
	c.engine.Cancel()
}

// Close ends the controller's use. A running session is cancelled once
// confirm agrees; a nil confirm always agrees. Settings are saved last.
func (c *Controller) Close(confirm func() bool) error {
	if c.Running() {
		if confirm != nil && !confirm() {
			return ErrCloseAborted
		}
		c.Cancel()
	}
	return c.SaveSettings()
}

// SaveSettings writes the current settings through the saver, if any.
func (c *Controller) SaveSettings() error {
	if c.saver == nil {
		return nil
	}
	if err := c.saver.SaveSettings(c.Settings()); err != nil {
		return fmt.Errorf("saving find settings: %w", err)
	}
	return nil
}

// GoTo reveals the result at index i.
func (c *Controller) GoTo(ctx context.Context, i int) (result.Match, error) {
	c.mu.Lock()
	m, err := c.results.At(i)
	c.mu.Unlock()
	if err != nil {
		return m, err
	}
	if c.nav == nil {
		return m, fmt.Errorf("%w: %s", ErrItemNotFound, m.Path)
	}
	ok, err := c.nav.GoTo(ctx, m)
	if err != nil {
		return m, err
	}
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrItemNotFound, describe(m))
	}
	return m, nil
}

func describe(m result.Match) string {
	if m.Kind() == result.KindKey {
		return m.Path
	}
	return m.Path + " [" + m.ColumnText(result.ColumnName) + "]"
}

func (c *Controller) changed(from, to State) {
	if c.onState != nil && from != to {
		c.onState(from, to)
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Running reports whether a session is Searching or Paused.
func (c *Controller) Running() bool {
	s := c.State()
	return s == Searching || s == Paused
}

// Err returns the store error that ended the last session, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Session returns the identifier of the most recent session.
func (c *Controller) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Text returns the text of the most recent session.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Settings returns a copy of the current settings.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetOptions replaces the remembered options without starting a search.
func (c *Controller) SetOptions(o find.Options) {
	c.mu.Lock()
	c.settings.Options = o
	c.mu.Unlock()
}

// SetAppend switches append mode for the next session.
func (c *Controller) SetAppend(on bool) {
	c.mu.Lock()
	c.settings.Append = on
	c.mu.Unlock()
}

// Results returns a copy of the collected matches.
func (c *Controller) Results() []result.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.All()
}

// Len returns the number of collected matches.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.Len()
}

// Sort reorders the results by column.
func (c *Controller) Sort(col result.Column, ascending bool) {
	c.mu.Lock()
	c.results.Sort(col, ascending)
	c.mu.Unlock()
}

// DeleteSelected removes results by index. An empty selection clears.
func (c *Controller) DeleteSelected(idx []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.DeleteSelected(idx)
}

// DeleteAll clears the results.
func (c *Controller) DeleteAll() {
	c.mu.Lock()
	c.results.DeleteAll()
	c.mu.Unlock()
}

// Copy returns the selected results, or all of them, in text form.
func (c *Controller) Copy(idx []int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.Text(idx)
}

// Load reads saved results. With appendMode false the current results are
// replaced. A malformed input leaves them unchanged.
func (c *Controller) Load(r io.Reader, appendMode bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.Read(r, appendMode)
}

// Save writes the results in text form.
func (c *Controller) Save(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.results.WriteTo(w)
	return err
}
