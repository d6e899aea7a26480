// engine.go implements the pausable depth-first walk.

package find

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jpl-au/hive/internal/result"
)

var (
	// ErrInvalidState is returned by Continue when no search is running.
	ErrInvalidState = errors.New("search not running")
	// ErrBusy is returned by Start when it is called from inside a callback.
	ErrBusy = errors.New("search engine busy")
	// ErrNoStartKey is returned when SearchSelected is set without a start key.
	ErrNoStartKey = errors.New("start key required to search a selected key")
)

const sep = `\`

// Value is a named datum held by a key. The default value has an empty name.
type Value struct {
	Name string
	Data string
}

// Tree is the read side of the store as seen by a walk.
type Tree interface {
	// Roots returns the top-level keys of the selected views.
	Roots(ctx context.Context, std, real bool) ([]string, error)
	// Subkeys returns the names of the direct children of key, in store order.
	Subkeys(ctx context.Context, key string) ([]string, error)
	// Values returns the values of key, in store order.
	Values(ctx context.Context, key string) ([]Value, error)
}

// Event is delivered to the callback once per match, and once more when the
// walk ends. The final event has Done set; Cancelled tells a cancelled walk
// from an exhausted one and Err carries a store failure.
type Event struct {
	Match     result.Match
	Done      bool
	Cancelled bool
	Err       error
}

// Callback receives events. It runs on the goroutine that called Start or
// Continue and may itself call Continue or Cancel.
type Callback func(Event)

type item struct {
	path  string
	value *Value
	root  bool
}

// Engine runs one search session at a time over a Tree.
type Engine struct {
	tree Tree

	mu         sync.Mutex
	ctx        context.Context
	cb         Callback
	matcher    Matcher
	opts       Options
	stack      []item
	running    bool
	delivering bool
	resume     bool

	cancelled atomic.Bool
}

// NewEngine returns an idle engine over tree.
func NewEngine(tree Tree) *Engine {
	return &Engine{tree: tree}
}

// Start begins a new walk for text and delivers the first event before
// returning. Empty text does nothing. A running walk is cancelled first and
// its callback receives a cancelled final event.
//
// When opts has SearchSelected the walk covers start and everything below
// it, otherwise it covers the roots of the selected views. A nil ctx is
// treated as context.Background().
func (e *Engine) Start(ctx context.Context, start, text string, opts Options, cb Callback) error {
	if text == "" {
		return nil
	}
	if opts.Has(SearchSelected) && start == "" {
		return ErrNoStartKey
	}
	if ctx == nil {
		ctx = context.Background()
	}

	e.mu.Lock()
	if e.delivering {
		e.mu.Unlock()
		return ErrBusy
	}
	if e.running {
		old := e.cb
		e.reset()
		e.delivering = true
		e.mu.Unlock()
		old(Event{Done: true, Cancelled: true})
		e.mu.Lock()
		e.delivering = false
	}
	e.mu.Unlock()

	var roots []string
	if opts.Has(SearchSelected) {
		roots = []string{start}
	} else {
		var err error
		roots, err = e.tree.Roots(ctx, opts.Has(SearchStdRegistry), opts.Has(SearchRealRegistry))
		if err != nil {
			return fmt.Errorf("listing roots: %w", err)
		}
	}

	e.mu.Lock()
	e.ctx = ctx
	e.cb = cb
	e.opts = opts
	e.matcher = NewMatcher(text, opts)
	e.stack = e.stack[:0]
	for _, r := range slices.Backward(roots) {
		e.stack = append(e.stack, item{path: r, root: true})
	}
	e.running = true
	e.cancelled.Store(false)
	e.mu.Unlock()

	e.pump()
	return nil
}

// Continue resumes a paused walk until the next event. Called from inside
// the callback it only records the request; the walk resumes once the
// callback returns.
func (e *Engine) Continue() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrInvalidState
	}
	if e.delivering {
		e.resume = true
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	e.pump()
	return nil
}

// Cancel asks the walk to stop. The next step delivers a cancelled final
// event instead of another match. It is safe to call from any goroutine.
func (e *Engine) Cancel() {
	e.cancelled.Store(true)
}

// IsRunning reports whether a walk is in progress.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// IsCancelled reports whether cancellation was requested for the current
// or most recent walk.
func (e *Engine) IsCancelled() bool {
	return e.cancelled.Load()
}

func (e *Engine) reset() {
	e.running = false
	e.cb = nil
	e.ctx = nil
	e.stack = e.stack[:0]
	e.resume = false
}

// pump takes steps until an event is produced, delivers it outside the
// lock and repeats while the callback asked to continue.
func (e *Engine) pump() {
	for {
		e.mu.Lock()
		if !e.running {
			e.mu.Unlock()
			return
		}
		ev := e.next()
		cb := e.cb
		if ev.Done {
			e.reset()
		}
		e.delivering = true
		e.resume = false
		e.mu.Unlock()

		cb(ev)

		e.mu.Lock()
		e.delivering = false
		again := e.resume && e.running
		e.resume = false
		e.mu.Unlock()
		if !again {
			return
		}
	}
}

// next advances the walk to the next match or the end. Callers hold mu.
func (e *Engine) next() Event {
	for {
		if e.cancelled.Load() || e.ctx.Err() != nil {
			e.cancelled.Store(true)
			return Event{Done: true, Cancelled: true}
		}
		if len(e.stack) == 0 {
			return Event{Done: true}
		}
		it := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]

		if it.value != nil {
			if m, ok := e.matchValue(it.path, *it.value); ok {
				return Event{Match: m}
			}
			continue
		}

		if err := e.expand(it.path); err != nil {
			return Event{Done: true, Err: err}
		}
		if !it.root && e.opts.Has(SearchKeys) && e.matcher.Match(base(it.path)) {
			return Event{Match: result.Match{Path: it.path}}
		}
	}
}

// expand pushes the values of key, then its subkeys, so that values are
// visited first and both keep store order.
func (e *Engine) expand(key string) error {
	var subs []string
	var vals []Value
	var err error
	if e.opts.Has(SearchKeys) || e.opts.Has(SearchValues) || e.opts.Has(SearchData) {
		subs, err = e.tree.Subkeys(e.ctx, key)
		if err != nil {
			return fmt.Errorf("reading subkeys of %s: %w", key, err)
		}
	}
	if e.opts.Has(SearchValues) || e.opts.Has(SearchData) {
		vals, err = e.tree.Values(e.ctx, key)
		if err != nil {
			return fmt.Errorf("reading values of %s: %w", key, err)
		}
	}
	for _, s := range slices.Backward(subs) {
		e.stack = append(e.stack, item{path: key + sep + s})
	}
	for _, v := range slices.Backward(vals) {
		e.stack = append(e.stack, item{path: key, value: &v})
	}
	return nil
}

func (e *Engine) matchValue(key string, v Value) (result.Match, bool) {
	if e.opts.Has(SearchValues) && e.matcher.Match(v.Name) {
		return result.Match{Path: key, Name: v.Name}, true
	}
	if e.opts.Has(SearchData) && e.matcher.Match(v.Data) {
		return result.Match{Path: key, Name: v.Name, Data: v.Data}, true
	}
	return result.Match{}, false
}

func base(p string) string {
	if i := strings.LastIndex(p, sep); i >= 0 {
		return p[i+1:]
	}
	return p
}
