// Package search runs a non-interactive find-all over the key tree.
//
// It drives a findall.Controller in auto pace and reports matches as they
// arrive, optionally merging them into a result file. The interactive
// dialog lives in internal/tui and drives the same controller by hand.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/findall"
	"github.com/jpl-au/hive/internal/format"
	"github.com/jpl-au/hive/internal/progress"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/service"
	"github.com/jpl-au/hive/internal/validate"
)

// ErrNoStartKey is returned when the start key does not exist.
var ErrNoStartKey = errors.New("start key not found")

// Options configures a find.
type Options struct {
	Settings  findall.Settings // Search flags and append mode
	Start     string           // Start key; only used with SearchSelected
	Results   string           // Result file loaded first and saved after; see Run
	Sort      *result.Column   // Sort before printing or saving
	Desc      bool             // Sort descending
	Limit     int              // Stop after this many new matches; 0 is no limit
	Saver     findall.Saver    // Persist Settings after the find when set
	Styled    bool             // Colour output
	Streaming bool             // Print matches as they arrive
}

// Result reports a finished find.
type Result struct {
	Session   string         `json:"session"`
	Text      string         `json:"text"`
	Options   string         `json:"options"`
	Found     int            `json:"found"`
	Total     int            `json:"total"`
	Cancelled bool           `json:"cancelled,omitempty"`
	Limited   bool           `json:"limited,omitempty"`
	File      string         `json:"file,omitempty"`
	Matches   []result.Match `json:"matches"`
}

// Run searches for text. Cancelling ctx stops the search cooperatively;
// the matches found so far are still reported and saved.
//
// With a result file the file is loaded before the search. Append mode
// keeps its matches and adds the new ones; otherwise the search replaces
// them. A malformed file fails the run and is not rewritten.
func Run(ctx context.Context, w io.Writer, svc service.Service, text string, opts Options) (Result, error) {
	res := Result{Text: text, Options: opts.Settings.Options.String(), File: opts.Results}

	start := ""
	if opts.Settings.Options.Has(find.SearchSelected) {
		p, err := validate.Path(opts.Start, 0)
		if err != nil {
			return res, err
		}
		ok, err := svc.Exists(ctx, p)
		if err != nil {
			return res, err
		}
		if !ok {
			return res, fmt.Errorf("%w: %s", ErrNoStartKey, p)
		}
		start = p
	}

	var c *findall.Controller
	stream := opts.Streaming && opts.Results == "" && opts.Sort == nil
	spin := progress.NewSpinner("Searching")

	c = findall.New(svc.Tree(), opts.Settings,
		findall.WithNavigator(svc),
		findall.OnMatch(func(_ int, m result.Match) {
			res.Found++
			if stream {
				_ = format.Match(w, m, opts.Styled)
			} else {
				spin.Tick()
			}
			if opts.Limit > 0 && res.Found >= opts.Limit {
				res.Limited = true
				c.RequestCancel()
			}
		}),
		findall.OnState(func(_, to findall.State) {
			if to == findall.Cancelled {
				res.Cancelled = true
			}
		}),
	)

	if opts.Results != "" {
		f, err := openResults(opts.Results)
		if err != nil {
			return res, err
		}
		if f != nil {
			err = c.Load(f, true)
			f.Close()
			if err != nil {
				return res, fmt.Errorf("%s: %w", opts.Results, err)
			}
		}
	}

	if !stream {
		spin.Start()
	}
	err := c.Find(ctx, text, start, opts.Settings.Options)
	spin.Stop()
	if err != nil {
		return res, err
	}
	if err := c.Err(); err != nil {
		return res, fmt.Errorf("search: %w", err)
	}
	// A limit is a normal end, not a cancellation.
	if res.Limited && ctx.Err() == nil {
		res.Cancelled = false
	}

	if opts.Sort != nil {
		c.Sort(*opts.Sort, !opts.Desc)
	}
	res.Session = c.Session()
	res.Matches = c.Results()
	res.Total = len(res.Matches)

	if opts.Results != "" {
		if err := result.WriteFile(opts.Results, res.Matches); err != nil {
			return res, err
		}
	}
	if opts.Saver != nil {
		if err := opts.Saver.SaveSettings(c.Settings()); err != nil {
			return res, err
		}
	}

	switch {
	case opts.Results != "":
		fmt.Fprintf(w, "%d match(es) found, %d saved to %s\n", res.Found, res.Total, opts.Results)
	case !stream:
		if err := format.Results(w, res.Matches, opts.Styled); err != nil {
			return res, err
		}
	}
	if res.Cancelled {
		fmt.Fprintln(w, "cancelled")
	}
	return res, nil
}

// openResults opens an existing result file; a missing one is not an error.
func openResults(name string) (*os.File, error) {
	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return f, err
}
