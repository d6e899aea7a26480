// goto.go implements "hive results goto" and "hive results pick", the two
// results commands that read the key tree.

package results

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/picker"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/results"
	"github.com/spf13/cobra"
)

func (e *Extension) newGotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <file> <index>",
		Short: "Show the item a result row points at",
		Long:  "Resolves a row against the key tree and prints the key or value. Fails when the item has gone.",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[1])
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("invalid index %q", args[1]))
			}
			return e.goTo(c, args[0], i)
		},
	}
}

func (e *Extension) newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <file> [query]",
		Short: "Choose a result row with a fuzzy finder and show it",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  e.runPick,
	}
}

func (e *Extension) runPick(c *cobra.Command, args []string) error {
	ms, err := result.ReadFile(args[0])
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results pick: %w", err))
	}
	var query string
	if len(args) > 1 {
		query = args[1]
	}
	i, err := picker.Pick(ms, query)
	if errors.Is(err, picker.ErrAborted) {
		fmt.Fprintln(cmd.Out(), "Cancelled")
		return nil
	}
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	return e.goTo(c, args[0], i)
}

func (e *Extension) goTo(c *cobra.Command, file string, i int) error {
	svc, err := cmd.Service()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	t, err := results.GoTo(c.Context(), out(), svc, file, i)
	log.Event("results:goto", "read").
		Key(file).
		Resolved(t.Match.Path).
		Detail("index", i).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results goto: %w", err))
	}
	return cmd.PrintJSON(t)
}
