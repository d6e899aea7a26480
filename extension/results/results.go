// Package results provides commands over saved result files.
// Registers commands: results (cat, sort, rm, clear, merge, copy, goto,
// pick, diff).
//
// Result files are written by "hive find --results". Only goto and pick
// touch the key tree; the rest work without a store.

package results

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the results extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "results".
func (e *Extension) Name() string { return "results" }

// NoStoreCommands returns the results group. goto and pick open the
// store themselves.
func (e *Extension) NoStoreCommands() []string {
	return []string{"results"}
}

// Commands returns the results command group.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "results",
		Short: "Work with saved find results",
		Long: heredoc.Doc(`
			Commands over result files written by 'hive find --results'.
			Rows are addressed by the index 'results cat' prints.

			  hive results cat found.txt
			  hive results sort found.txt --sort data --desc
			  hive results rm found.txt 3 7
			  hive results merge all.txt a.txt b.txt
			  hive results goto found.txt 2
			  hive results diff before.txt after.txt
		`),
		Aliases: []string{"res"},
	}
	c.AddCommand(
		e.newCatCmd(),
		e.newSortCmd(),
		e.newRmCmd(),
		e.newClearCmd(),
		e.newMergeCmd(),
		e.newCopyCmd(),
		e.newGotoCmd(),
		e.newPickCmd(),
		e.newDiffCmd(),
	)
	return []*cobra.Command{c}
}

// indexes parses row indexes from the command line.
func indexes(args []string) ([]int, error) {
	idx := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid index %q", a)
		}
		idx = append(idx, n)
	}
	return idx, nil
}
