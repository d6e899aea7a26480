// edit.go implements the results commands that rewrite a file: sort, rm,
// clear and merge.

package results

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/results"
	"github.com/spf13/cobra"
)

func out() io.Writer {
	if cmd.JSON() {
		return io.Discard
	}
	return cmd.Out()
}

func (e *Extension) newSortCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort a result file by a column",
		Long: heredoc.Doc(`
			Reorders a result file by path, name or data. The sort is stable
			and ignores case.

			  hive results sort found.txt --sort name
			  hive results sort found.txt --sort data --desc
		`),
		Args: cobra.ExactArgs(1),
		RunE: e.runSort,
	}
	c.Flags().StringP(extension.FlagSort, "s", "path", "Column: path, name or data")
	c.Flags().Bool(extension.FlagDesc, false, "Sort descending")
	return c
}

func (e *Extension) runSort(c *cobra.Command, args []string) error {
	file := args[0]
	name, _ := c.Flags().GetString(extension.FlagSort)
	desc, _ := c.Flags().GetBool(extension.FlagDesc)
	col, err := result.ParseColumn(name)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res, err := results.Sort(out(), file, col, !desc)
	log.Event("results:sort", "sort").
		Key(file).
		Count(res.Total).
		Detail("column", col.String()).
		Detail("desc", desc).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results sort: %w", err))
	}
	return cmd.PrintJSON(res)
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file> [index...]",
		Short: "Delete rows from a result file",
		Long: heredoc.Doc(`
			Deletes the rows at the given indexes. Without indexes every row
			goes, after confirmation unless --force.

			  hive results rm found.txt 0 4
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(_ *cobra.Command, args []string) error {
	idx, err := indexes(args[1:])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if len(idx) == 0 {
		return e.clear(args[0])
	}
	return e.remove(args[0], idx)
}

func (e *Extension) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <file>",
		Short: "Delete every row of a result file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return e.clear(args[0])
		},
	}
}

func (e *Extension) clear(file string) error {
	ok, err := cmd.Confirm(fmt.Sprintf("Delete every result in %s?", file))
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if !ok {
		fmt.Fprintln(cmd.Out(), "Cancelled")
		return nil
	}
	return e.remove(file, nil)
}

func (e *Extension) remove(file string, idx []int) error {
	res, err := results.Delete(out(), file, idx)
	log.Event("results:rm", "delete").
		Key(file).
		Count(res.Changed).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results rm: %w", err))
	}
	return cmd.PrintJSON(res)
}

func (e *Extension) newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <dst> <src>...",
		Short: "Append result files to another",
		Long: heredoc.Doc(`
			Appends the rows of each source to dst, which is created when
			missing. dst is only written once every source has loaded.

			  hive results merge all.txt monday.txt tuesday.txt
		`),
		Args: cobra.MinimumNArgs(2),
		RunE: e.runMerge,
	}
}

func (e *Extension) runMerge(_ *cobra.Command, args []string) error {
	res, err := results.Merge(out(), args[0], args[1:])
	log.Event("results:merge", "merge").
		Key(args[0]).
		Count(res.Changed).
		Detail("sources", args[1:]).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results merge: %w", err))
	}
	return cmd.PrintJSON(res)
}
