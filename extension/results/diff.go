// diff.go implements "hive results diff".

package results

import (
	"fmt"

	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/results"
	"github.com/spf13/cobra"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two result files",
		Long:  "Compares two result files row by row. Order matters, so sort both first to compare contents only.",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runDiff,
	}
}

func (e *Extension) runDiff(_ *cobra.Command, args []string) error {
	d, err := results.Diff(args[0], args[1])
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results diff: %w", err))
	}
	if !cmd.JSON() {
		if d.Same() {
			fmt.Fprintln(cmd.Out(), "No differences")
		} else {
			fmt.Fprint(cmd.Out(), d.Format(cmd.Styled()))
		}
	}
	return cmd.PrintJSON(d)
}
