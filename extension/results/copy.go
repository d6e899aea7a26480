// copy.go implements "hive results copy".

package results

import (
	"fmt"

	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/clip"
	"github.com/jpl-au/hive/internal/results"
	"github.com/spf13/cobra"
)

func (e *Extension) newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <file> [index...]",
		Short: "Copy result rows to the clipboard",
		Long:  "Copies the given rows, or every row, to the clipboard in result file form.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runCopy,
	}
}

func (e *Extension) runCopy(_ *cobra.Command, args []string) error {
	idx, err := indexes(args[1:])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	text, n, err := results.Text(args[0], idx)
	if err == nil {
		err = clip.Copy(text)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results copy: %w", err))
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Copied %d result(s)\n", n)
	}
	return cmd.PrintJSON(map[string]any{"file": args[0], "copied": n})
}
