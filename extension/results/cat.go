// cat.go implements "hive results cat".

package results

import (
	"fmt"
	"io"

	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/results"
	"github.com/spf13/cobra"
)

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a result file",
		Long:  "Prints the rows of a result file with their indexes. --range from:to limits the rows; --raw prints them as stored.",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runCat,
	}
	c.Flags().String(extension.FlagRange, "", "Rows to print as from:to")
	c.Flags().Bool(extension.FlagRaw, false, "Print the tab-separated rows as stored")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	file := args[0]
	rng, _ := c.Flags().GetString(extension.FlagRange)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	res, err := results.Cat(w, file, results.CatOptions{Range: rng, Raw: raw, Styled: cmd.Styled()})
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("results cat: %w", err))
	}
	return cmd.PrintJSON(res)
}
