// vacuum.go implements the "hive vacuum" command.
//
// Vacuum rebuilds the database file to return the space deleted keys and
// values leave behind. It rewrites the whole file, so it asks first unless
// --force is given.

package core

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Compact the database file",
		Long: heredoc.Doc(`
			Rebuilds the database file, returning the space left by deleted
			keys and values to the filesystem.

			  hive vacuum -n     # report free space only
			  hive vacuum        # rebuild (asks first)
			  hive vacuum --force
		`),
		Args: cobra.NoArgs,
		RunE: e.runVacuum,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be reclaimed")
	return c
}

func (e *Extension) runVacuum(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	if !dryRun {
		ok, err := cmd.Confirm("Rebuild the database file now?")
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		if !ok {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	res, err := vacuum.Run(ctx, w, e.svc, vacuum.Options{DryRun: dryRun})

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Detail("dry_run", dryRun).
		Detail("reclaimed", res.Reclaimed).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(res)
}
