// rm.go implements the "hive rm" command.
//
// Deletes are immediate, so removing a key asks first unless --force is
// given. Removing a single value does not ask.

package keys

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key> [name|@]",
		Short: "Delete a key or a value",
		Long: heredoc.Doc(`
			With only a key, deletes it with every subkey and value below it.
			With a name, deletes that value; @ is the default value.

			  hive rm HKCU/Software/Acme          # asks first
			  hive rm HKCU/Software/Acme --force
			  hive rm HKCU/Software/Acme Version

			Roots cannot be deleted.
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	key := args[0]
	opts := rm.Options{Author: cmd.Author()}
	if len(args) > 1 {
		opts.Value = true
		opts.Name = valueName(args[1])
	}

	if !opts.Value {
		ok, err := cmd.Confirm(fmt.Sprintf("Delete %s and everything below it?", key))
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

	res, err := rm.Run(c.Context(), w, e.svc, key, opts)

	action := "delete"
	if opts.Value {
		action = "delete-value"
	}
	log.Event("keys:rm", action).
		Author(cmd.Author()).
		Key(key).
		Name(opts.Name).
		Count(int(res.Removed)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", key, err))
	}
	return cmd.PrintJSON(res)
}
