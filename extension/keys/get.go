// get.go implements the "hive get" command.

package keys

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/get"
	"github.com/jpl-au/hive/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newGetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "get <key> [name]",
		Short: "Read a value",
		Long: heredoc.Doc(`
			Prints one value of a key. Without a name, or with @, the default
			value is read. --all prints every value.

			  hive get HKCU/Software/Acme Version
			  hive get HKCU/Software/Acme --raw     # data only
			  hive get HKCU/Software/Acme --all
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runGet,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Print every value of the key")
	c.Flags().Bool(extension.FlagRaw, false, "Print data only")
	return c
}

func (e *Extension) runGet(c *cobra.Command, args []string) error {
	key := args[0]
	var opts get.Options
	if len(args) > 1 {
		opts.Name = valueName(args[1])
	}
	opts.All, _ = c.Flags().GetBool(extension.FlagAll)
	opts.Raw, _ = c.Flags().GetBool(extension.FlagRaw)
	if opts.All && len(args) > 1 {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --all with a value name"))
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	res, err := get.Run(c.Context(), w, e.svc, key, opts)

	log.Event("keys:get", "read").
		Author(cmd.Author()).
		Key(key).
		Name(opts.Name).
		Resolved(res.Key).
		Count(len(res.Values)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("get %q: %w", key, err))
	}
	return cmd.PrintJSON(res)
}
