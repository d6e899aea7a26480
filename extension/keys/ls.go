// ls.go implements the "hive ls" command.

package keys

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/ls"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [key]",
		Short: "List subkeys and values",
		Long: heredoc.Doc(`
			Without a key, lists the roots. With a key, lists its subkeys
			followed by its values.

			  hive ls
			  hive ls HKCU/Software
			  hive ls -r HKLM/Software/Acme    # whole subtree as a tree
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagRecursive, "r", false, "Show every key below as a tree")
	c.Flags().Bool(extension.FlagReal, false, "Include the REGISTRY root when listing roots")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	var opts ls.Options
	opts.Recursive, _ = c.Flags().GetBool(extension.FlagRecursive)
	opts.Real, _ = c.Flags().GetBool(extension.FlagReal)
	opts.Styled = cmd.Styled()

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	res, err := ls.Run(c.Context(), w, e.svc, key, opts)

	log.Event("keys:ls", "list").
		Author(cmd.Author()).
		Key(key).
		Resolved(res.Key).
		Count(len(res.Subkeys) + len(res.Values)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", key, err))
	}
	return cmd.PrintJSON(res)
}
