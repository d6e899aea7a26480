// mkkey.go implements the "hive mkkey" command.

package keys

import (
	"fmt"

	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newMkkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkkey <key>",
		Short: "Create a key and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runMkkey,
	}
}

func (e *Extension) runMkkey(c *cobra.Command, args []string) error {
	key := args[0]
	created, err := e.svc.CreateKey(c.Context(), key, cmd.Author())

	log.Event("keys:mkkey", "create").
		Author(cmd.Author()).
		Key(key).
		Detail("created", created).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("mkkey %q: %w", key, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"key": key, "created": created})
	}
	if created {
		fmt.Fprintf(cmd.Out(), "Created %s\n", key)
	} else {
		fmt.Fprintf(cmd.Out(), "%s already exists\n", key)
	}
	return nil
}
