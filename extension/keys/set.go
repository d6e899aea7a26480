// set.go implements the "hive set" command.

package keys

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newSetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "set <key> <name|@> <data>",
		Short: "Create or replace a value",
		Long: heredoc.Docf(`
			Writes a value, creating the key if needed. Use @ as the name for
			the key's default value.

			  hive set HKCU/Software/Acme Version 1.2
			  hive set HKCU/Software/Acme @ "Acme Corp"
			  hive set HKCU/Software/Acme Count 42 --type REG_DWORD

			Types: %s
		`, strings.Join(validate.Types, ", ")),
		Args: cobra.ExactArgs(3),
		RunE: e.runSet,
	}
	c.Flags().StringP(extension.FlagType, "t", validate.TypeString, "Value type")
	_ = c.RegisterFlagCompletionFunc(extension.FlagType, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validate.Types, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

func (e *Extension) runSet(c *cobra.Command, args []string) error {
	key, name, data := args[0], valueName(args[1]), args[2]
	typ, _ := c.Flags().GetString(extension.FlagType)

	err := e.svc.SetValue(c.Context(), key, name, typ, data, cmd.Author())

	log.Event("keys:set", "write").
		Author(cmd.Author()).
		Key(key).
		Name(name).
		Detail("type", typ).
		Detail("bytes", len(data)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("set %q: %w", key, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"key": key, "name": name, "type": typ})
	}
	fmt.Fprintf(cmd.Out(), "Set %s [%s]\n", key, displayName(name))
	return nil
}

func displayName(name string) string {
	if name == "" {
		return defaultName
	}
	return name
}
