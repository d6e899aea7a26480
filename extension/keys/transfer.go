// transfer.go implements the "hive import" and "hive export" commands.
//
// Both use the TOML key file format: a root path and an array of keys, each
// with its values. Exporting a key and importing the file elsewhere with
// --under copies a subtree.

package keys

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/exporter"
	"github.com/jpl-au/hive/internal/importer"
	"github.com/jpl-au/hive/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <key> [file]",
		Short: "Export a key and its subtree as TOML",
		Long: heredoc.Doc(`
			Writes key, its subkeys and all their values to a TOML file, or to
			stdout when no file (or -) is given.

			  hive export HKCU/Software/Acme acme.toml
			  hive export HKCU/Software/Acme > acme.toml
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runExport,
	}
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	key, dst := args[0], ""
	if len(args) > 1 {
		dst = args[1]
	}

	// JSON mode reports a summary, so the TOML body needs a file.
	w := cmd.Out()
	if cmd.JSON() {
		if dst == "" || dst == "-" {
			return cmd.PrintJSONError(fmt.Errorf("export: a file is required with -o json"))
		}
		w = io.Discard
	}

	res, err := exporter.Run(c.Context(), w, e.svc, key, dst, exporter.Options{Force: cmd.Force()})

	log.Event("keys:export", "export").
		Author(cmd.Author()).
		Key(key).
		Resolved(res.Root).
		Count(res.Keys).
		Detail("file", dst).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export %q: %w", key, err))
	}
	return cmd.PrintJSON(res)
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Import keys and values from TOML",
		Long: heredoc.Doc(`
			Creates the keys and values in a file written by "hive export".
			Existing values are replaced.

			  hive import acme.toml
			  hive import acme.toml --dry-run
			  hive import acme.toml --under HKLM/Software/Acme
		`),
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	c.Flags().String(extension.FlagUnder, "", "Import below this key instead of the file's root")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	src := args[0]
	opts := importer.Options{Author: cmd.Author()}
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Under, _ = c.Flags().GetString(extension.FlagUnder)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	res, err := importer.Run(c.Context(), w, e.svc, src, opts)

	log.Event("keys:import", "import").
		Author(cmd.Author()).
		Key(opts.Under).
		Count(res.Keys).
		Detail("file", src).
		Detail("values", res.Values).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}
	return cmd.PrintJSON(res)
}
