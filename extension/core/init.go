// init.go implements the "hive init" command.
//
// Init runs before a store exists, so it is a bootstrap command: it creates
// .hive, the database with its fixed roots and the .gitignore. It does not
// create config; "hive config" owns that.

package core

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/hive"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new hive store",
		Long: heredoc.Doc(`
			Creates .hive/hive.db in the current directory with the standard
			roots (HKEY_CLASSES_ROOT, HKEY_CURRENT_USER, HKEY_LOCAL_MACHINE,
			HKEY_USERS, HKEY_CURRENT_CONFIG) and the REGISTRY root.

			Use --db to create additional databases:
			  hive init --db work    # creates .hive/hive-work.db

			Use --dir to create in a different directory:
			  hive init --dir /path/to/project

			Use --local to exclude the database from git:
			  hive init --db scratch --local

			Note: init does not create config. Use "hive config" for that.
		`),
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which is meaningless for a
	// database created somewhere else.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	dbPath, err := hive.Init(repo.InitOptions{Dir: dir, DB: db, Local: local, Force: cmd.Force()})

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": dbPath, "db": repo.DBFileName(db), "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised hive store in %s\n", dbPath)
	return nil
}
