// serve.go implements the "hive serve" command.
//
// Serve blocks handling MCP requests over stdio. It is storeless: the server
// opens the database itself so that hive_init works in an empty directory.

package core

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: heredoc.Doc(`
			Start an MCP (Model Context Protocol) server over stdio.

			Use --db to serve a specific database:
			  hive serve --db work    # serve hive-work.db
		`),
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return mcp.Serve(c.Context(), mcp.Options{DB: cmd.DB(), Dir: cmd.Dir()})
		},
	}
}
