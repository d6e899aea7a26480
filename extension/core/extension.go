// Package core provides the core extension for hive.
// It registers commands: init, config, serve, guide, vacuum, db, stats, version.
package core

import (
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared service for vacuum and stats.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the repository management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		e.newVacuumCmd(),
		newDBCmd(),
		e.newStatsCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. The server itself registers init, config and guide
// tools because they must work without an open store.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server opens the store once a client asks.
// db: Manages gitignore, doesn't need a database connection.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db"}
}
