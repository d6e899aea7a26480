// Package search provides the find-all command over the key tree.
// Registers commands: find.
package search

import (
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service and keeps the config the find
// defaults come from.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the find command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newFindCmd(),
	}
}

// MCPTools returns nil - hive_find is in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
