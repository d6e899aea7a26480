// Package keys provides the key tree extension.
// Registers commands: ls, get, mkkey, set, rm, import, export.
//
// Read commands print through internal/format; write commands need an
// author and are recorded in the audit log.

package keys

import (
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the key tree extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "keys".
func (e *Extension) Name() string { return "keys" }

// Init keeps the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the key tree commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLsCmd(),
		e.newGetCmd(),
		e.newMkkeyCmd(),
		e.newSetCmd(),
		e.newRmCmd(),
		e.newImportCmd(),
		e.newExportCmd(),
	}
}

// MCPTools returns nil. Key tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// defaultName is how the default value is named on the command line.
const defaultName = "@"

// valueName maps a command-line value name to the stored one.
func valueName(arg string) string {
	if arg == defaultName || arg == result.DefaultValueName {
		return ""
	}
	return arg
}
