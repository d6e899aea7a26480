// Package extension is the plugin surface of hive. An extension bundles
// CLI commands and MCP tools and registers itself at init time, so new
// command groups never touch the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for hive extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions run setup once the store is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless extensions name commands that run without an open store,
// such as init, or that open their own.
type Storeless interface {
	NoStoreCommands() []string
}
