// tools_init.go implements hive_init, the one tool that works without a
// store.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/hive/internal/hive"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore handles hive_init tool calls.
func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}

	local := getBool(req, "local", false)
	path, err := hive.Init(repo.InitOptions{Dir: h.opts.Dir, DB: h.opts.DB, Local: local})

	log.Event("mcp:init", "init").Author("mcp").Key(path).Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := hive.Open(path)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open store: " + err.Error()), nil
	}
	h.svc = svc
	log.SetProject(svc.Dir())

	slog.Info("store initialised", "path", path, "local", local)

	if local {
		return mcp.NewToolResultText("store initialised at " + path + " (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("store initialised at " + path), nil
}
