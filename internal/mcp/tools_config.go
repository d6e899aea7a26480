// tools_config.go implements hive_config_get and hive_config_set.
//
// A change is reloaded into the running service so limits apply to the
// next tool call without a restart. The find.* keys are read fresh by
// every hive_find call.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles hive_config_get tool calls. It works without a store.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)
	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles hive_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Set(key, value)
	}
	if err == nil {
		err = cfg.Save()
	}

	log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if h.svc != nil {
		if err := h.svc.ReloadConfig(); err != nil {
			log.Event("mcp:config_set", "reload").Author("mcp").Write(err)
			return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
