// tools_util.go extracts typed tool arguments.
//
// Extraction is permissive: a missing or mistyped optional argument yields
// the default rather than an error, since clients often omit them.

package mcp

import (
	"github.com/jpl-au/hive/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// getString returns a string argument or def.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean argument or def.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// hasArg reports whether the client passed name at all.
func hasArg(req mcp.CallToolRequest, name string) bool {
	_, ok := args(req)[name]
	return ok
}

// getInt returns a numeric argument or def. JSON numbers arrive as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := args(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// jsonResult wraps v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
