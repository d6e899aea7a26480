// tools_keys.go implements the key tree tools: hive_list, hive_get,
// hive_set and hive_delete.

package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/hive/internal/get"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/ls"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/rm"
	"github.com/mark3labs/mcp-go/mcp"
)

// valueName maps "@" and "(Default)" to the default value's empty name.
func valueName(s string) string {
	if s == "@" || s == result.DefaultValueName {
		return ""
	}
	return s
}

// listKey handles hive_list tool calls.
func (h *handlers) listKey(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key := getString(req, "key", "")
	res, err := ls.Run(ctx, io.Discard, h.svc, key, ls.Options{Real: getBool(req, "real", false)})

	log.Event("mcp:list", "list").Author("mcp").Key(key).Resolved(res.Key).
		Count(len(res.Subkeys) + len(res.Values) + len(res.Roots)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// getValue handles hive_get tool calls.
func (h *handlers) getValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil
	}
	opts := get.Options{
		Name: valueName(getString(req, "name", "")),
		All:  getBool(req, "all", false),
	}
	res, err := get.Run(ctx, io.Discard, h.svc, key, opts)

	log.Event("mcp:get", "read").Author("mcp").Key(key).Name(opts.Name).Resolved(res.Key).
		Count(len(res.Values)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// setValue handles hive_set tool calls.
func (h *handlers) setValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil
	}
	data, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError("data is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil || author == "" {
		return mcp.NewToolResultError("author is required"), nil
	}
	name := valueName(getString(req, "name", ""))
	typ := getString(req, "type", "")

	err = h.svc.SetValue(ctx, key, name, typ, data, author)

	log.Event("mcp:set", "set").Author(author).Key(key).Name(name).Detail("type", typ).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	shown := name
	if shown == "" {
		shown = result.DefaultValueName
	}
	return mcp.NewToolResultText(fmt.Sprintf("Set %s [%s]", key, shown)), nil
}

// deleteKey handles hive_delete tool calls. Deletes are immediate.
func (h *handlers) deleteKey(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil || author == "" {
		return mcp.NewToolResultError("author is required"), nil
	}
	opts := rm.Options{Author: author}
	if hasArg(req, "name") {
		opts.Value = true
		opts.Name = valueName(getString(req, "name", ""))
	}

	res, err := rm.Run(ctx, io.Discard, h.svc, key, opts)

	action := "delete"
	if opts.Value {
		action = "delete-value"
	}
	log.Event("mcp:delete", action).Author(author).Key(key).Name(opts.Name).Count(int(res.Removed)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}
