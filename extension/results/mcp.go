// mcp.go exposes the result file operations that change or resolve a
// file as MCP tools. Reading a file is hive_results in internal/mcp.

package results

import (
	"context"
	"io"

	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/results"
	"github.com/jpl-au/hive/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTools returns the result file tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("hive_results_sort",
				mcp.WithDescription("Sort a saved result file by path, name or data"),
				mcp.WithString("file", mcp.Required(), mcp.Description("Result file path")),
				mcp.WithString("column", mcp.Description("path (default), name or data")),
				mcp.WithBoolean("desc", mcp.Description("Sort descending")),
			),
			Handler: sortTool,
		},
		{
			Tool: mcp.NewTool("hive_results_delete",
				mcp.WithDescription("Delete rows of a saved result file by index; no indexes deletes every row"),
				mcp.WithString("file", mcp.Required(), mcp.Description("Result file path")),
				mcp.WithArray("indexes", mcp.Items(map[string]any{"type": "number"}), mcp.Description("Row indexes")),
			),
			Handler: deleteTool,
		},
		{
			Tool: mcp.NewTool("hive_results_goto",
				mcp.WithDescription("Resolve a result row to the key or value it names"),
				mcp.WithString("file", mcp.Required(), mcp.Description("Result file path")),
				mcp.WithNumber("index", mcp.Required(), mcp.Description("Row index")),
			),
			Handler: gotoTool,
		},
		{
			Tool: mcp.NewTool("hive_results_diff",
				mcp.WithDescription("Compare two saved result files row by row"),
				mcp.WithString("old", mcp.Required(), mcp.Description("Earlier result file")),
				mcp.WithString("new", mcp.Required(), mcp.Description("Later result file")),
			),
			Handler: diffTool,
		},
	}
}

func sortTool(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	col, err := result.ParseColumn(req.GetString("column", "path"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc := req.GetBool("desc", false)

	res, err := results.Sort(io.Discard, file, col, !desc)
	log.Event("mcp:results_sort", "sort").Author("mcp").Key(file).Count(res.Total).Detail("column", col.String()).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(res)
}

func deleteTool(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	var idx []int
	if raw, ok := req.GetArguments()["indexes"].([]any); ok {
		for _, v := range raw {
			n, ok := v.(float64)
			if !ok {
				return mcp.NewToolResultError("indexes must be numbers"), nil
			}
			idx = append(idx, int(n))
		}
	}

	res, err := results.Delete(io.Discard, file, idx)
	log.Event("mcp:results_delete", "delete").Author("mcp").Key(file).Count(res.Changed).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(res)
}

func gotoTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	i, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError("index is required"), nil
	}

	res, err := results.GoTo(ctx, io.Discard, extCtx.Service(), file, i)
	log.Event("mcp:results_goto", "goto").Author("mcp").Key(file).Resolved(res.Match.Path).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(res)
}

func diffTool(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldFile, err := req.RequireString("old")
	if err != nil {
		return mcp.NewToolResultError("old is required"), nil
	}
	newFile, err := req.RequireString("new")
	if err != nil {
		return mcp.NewToolResultError("new is required"), nil
	}

	res, err := results.Diff(oldFile, newFile)
	log.Event("mcp:results_diff", "diff").Author("mcp").Key(oldFile).Detail("new", newFile).Count(res.Added + res.Removed).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(res)
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
