// tools_find.go implements hive_find and hive_results.
//
// hive_find runs the controller to completion; limit cancels the session
// once that many matches are in. Options the client leaves out come from
// the configured find settings.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/results"
	"github.com/jpl-au/hive/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
)

// findArgs maps tool arguments to search options.
var findArgs = []struct {
	name string
	opt  find.Options
}{
	{"keys", find.SearchKeys},
	{"values", find.SearchValues},
	{"data", find.SearchData},
	{"whole", find.MatchWholeWords},
	{"case", find.MatchCase},
	{"std", find.SearchStdRegistry},
	{"real", find.SearchRealRegistry},
}

// find handles hive_find tool calls.
func (h *handlers) find(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st := cfg.FindSettings()
	for _, a := range findArgs {
		if hasArg(req, a.name) {
			st.Options = st.Options.Set(a.opt, getBool(req, a.name, false))
		}
	}
	start := getString(req, "key", "")
	st.Options = st.Options.Set(find.SearchSelected, start != "")
	if hasArg(req, "append") {
		st.Append = getBool(req, "append", false)
	}

	res, err := search.Run(ctx, io.Discard, h.svc, text, search.Options{
		Settings: st,
		Start:    start,
		Results:  getString(req, "results", ""),
		Limit:    max(getInt(req, "limit", 0), 0),
	})

	log.Event("mcp:find", "find").Author("mcp").Key(start).Count(res.Found).
		Detail("text", text).
		Detail("session", res.Session).
		Detail("options", res.Options).
		Detail("cancelled", res.Cancelled).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// readResults handles hive_results tool calls. It needs no store.
func (h *handlers) readResults(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	res, err := results.Cat(io.Discard, file, results.CatOptions{Range: getString(req, "range", "")})

	log.Event("mcp:results", "read").Author("mcp").Key(file).Count(len(res.Matches)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}
