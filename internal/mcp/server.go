// Package mcp implements the Model Context Protocol server, exposing the
// key tree and find all to LLM clients over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/hive"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is the tool error while no store exists.
const ErrNotInitialised = "store not initialised - call hive_init first"

// Options selects the database the server works on.
type Options struct {
	DB  string // database name; "" is hive.db
	Dir string // parent of .hive; "" discovers it from the working directory
}

// dbPath returns the database file for opts, or "" when it has to be
// discovered.
func (o Options) dbPath() string {
	if o.Dir == "" {
		return ""
	}
	return filepath.Join(o.Dir, repo.Dir, repo.DBFileName(o.DB))
}

// open returns the service for opts, or repo.ErrNotInitialised when there
// is no database yet.
func open(opts Options) (*hive.Service, error) {
	p := opts.dbPath()
	if p == "" {
		return hive.New(opts.DB)
	}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return nil, repo.ErrNotInitialised
	}
	return hive.Open(p)
}

// Serve runs the server on stdin and stdout until ctx is done or the
// client disconnects.
//
// The server starts without a store so a client can create one with
// hive_init; other tools report ErrNotInitialised until then.
func Serve(ctx context.Context, opts Options) error {
	// stdout carries JSON-RPC
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{opts: opts}
	svc, err := open(opts)
	switch {
	case errors.Is(err, repo.ErrNotInitialised):
		slog.Info("hive not initialised, call hive_init to create a store")
	case err != nil:
		slog.Error("failed to open store", "error", err)
		return err
	default:
		h.svc = svc
	}
	defer h.close()

	s := newServer(h)
	slog.Info("hive MCP server ready", "version", Version, "transport", "stdio")

	err = server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
	if err == nil || errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the server with every resource and tool registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"hive",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers holds the store the tools work on. svc is nil until the store
// exists.
type handlers struct {
	opts Options
	svc  *hive.Service
}

func (h *handlers) close() {
	if h.svc != nil {
		if err := h.svc.Close(); err != nil {
			slog.Warn("closing store", "error", err)
		}
	}
}

// requireInit returns an error result while there is no store.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds hive://keys/{path}, a key's subkeys and values.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"hive://keys/{path}",
			"Key",
			mcp.WithTemplateDescription("Subkeys and values of a key, e.g. hive://keys/HKCU/Software"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readKey,
	)
}

// registerTools exposes hive operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("hive_init",
			mcp.WithDescription("Create a hive store. Call this first if other tools return 'store not initialised'."),
			mcp.WithBoolean("local", mcp.Description("Gitignore the database")),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("hive_list",
			mcp.WithDescription("List the roots, or the subkeys and values of a key"),
			mcp.WithString("key", mcp.Description(`Key path such as HKCU\Software; empty lists the roots`)),
			mcp.WithBoolean("real", mcp.Description("With no key, include the REGISTRY view roots")),
		),
		h.listKey,
	)

	s.AddTool(
		mcp.NewTool("hive_get",
			mcp.WithDescription("Read one value of a key, or all of them"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key path")),
			mcp.WithString("name", mcp.Description("Value name; empty or @ is the default value")),
			mcp.WithBoolean("all", mcp.Description("Return every value of the key")),
		),
		h.getValue,
	)

	s.AddTool(
		mcp.NewTool("hive_set",
			mcp.WithDescription("Create or replace a value, creating the key if needed"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key path")),
			mcp.WithString("name", mcp.Description("Value name; empty or @ is the default value")),
			mcp.WithString("data", mcp.Required(), mcp.Description("Value data")),
			mcp.WithString("type", mcp.Description("Value type (default REG_SZ)")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.setValue,
	)

	s.AddTool(
		mcp.NewTool("hive_delete",
			mcp.WithDescription("Delete a key with everything below it, or one value when name is given"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key path")),
			mcp.WithString("name", mcp.Description("Value name to delete instead of the key; @ is the default value")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.deleteKey,
	)

	s.AddTool(
		mcp.NewTool("hive_find",
			mcp.WithDescription("Find keys, value names and value data containing text. Options default to the configured find settings."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to find")),
			mcp.WithString("key", mcp.Description("Only search below this key")),
			mcp.WithBoolean("keys", mcp.Description("Match key names")),
			mcp.WithBoolean("values", mcp.Description("Match value names")),
			mcp.WithBoolean("data", mcp.Description("Match value data")),
			mcp.WithBoolean("whole", mcp.Description("Match whole words only")),
			mcp.WithBoolean("case", mcp.Description("Match case")),
			mcp.WithBoolean("std", mcp.Description("Search the HKEY_* roots")),
			mcp.WithBoolean("real", mcp.Description("Search the REGISTRY view")),
			mcp.WithNumber("limit", mcp.Description("Stop after this many matches")),
			mcp.WithString("results", mcp.Description("Result file to load first and save after")),
			mcp.WithBoolean("append", mcp.Description("Keep the result file's rows and add to them")),
		),
		h.find,
	)

	s.AddTool(
		mcp.NewTool("hive_results",
			mcp.WithDescription("Read a saved result file"),
			mcp.WithString("file", mcp.Required(), mcp.Description("Result file path")),
			mcp.WithString("range", mcp.Description("Rows as from:to")),
		),
		h.readResults,
	)

	s.AddTool(
		mcp.NewTool("hive_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, find.data, ...) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("hive_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("hive_guide",
			mcp.WithDescription("Get guide content for hive commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (find, results, config, ...) or empty for the index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds the tools extensions declare. Their handlers
// get an extension context over the open store.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			handler := t.Handler
			s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				if res := h.requireInit(); res != nil {
					return res, nil
				}
				cfg, err := config.Load()
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return handler(ctx, extension.NewContext(h.svc, h.svc.DB(), cfg), req)
			})
		}
	}
}
