// Package log provides centralised audit logging for hive operations.
// Logs are stored in ~/.hive/log/hive-log.db and track all CLI commands
// and MCP tool invocations across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("hive:get", "read").
//		Author(cmd.Author()).
//		Key(k).
//		Name(name).
//		Write(err)
//
//	log.Event("search:find", "search").
//		Author(cmd.Author()).
//		Detail("text", text).
//		Count(ctrl.Len()).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "hive:set",
// "search:find", "mcp:hive_find".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "hive:get", "mcp:hive_find"
	Author string // who performed the action
	Action string // verb: read, write, delete, etc.
	Key    string // input: key path requested
	Name   string // input: value name requested

	// Output fields - populated after operation succeeds
	ResolvedKey string // output: canonical key path (if different from input)
	Count       int    // output: items found or affected

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "hive:set", "search:find")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:hive_set", "mcp:hive_find")
//
// The action describes what operation was performed:
//   - "read", "write", "delete", "list", "search", "import", "export", etc.
//
// Example:
//
//	log.Event("hive:mkkey", "create").
//		Author(cmd.Author()).
//		Key(k).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
//
// Example:
//
//	log.Event("hive:get", "read").Author(cmd.Author())
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Key sets the key path this operation affects.
//
// Use for operations that target a key or a subtree. Leave unset for
// operations that don't target keys (e.g., config).
//
// Example:
//
//	log.Event("hive:get", "read").Key(`HKEY_CURRENT_USER\Software`)
func (b *Builder) Key(path string) *Builder {
	b.entry.Key = path
	return b
}

// Name sets the value name this operation affects.
//
// Example:
//
//	log.Event("hive:set", "write").Key(k).Name("InstallDir")
func (b *Builder) Name(name string) *Builder {
	b.entry.Name = name
	return b
}

// Resolved sets the canonical key path (output).
//
// Use when the stored path differs from input, such as when an alias root
// like HKCU is expanded or case is normalised.
//
// Example:
//
//	l.Resolved(key.Path)  // After confirming success
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedKey = path
	return b
}

// Count sets how many items the operation produced or touched (output).
//
// For finds: matches collected. For deletes: keys and values removed.
//
// Example:
//
//	l.Count(ctrl.Len())
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search text and options, session IDs, file names, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("search:find", "search").
//		Detail("text", text).
//		Detail("options", opts.String())
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	k, err := svc.Key(ctx, path)
//	log.Event("hive:get", "read").Key(path).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .hive directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
