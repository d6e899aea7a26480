// Package hive is the key tree service. It wraps the SQLite store with
// path normalisation, configured limits and extension events, and exposes
// the read view a find walks.
package hive

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/jpl-au/hive/internal/service"
	"github.com/jpl-au/hive/internal/store"
	"github.com/jpl-au/hive/internal/validate"
)

// DefaultAuthor is recorded when a write names no author.
const DefaultAuthor = "unknown"

var _ service.Service = (*Service)(nil)

// Service implements service.Service over a SQLite store.
type Service struct {
	store   *store.SQLiteStore
	dbPath  string
	dir     string
	maxPath int
	maxData int64
	extCtx  extension.Context
}

// New opens the named database, discovered by walking up from the working
// directory. It returns repo.ErrNotInitialised when there is none.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open opens the database at dbPath.
func Open(dbPath string) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:   s,
		dbPath:  dbPath,
		dir:     filepath.Dir(dbPath),
		maxPath: cfg.MaxPath(),
		maxData: cfg.MaxData(),
	}, nil
}

// Init creates a store. See repo.Init.
func Init(opts repo.InitOptions) (string, error) {
	return repo.Init(opts)
}

// Close checkpoints the WAL and closes the database.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig rereads the limits after the config changed.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.maxPath = cfg.MaxPath()
	s.maxData = cfg.MaxData()
	return nil
}

// SetExtensionContext sets the context events are fired with.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

func (s *Service) writeOptions() store.WriteOptions {
	return store.WriteOptions{MaxPath: s.maxPath, MaxData: s.maxData}
}

// norm normalises a path for lookup. The store validates again on writes.
func norm(p string) (string, error) {
	return validate.Path(p, 0)
}

// fireEvent tells every event handler about a committed change. Handler
// errors are logged and otherwise ignored.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.Handlers() {
		h := ext.(extension.EventHandler)
		if err := h.HandleEvent(s.extCtx, e); err != nil {
			log.Event("event:error", "error").
				Detail("ext", ext.Name()).
				Detail("event", string(e.EventType())).
				Key(e.EventPath()).
				Write(err)
		}
	}
}

// DB returns the underlying connection.
func (s *Service) DB() *sql.DB { return s.store.DB() }

// DBPath returns the database file path.
func (s *Service) DBPath() string { return s.dbPath }

// Dir returns the .hive directory.
func (s *Service) Dir() string { return s.dir }

// Tx runs fn in a transaction. Rollback after a commit is a no-op, so the
// deferred rollback covers errors and panics alike.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
