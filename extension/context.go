// context.go defines the Context extensions receive at initialisation.
//
// Extensions register before the store is open, so they get their access
// to the service, database and config later through Init.

package extension

import (
	"database/sql"

	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/service"
)

// Context gives extensions access to the open store and configuration.
type Context interface {
	// Service returns the key tree service.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions should create their own tables, not modify core tables.
	DB() *sql.DB

	// Config returns the loaded configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{svc: svc, db: db, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }
func (c *extContext) DB() *sql.DB              { return c.db }
func (c *extContext) Config() *config.Config   { return c.cfg }
