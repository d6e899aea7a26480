/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the complex initialisation logic that
// discovers the database, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the store exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/hive"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/jpl-au/hive/internal/service"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that change the key tree.
var authorRequiredCommands = map[string]bool{
	"mkkey":  true,
	"set":    true,
	"rm":     true,
	"import": true,
}

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// Bootstrap commands (init, guide, config, version) must work before
// "hive init" has run. Extensions add their own through extension.Storeless,
// for example the results commands, which only touch result files.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":    true,
		"guide":   true,
		"config":  true,
		"version": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *hive.Service
	initOnce   sync.Once
	initErr    error
)

// openService opens the database named by --db, inside --dir when given
// and by discovery otherwise.
func openService() (*hive.Service, error) {
	if d := Dir(); d != "" {
		return hive.Open(filepath.Join(d, repo.Dir, repo.DBFileName(DB())))
	}
	return hive.New(DB())
}

// initExtensions opens the key service once and injects it into extensions.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := openService()
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.Dir())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Service opens the store on demand. Storeless commands that need it for
// one subcommand, such as results goto, call this instead of relying on
// PersistentPreRunE.
func Service() (service.Service, error) {
	if err := initExtensions(); err != nil {
		return nil, err
	}
	return extService, nil
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
