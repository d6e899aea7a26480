// Package repo locates and creates hive stores.
//
// A store lives in a .hive directory holding one or more SQLite databases:
// hive.db by default and hive-<name>.db for named ones. Discovery walks up
// from the working directory until a .hive directory with the wanted
// database is found, the way git finds .git.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/hive/internal/store"
)

const (
	// Dir is the store directory name.
	Dir = ".hive"
	// DBFile is the default database filename.
	DBFile = "hive.db"

	dbPrefix = "hive-"
)

// ErrNotInitialised is returned when no store is found.
var ErrNotInitialised = errors.New("hive not initialised (run 'hive init')")

// ErrExists is returned by Init when the database is already there.
var ErrExists = errors.New("database already exists (use --force to reinitialise)")

// DBFileName maps a database name to its file: "" is hive.db, "work" is
// hive-work.db and a name ending in .db is used as given.
func DBFileName(name string) string {
	switch {
	case name == "":
		return DBFile
	case strings.HasSuffix(name, ".db"):
		return name
	default:
		return dbPrefix + name + ".db"
	}
}

// InitOptions controls Init.
type InitOptions struct {
	Dir   string // parent of .hive; "" is the working directory
	DB    string // database name; "" is the default
	Local bool   // gitignore the database
	Force bool   // replace an existing database
}

// Init creates .hive and an empty database with the fixed roots seeded.
// It returns the database path. Config is left alone; the config command
// owns it.
func Init(opts InitOptions) (string, error) {
	base := opts.Dir
	if base == "" {
		base = "."
	}
	hiveDir := filepath.Join(base, Dir)
	file := DBFileName(opts.DB)
	dbPath := filepath.Join(hiveDir, file)

	if _, err := os.Stat(dbPath); err == nil {
		if !opts.Force {
			return "", fmt.Errorf("%s: %w", file, ErrExists)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return "", fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(hiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer s.Close()
	if err := s.Init(); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}

	if err := writeGitignore(hiveDir); err != nil {
		return "", err
	}
	if opts.Local {
		if err := IgnoreDB(opts.DB, hiveDir); err != nil {
			return "", fmt.Errorf("ignore database: %w", err)
		}
	}
	return dbPath, nil
}

// Discover returns the path of the named database, walking up from the
// working directory.
func Discover(db string) (string, error) {
	file := DBFileName(db)
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir, file)
		if _, err := os.Stat(p); err == nil {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// DiscoverDir returns the nearest .hive directory.
func DiscoverDir() (string, error) {
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			found = p
			return true
		}
		return false
	})
	return found, err
}

func walkUp(hit func(dir string) bool) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	for {
		if hit(dir) {
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo describes one database in a .hive directory.
type DBInfo struct {
	Name  string `json:"name"` // "" for the default
	File  string `json:"file"`
	Path  string `json:"path"`
	Local bool   `json:"local"`
}

// ListDBs lists the databases in dir, or in the discovered .hive directory
// when dir is empty.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, err
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Dir, err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		n := e.Name()
		var name string
		switch {
		case n == DBFile:
		case strings.HasPrefix(n, dbPrefix) && strings.HasSuffix(n, ".db"):
			name = strings.TrimSuffix(strings.TrimPrefix(n, dbPrefix), ".db")
		default:
			continue
		}
		local, err := IsIgnored(name, dir)
		if err != nil {
			local = false
		}
		dbs = append(dbs, DBInfo{Name: name, File: n, Path: filepath.Join(dir, n), Local: local})
	}
	return dbs, nil
}
