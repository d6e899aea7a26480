// Package config provides reading and writing of hive configuration.
// Supports both global (~/.hive/config.yaml) and local (.hive/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.hive/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .hive/config.yaml
	ScopeLocal
)

// Author represents the author metadata stored in the repository config.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Find holds the remembered find-all options. Each flag is a pointer so an
// unset flag falls back to its default.
type Find struct {
	Keys       *bool `yaml:"keys,omitempty"`
	Values     *bool `yaml:"values,omitempty"`
	Data       *bool `yaml:"data,omitempty"`
	WholeWords *bool `yaml:"whole_words,omitempty"`
	MatchCase  *bool `yaml:"match_case,omitempty"`
	Std        *bool `yaml:"std,omitempty"`
	Real       *bool `yaml:"real,omitempty"`
	Selected   *bool `yaml:"selected,omitempty"`
	Append     *bool `yaml:"append,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath *int   `yaml:"max_path,omitempty"`
	MaxData *int64 `yaml:"max_data,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxPath = 4096
	DefaultMaxData = 1024 * 1024 // 1 MB
)

// Validation bounds for configuration values.
const (
	MinMaxPath = 1
	MaxMaxPath = 65536
	MinMaxData = 1
	MaxMaxData = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for hive.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Find   Find   `yaml:"find,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxData != nil {
		v := *c.Limits.MaxData
		if v < MinMaxData || v > MaxMaxData {
			return fmt.Errorf("%w: max_data must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxData, MaxMaxData, v)
		}
	}
	return nil
}

// MaxPath returns the maximum key path length in bytes (defaults to 4096).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxData returns the maximum value data size in bytes (defaults to 1 MB).
func (c *Config) MaxData() int64 {
	if c.Limits.MaxData == nil {
		return DefaultMaxData
	}
	return *c.Limits.MaxData
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".hive", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.hive/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hive", "config.yaml")
}

// Path returns the local config path (for backwards compatibility).
func Path() string {
	return LocalPath()
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
