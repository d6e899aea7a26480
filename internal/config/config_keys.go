// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the CLI and MCP tools (e.g., "find.match_case").
//
// Pointers are used for optional fields so "not set" (nil) differs from
// "explicitly set to zero/false". Defaults apply only to unset values.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"find.keys", "find.values", "find.data",
		"find.whole_words", "find.match_case",
		"find.std", "find.real", "find.selected", "find.append",
		"limits.max_path", "limits.max_data",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// findFlag returns the field behind a find.* key and its default.
func (c *Config) findFlag(key string) (**bool, bool, bool) {
	switch key {
	case "find.keys":
		return &c.Find.Keys, true, true
	case "find.values":
		return &c.Find.Values, true, true
	case "find.data":
		return &c.Find.Data, true, true
	case "find.whole_words":
		return &c.Find.WholeWords, false, true
	case "find.match_case":
		return &c.Find.MatchCase, false, true
	case "find.std":
		return &c.Find.Std, true, true
	case "find.real":
		return &c.Find.Real, false, true
	case "find.selected":
		return &c.Find.Selected, false, true
	case "find.append":
		return &c.Find.Append, false, true
	}
	return nil, false, false
}

// flag returns the effective value of a find.* key.
func (c *Config) flag(key string) bool {
	p, def, _ := c.findFlag(key)
	if p == nil || *p == nil {
		return def
	}
	return **p
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	if _, _, ok := c.findFlag(key); ok {
		return strconv.FormatBool(c.flag(key)), nil
	}
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_data":
		return strconv.FormatInt(c.MaxData(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	if p, _, ok := c.findFlag(key); ok {
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		b := v == "true"
		*p = &b
		return nil
	}
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "limits.max_path":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxPath || n > MaxMaxPath {
			return fmt.Errorf("%w: limits.max_path must be between %d and %d", ErrInvalidValue, MinMaxPath, MaxMaxPath)
		}
		c.Limits.MaxPath = &n
	case "limits.max_data":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxData || n > MaxMaxData {
			return fmt.Errorf("%w: limits.max_data must be between %d and %d", ErrInvalidValue, MinMaxData, MaxMaxData)
		}
		c.Limits.MaxData = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	if p, _, ok := c.findFlag(key); ok {
		return *p != nil
	}
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_data":
		return c.Limits.MaxData != nil
	default:
		return false
	}
}
