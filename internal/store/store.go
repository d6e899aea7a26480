// Package store defines key/value persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Key is one node of the tree.
type Key struct {
	ID        int64  // Database primary key (internal)
	Path      string // Full path, e.g. HKEY_CURRENT_USER\Software\Acme
	Parent    string // Parent path, empty for a root
	Name      string // Last path component
	CreatedAt int64  // Unix timestamp of creation
	UpdatedAt int64  // Unix timestamp of the last change to the key or its values
}

// Value is a named datum held by a key. The default value has an empty Name.
type Value struct {
	ID        int64
	KeyPath   string
	Name      string
	Type      string // REG_SZ, REG_DWORD, ...
	Data      string // Display text of the data
	UpdatedAt int64
}

// KeyJSON is the API-friendly representation of a Key.
type KeyJSON struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ToJSON converts a Key to its API representation with RFC3339 timestamps.
// Roots carry no timestamps.
func (k *Key) ToJSON() KeyJSON {
	j := KeyJSON{Path: k.Path, Name: k.Name}
	if k.CreatedAt > 0 {
		j.CreatedAt = time.Unix(k.CreatedAt, 0).UTC().Format(time.RFC3339)
	}
	if k.UpdatedAt > 0 {
		j.UpdatedAt = time.Unix(k.UpdatedAt, 0).UTC().Format(time.RFC3339)
	}
	return j
}

// ValueJSON is the API-friendly representation of a Value.
type ValueJSON struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Data      string `json:"data"`
	UpdatedAt string `json:"updated_at"`
}

// ToJSON converts a Value to its API representation.
func (v *Value) ToJSON() ValueJSON {
	return ValueJSON{
		Key:       v.KeyPath,
		Name:      v.Name,
		Type:      v.Type,
		Data:      v.Data,
		UpdatedAt: time.Unix(v.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteOptions configures a write operation.
type WriteOptions struct {
	MaxPath int   // 0 means no limit
	MaxData int64 // 0 means no limit
}

// Stats provides aggregate database statistics.
type Stats struct {
	Keys      int64 // Keys below the roots
	Values    int64 // Values across all keys
	DataBytes int64 // Sum of value data lengths
	Newest    int64 // Unix timestamp of the most recent change
}
