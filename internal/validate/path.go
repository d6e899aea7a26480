// Package validate provides input validation for the store layer.
//
// Validation happens at the store layer because the store is the
// persistence boundary. The service layer passes config limits (MaxPath,
// MaxData) via options structs.
package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/hive/internal/path"
)

// Path validates a key path and returns the normalised form.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected
//   - Max length enforced if maxLen > 0 (0 means no limit, used by read operations)
//   - Normalisation via path.Normalise (root canonicalisation, separators)
func Path(p string, maxLen int) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}

	norm, err := path.Normalise(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if maxLen > 0 && len(norm) > maxLen {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrPathTooLong, len(norm), maxLen)
	}
	return norm, nil
}

// Subkey validates the name of a single key component.
func Subkey(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty key name", ErrInvalidPath)
	case strings.ContainsAny(name, `\/`):
		return fmt.Errorf("%w: key name %q contains a separator", ErrInvalidPath, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: null byte in key name", ErrInvalidPath)
	case len(name) > path.MaxComponent:
		return fmt.Errorf("%w: key name longer than %d bytes", ErrInvalidPath, path.MaxComponent)
	}
	return nil
}
