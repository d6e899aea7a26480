// Package validate provides input validation for hive's domain types.
//
// This package enforces data integrity rules at the boundary between user
// input and the storage layer. Each validation function returns nil (or the
// normalised input) on success and a wrapped sentinel error on failure.
//
// # Validation Functions
//
// Path validates and normalises key paths.
// ValueName validates value names, reserving the default-value label.
// Type validates value type names.
// Data validates value data size and content per type.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidPath, ErrInvalidName, etc.). Use errors.Is() for type-safe
// error checking:
//
//	if errors.Is(err, validate.ErrInvalidPath) {
//	    // handle invalid path
//	}
package validate
