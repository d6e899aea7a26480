// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidPath  = errors.New("invalid path")
	ErrPathTooLong  = errors.New("path too long")
	ErrInvalidName  = errors.New("invalid value name")
	ErrInvalidType  = errors.New("invalid value type")
	ErrInvalidData  = errors.New("invalid value data")
	ErrDataTooLarge = errors.New("value data too large")
)
