// value.go implements validation of value names, types and data.
//
// Names and data end up in tab-separated result files, so neither may hold
// a tab or a line break. The label used for the unnamed default value is
// reserved so a saved result always maps back to the same value.

package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/hive/internal/result"
)

// MaxValueName is the longest allowed value name in bytes.
const MaxValueName = 16383

// Value types.
const (
	TypeString       = "REG_SZ"
	TypeExpandString = "REG_EXPAND_SZ"
	TypeMultiString  = "REG_MULTI_SZ"
	TypeDword        = "REG_DWORD"
	TypeQword        = "REG_QWORD"
	TypeBinary       = "REG_BINARY"
	TypeNone         = "REG_NONE"
)

// Types lists every accepted value type.
var Types = []string{TypeString, TypeExpandString, TypeMultiString, TypeDword, TypeQword, TypeBinary, TypeNone}

// ValueName validates a value name. The empty name is the default value.
func ValueName(name string) error {
	switch {
	case name == result.DefaultValueName:
		return fmt.Errorf("%w: %q is reserved for the default value", ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: null byte in name", ErrInvalidName)
	case strings.ContainsAny(name, "\t\r\n"):
		return fmt.Errorf("%w: name contains a tab or line break", ErrInvalidName)
	case len(name) > MaxValueName:
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidName, MaxValueName)
	}
	return nil
}

// Type validates a value type and returns its canonical spelling. An empty
// type means REG_SZ.
func Type(t string) (string, error) {
	if t == "" {
		return TypeString, nil
	}
	up := strings.ToUpper(t)
	if !strings.HasPrefix(up, "REG_") {
		up = "REG_" + up
	}
	for _, k := range Types {
		if k == up {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidType, t, strings.Join(Types, ", "))
}

// Data validates value data for type typ. Data is stored as display text:
// decimal for DWORD/QWORD, hex digits for BINARY, and "|" separated
// strings for MULTI_SZ.
//
// Max length enforced if maxLen > 0 (0 means no limit).
func Data(typ, data string, maxLen int64) error {
	if maxLen > 0 && int64(len(data)) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDataTooLarge, len(data), maxLen)
	}
	if strings.ContainsRune(data, 0) {
		return fmt.Errorf("%w: null byte in data", ErrInvalidData)
	}
	if strings.ContainsAny(data, "\t\r\n") {
		return fmt.Errorf("%w: data contains a tab or line break", ErrInvalidData)
	}
	switch typ {
	case TypeDword:
		if _, err := strconv.ParseUint(data, 0, 32); err != nil {
			return fmt.Errorf("%w: %q is not a 32-bit number", ErrInvalidData, data)
		}
	case TypeQword:
		if _, err := strconv.ParseUint(data, 0, 64); err != nil {
			return fmt.Errorf("%w: %q is not a 64-bit number", ErrInvalidData, data)
		}
	case TypeBinary:
		hex := strings.ReplaceAll(data, " ", "")
		if len(hex)%2 != 0 || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
			return fmt.Errorf("%w: %q is not hex bytes", ErrInvalidData, data)
		}
	}
	return nil
}
