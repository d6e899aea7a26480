// Package path provides key path normalisation for the hive store.
//
// Every key path passes through this package before it reaches the store or
// a search. A path is a root followed by zero or more components separated
// by backslashes, e.g. HKEY_CURRENT_USER\Software\Acme.
//
// Normalisation rules:
//   - Forward slashes are accepted as separators and become backslashes
//   - Leading and trailing separators are trimmed, repeated ones collapse
//   - The root is matched case-insensitively and written in canonical form
//   - Short aliases (HKLM, HKCU, HKCR, HKU, HKCC) expand to their roots
//   - Null bytes and components longer than MaxComponent are rejected
//
// Components below the root keep the case they were given. Lookups in the
// store are case-insensitive.
package path

import (
	"errors"
	"fmt"
	"strings"
)

// Sep separates key path components.
const Sep = `\`

// MaxComponent is the longest allowed key name in bytes.
const MaxComponent = 255

// View is a set of root keys searched together.
type View int

const (
	// ViewStd holds the HKEY_* roots.
	ViewStd View = iota
	// ViewReal holds the single REGISTRY root.
	ViewReal
)

// String returns "std" or "real".
func (v View) String() string {
	if v == ViewReal {
		return "real"
	}
	return "std"
}

// Root key names.
const (
	ClassesRoot   = "HKEY_CLASSES_ROOT"
	CurrentUser   = "HKEY_CURRENT_USER"
	LocalMachine  = "HKEY_LOCAL_MACHINE"
	Users         = "HKEY_USERS"
	CurrentConfig = "HKEY_CURRENT_CONFIG"
	Registry      = "REGISTRY"
)

// StdRoots lists the standard view roots in display order.
var StdRoots = []string{ClassesRoot, CurrentUser, LocalMachine, Users, CurrentConfig}

// RealRoots lists the real view roots.
var RealRoots = []string{Registry}

var aliases = map[string]string{
	"HKCR": ClassesRoot,
	"HKCU": CurrentUser,
	"HKLM": LocalMachine,
	"HKU":  Users,
	"HKCC": CurrentConfig,
}

var (
	// ErrInvalid indicates the provided key path is malformed.
	ErrInvalid = errors.New("invalid key path")
	// ErrUnknownRoot indicates the path does not start with a known root.
	ErrUnknownRoot = errors.New("unknown root key")
)

// Normalise cleans and validates a key path.
func Normalise(p string) (string, error) {
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte", ErrInvalid)
	}
	parts := Split(p)
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: empty path", ErrInvalid)
	}

	root, ok := CanonicalRoot(parts[0])
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoot, parts[0])
	}
	parts[0] = root

	for _, c := range parts[1:] {
		if len(c) > MaxComponent {
			return "", fmt.Errorf("%w: component longer than %d bytes", ErrInvalid, MaxComponent)
		}
	}
	return strings.Join(parts, Sep), nil
}

// Split breaks p into its non-empty components. Both separators are accepted.
func Split(p string) []string {
	p = strings.ReplaceAll(p, "/", Sep)
	var out []string
	for _, c := range strings.Split(p, Sep) {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// CanonicalRoot returns the canonical spelling of a root name or alias.
func CanonicalRoot(name string) (string, bool) {
	up := strings.ToUpper(name)
	if r, ok := aliases[up]; ok {
		return r, true
	}
	for _, r := range StdRoots {
		if r == up {
			return r, true
		}
	}
	if up == Registry {
		return Registry, true
	}
	return "", false
}

// Roots returns the roots of the selected views.
func Roots(std, real bool) []string {
	var out []string
	if std {
		out = append(out, StdRoots...)
	}
	if real {
		out = append(out, RealRoots...)
	}
	return out
}

// IsRoot reports whether p names a root key.
func IsRoot(p string) bool {
	return !strings.Contains(p, Sep)
}

// Join appends name to parent.
func Join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + Sep + name
}

// Parent returns the path of p's parent, or "" for a root.
func Parent(p string) string {
	if i := strings.LastIndex(p, Sep); i >= 0 {
		return p[:i]
	}
	return ""
}

// Base returns the last component of p.
func Base(p string) string {
	if i := strings.LastIndex(p, Sep); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Root returns the first component of p.
func Root(p string) string {
	if i := strings.Index(p, Sep); i >= 0 {
		return p[:i]
	}
	return p
}

// ViewOf reports which view p belongs to.
func ViewOf(p string) View {
	if strings.EqualFold(Root(p), Registry) {
		return ViewReal
	}
	return ViewStd
}

// Within reports whether p is prefix or lies below it. Comparison is
// case-insensitive.
func Within(p, prefix string) bool {
	if len(p) < len(prefix) || !strings.EqualFold(p[:len(prefix)], prefix) {
		return false
	}
	return len(p) == len(prefix) || strings.HasPrefix(p[len(prefix):], Sep)
}

// Direct reports whether p is a direct child of parent.
func Direct(p, parent string) bool {
	return Within(p, parent) && len(p) > len(parent) && !strings.Contains(p[len(parent)+1:], Sep)
}
