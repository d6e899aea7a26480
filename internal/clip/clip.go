// Package clip puts result text on the system clipboard.
package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unavailable")

// writeAll is swapped out in tests.
var writeAll = clipboard.WriteAll

// Copy writes text to the clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
