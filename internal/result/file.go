// file.go reads and writes result files.

package result

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile parses the result file name.
func ReadFile(name string) ([]Match, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	ms, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ms, nil
}

// LoadFile loads the result file name into s. A missing file loads
// nothing when missingOK is set. See Deserialize.
func (s *Set) LoadFile(name string, appendMode, missingOK bool) error {
	ms, err := ReadFile(name)
	if err != nil {
		if missingOK && errors.Is(err, os.ErrNotExist) {
			if !appendMode {
				s.items = nil
			}
			return nil
		}
		return err
	}
	if !appendMode {
		s.items = nil
	}
	s.items = append(s.items, ms...)
	return nil
}

// WriteFile writes ms to name. The file is replaced in one rename, so a
// failed write leaves the previous contents in place.
func WriteFile(name string, ms []Match) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(Format(ms)); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// WriteFile writes the set to name. See the package-level WriteFile.
func (s *Set) WriteFile(name string) error {
	return WriteFile(name, s.items)
}
