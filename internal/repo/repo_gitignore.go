// repo_gitignore.go keeps .hive/.gitignore in step with which databases
// are local. Existing lines are preserved; only database entries under the
// local header are added or removed.

package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	localHeader = "# Local databases (not committed)"

	gitignoreBody = `# hive - local config is per checkout
# Database files (*.db) hold the key tree and are committed
config.yaml
*.db-wal
*.db-shm
`
)

func writeGitignore(hiveDir string) error {
	p := filepath.Join(hiveDir, ".gitignore")
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		return nil
	}
	if err := os.WriteFile(p, []byte(gitignoreBody), 0o644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

func gitignoreLines(dir string) (string, []string, error) {
	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return "", nil, err
	}
	lines := strings.Split(string(content), "\n")
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return string(content), trimmed, nil
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return DiscoverDir()
}

// IgnoreDB marks a database local by listing it in .gitignore.
func IgnoreDB(name, dir string) error {
	dir, err := resolveDir(dir)
	if err != nil {
		return err
	}
	content, lines, err := gitignoreLines(dir)
	if err != nil {
		return err
	}
	file := DBFileName(name)
	if slices.Contains(lines, file) {
		return nil
	}
	if !slices.Contains(lines, localHeader) {
		content += "\n" + localHeader + "\n"
	}
	content += file + "\n"
	return os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0o644)
}

// UnignoreDB marks a database shared. The local header goes once no local
// database is left under it.
func UnignoreDB(name, dir string) error {
	dir, err := resolveDir(dir)
	if err != nil {
		return err
	}
	content, _, err := gitignoreLines(dir)
	if err != nil {
		return err
	}
	file := DBFileName(name)
	var out []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != file {
			out = append(out, l)
		}
	}
	s := strings.Join(out, "\n")
	if i := strings.Index(s, localHeader); i >= 0 {
		if !strings.Contains(s[i+len(localHeader):], ".db") {
			s = strings.TrimRight(s[:i], "\n") + "\n"
		}
	}
	return os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(s), 0o644)
}

// IsIgnored reports whether a database is listed as local.
func IsIgnored(name, dir string) (bool, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return false, err
	}
	_, lines, err := gitignoreLines(dir)
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, DBFileName(name)), nil
}
