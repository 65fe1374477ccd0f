package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// projectGitignore keeps logs written into a project .puretable directory
// out of version control while the config itself stays tracked.
const projectGitignore = `# puretable project-local files (auto-generated)
*.log
`

// EnsureGitignore writes a .gitignore into dir unless one exists. It
// reports whether a file was written.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore is meant to be world-readable.
	if err := os.WriteFile(path, []byte(projectGitignore), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
