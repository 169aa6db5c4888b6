// Package writer persists rendered artifacts under a project output
// directory, creating parent directories as needed.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes rendered artifact content below Root.
type Writer struct {
	Root string
}

func New(root string) Writer {
	return Writer{Root: root}
}

// Write stores content at the relative path, creating parents. Shell
// scripts like mvnw are written executable.
func (w Writer) Write(relPath, content string, executable bool) error {
	path := filepath.Join(w.Root, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", relPath, err)
	}
	mode := os.FileMode(0o644)
	if executable {
		mode = 0o755
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	return nil
}

// Reset removes the directory tree and recreates it empty. Stale
// output from earlier runs, partial or not, is cleared here.
func Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
