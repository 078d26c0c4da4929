package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// SystemDir is the directory holding a journal's data and config.
const SystemDir = ".journal"

// FindRoot recursively looks upwards for a directory containing SystemDir.
// If found, returns the absolute path to that directory's parent (the root).
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, SystemDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// DataDir returns where the journal under root keeps its files.
func DataDir(root string) string {
	return filepath.Join(root, SystemDir)
}

// ResolveDataDir picks the data directory: an explicit path wins, then the
// nearest SystemDir above startDir, then SystemDir in the user's home.
func ResolveDataDir(explicit, startDir string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	if root, err := FindRoot(startDir); err == nil {
		return DataDir(root), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no journal found and no home directory: %w", err)
	}
	return DataDir(home), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
