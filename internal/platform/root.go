package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// SystemDir is the directory that marks a note root and holds its storage.
const SystemDir = ".mynote"

// ErrRootNotFound is returned by FindRoot when no marker exists up to the
// filesystem root.
var ErrRootNotFound = errors.New("root not found")

// FindRoot walks upwards from startDir looking for a SystemDir directory
// and returns the absolute path of the directory containing it.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if isDir(filepath.Join(dir, SystemDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

// DefaultDir is the storage directory used when none is given: SystemDir
// under the nearest root, or under startDir when there is none.
func DefaultDir(startDir string) string {
	if root, err := FindRoot(startDir); err == nil {
		return filepath.Join(root, SystemDir)
	}
	return filepath.Join(startDir, SystemDir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
