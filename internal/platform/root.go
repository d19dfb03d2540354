package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirName is the directory that marks a Quill workspace and holds its data.
const DataDirName = ".quill"

// FindRoot looks upwards from startDir for a directory containing DataDirName
// and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, DataDirName)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// DefaultDataPath resolves the data directory for startDir: the marker
// directory of the nearest workspace root, or a new one in startDir.
func DefaultDataPath(startDir string) string {
	if root, err := FindRoot(startDir); err == nil {
		return filepath.Join(root, DataDirName)
	}
	return filepath.Join(startDir, DataDirName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
