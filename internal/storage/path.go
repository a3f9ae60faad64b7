package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath expands a leading ~ and relative segments to an absolute path
// and verifies the file exists. Runs fail here, before any remote call, when
// the input is wrong.
func ResolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}

	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("the path %s does not exist", abs)
	}

	return abs, nil
}
