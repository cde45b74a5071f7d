package common

import (
	"fmt"
	"os"
)

// EnsureDir creates the directory (and any parents) if it does not exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
