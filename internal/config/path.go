package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath normalizes a user-supplied database path: a leading "~/" is
// expanded to the home directory. Paths that cannot be expanded are
// returned unchanged.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}

		if path == "~" {
			return home
		}

		return filepath.Join(home, path[2:])
	}

	return path
}
