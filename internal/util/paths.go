package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv overrides the hooksync home directory.
const HomeEnv = "HOOKSYNC_HOME"

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// HooksyncConfigPath returns the hooksync home directory: $HOOKSYNC_HOME when
// set, ~/.hooksync otherwise.
func HooksyncConfigPath() string {
	if v := os.Getenv(HomeEnv); v != "" {
		return v
	}
	return filepath.Join(HomeDir(), ".hooksync")
}

// BackupsPath returns the default backup directory for a repository.
func BackupsPath(gitDir string) string {
	return filepath.Join(gitDir, "hooksync", "backups")
}

// ExpandPath expands a leading ~ and resolves relative paths against baseDir.
// An empty path stays empty.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
