// pkg/xdg/xdg.go

// Package xdg resolves per-user configuration and state locations following
// the XDG base directory layout.
package xdg

import (
	"os"
	"path/filepath"
)

const (
	// Permission modes (in octal)
	DirPermOwnerOnly       = 0700
	FilePermOwnerReadWrite = 0600
)

func GetEnvOrDefault(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.TempDir()
}

// ConfigPath returns $XDG_CONFIG_HOME/app/file, defaulting to ~/.config.
func ConfigPath(app, file string) string {
	base := GetEnvOrDefault("XDG_CONFIG_HOME", filepath.Join(home(), ".config"))
	return filepath.Join(base, app, file)
}

// StatePath returns $XDG_STATE_HOME/app/file, defaulting to ~/.local/state.
func StatePath(app, file string) string {
	base := GetEnvOrDefault("XDG_STATE_HOME", filepath.Join(home(), ".local", "state"))
	return filepath.Join(base, app, file)
}

// EnsureDir creates the parent directory of path, readable by the owner only.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), DirPermOwnerOnly)
}
