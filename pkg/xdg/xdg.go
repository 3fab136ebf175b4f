// pkg/xdg/xdg.go

// Package xdg resolves ship's per-user directories following the XDG base
// directory layout.
package xdg

import (
	"os"
	"path/filepath"
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

// ConfigHome is $XDG_CONFIG_HOME, defaulting to ~/.config.
func ConfigHome() string {
	return GetEnvOrDefault("XDG_CONFIG_HOME", filepath.Join(home(), ".config"))
}

// ConfigPath is $XDG_CONFIG_HOME/ship/file, defaulting to ~/.config.
func ConfigPath(file string) string {
	return filepath.Join(ConfigHome(), App, file)
}

// StatePath is $XDG_STATE_HOME/ship/file, defaulting to ~/.local/state.
func StatePath(file string) string {
	base := GetEnvOrDefault("XDG_STATE_HOME", filepath.Join(home(), ".local", "state"))
	return filepath.Join(base, App, file)
}

// EnsureDir creates the parent directory of path, private to the user.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), DirPermPrivate)
}

// OpenAppend opens path for appending, creating it and its directory.
func OpenAppend(path string) (*os.File, error) {
	if err := EnsureDir(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, FilePermPrivate)
}
