package config

import (
	"os"
	"path/filepath"
)

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/trackline/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "trackline", "config.yaml")
}

// defaultDataDirs returns the default segment dump directories scanned
// by the CLI when no explicit segments file is given.
//
// Searches in order:
// 1. ~/.local/share/trackline/segments/
// 2. ~/.trackline/segments/ (legacy)
//
// Returns all directories that exist on the filesystem, or the new
// default path when neither exists.
func defaultDataDirs() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"."}
	}

	candidates := []string{
		filepath.Join(homeDir, ".local", "share", "trackline", "segments"),
		filepath.Join(homeDir, ".trackline", "segments"),
	}

	var dirs []string
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		}
	}

	if len(dirs) == 0 {
		return []string{candidates[0]}
	}

	return dirs
}

// DefaultDataDirs exposes the default segment dump directories.
func DefaultDataDirs() []string {
	return defaultDataDirs()
}
