// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDictionaryPath builds the default dictionary path for a language.
func DefaultDictionaryPath(lang string) string {
	return filepath.Join(XDGConfigHome(), "stylo", "dictionaries", lang+".txt")
}

// DefaultDictionaryDir returns the default directory for dictionaries.
func DefaultDictionaryDir() string {
	return filepath.Join(XDGConfigHome(), "stylo", "dictionaries")
}

// DefaultDBPath returns the default path for the SQLite run history.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "stylo", "stylo.db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq archives.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), "stylo", "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "stylo", "config.toml")
}
