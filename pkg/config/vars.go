package config

import "path/filepath"

var (
	// AppName is used when generating file system paths.
	AppName = "gntax"

	// DefaultNameClasses are the Name classes accepted by the lookup
	// index when none are configured.
	DefaultNameClasses = []string{"scientific name", "synonym"}
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntax by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
