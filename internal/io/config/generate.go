package config

import (
	"fmt"
	"os"

	"github.com/blobtoolkit/core/pkg/config"
	"gopkg.in/yaml.v3"
)

// GenerateDefaultConfig creates a documented default config file at
// config.ConfigFilePath(homeDir). Returns the path where the config was
// created, or an error if generation fails. Does NOT overwrite an
// existing config file.
func GenerateDefaultConfig(homeDir string) (string, error) {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := config.ConfigDir(homeDir)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := config.New()

	yamlContent := `# gntax configuration file
# This file was auto-generated. Edit as needed.
#
# Configuration precedence (highest to lowest):
#   1. CLI flags
#   2. This config file (and anything it merges in via config_file)
#   3. Built-in defaults

taxonomy_format: ` + defaults.TaxonomyFormat + `
# path: /path/to/taxdump
# out: /path/to/dump
# root_taxon_id: ["2759"]
# xref_label: ncbi
# create_taxa: false

logging:
  level: ` + defaults.Logging.Level + `
  format: ` + defaults.Logging.Format + `
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// ConfigFileExists reports whether a config file exists at the default
// location for homeDir.
func ConfigFileExists(homeDir string) (bool, error) {
	_, err := os.Stat(config.ConfigFilePath(homeDir))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads a generated config file and confirms it
// unmarshals into Options cleanly. Used by tests to ensure generated
// YAML stays in sync with the Options schema.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var opts config.Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	return nil
}
