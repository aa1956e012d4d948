// Package config handles global tool configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/bibfront/config.yml.
type Config struct {
	OutputDir string `yaml:"output_dir,omitempty"` // Where converted pages are written
	MailTo    string `yaml:"mailto,omitempty"`     // Contact address sent to doi.org
	KeepGoing bool   `yaml:"keep_going,omitempty"` // Skip failing entries instead of aborting
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bibfront"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// CatalogFile is the conversion catalog database file name.
	CatalogFile = "catalog.db"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibfront/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// CatalogPath returns the path to the conversion catalog database under the
// given output directory.
func CatalogPath(outputDir string) string {
	return filepath.Join(outputDir, ".bibfront", CatalogFile)
}

// Load reads the configuration file. A missing file yields an empty config,
// not an error. BIBFRONT_OUTPUT_DIR and BIBFRONT_MAILTO environment
// variables override file values.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}
	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Not configured yet; fall through to env overrides.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if dir := os.Getenv("BIBFRONT_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if mailto := os.Getenv("BIBFRONT_MAILTO"); mailto != "" {
		cfg.MailTo = mailto
	}

	configCache = cfg
	return cfg, nil
}

// Save writes the configuration file, creating its directory if needed.
func Save(cfg *Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	configCache = nil
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}
