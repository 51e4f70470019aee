// Package config loads CLI configuration from TOML files with support for
// environment-specific overlays and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JaimeStill/paperless"
	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "paperless.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "paperless.%s.toml"

	// EnvPaperlessEnv selects the configuration overlay.
	EnvPaperlessEnv = "PAPERLESS_ENV"
)

// Config is the root CLI configuration.
type Config struct {
	Paperless paperless.Config `toml:"paperless"`
	Logging   logging.Config   `toml:"logging"`
	Export    ExportConfig     `toml:"export"`
}

// Load reads configuration from the working directory. See LoadDir.
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir reads the base configuration file in dir, when present, and applies the
// overlay named by PAPERLESS_ENV. The result is not finalized.
func LoadDir(dir string) (*Config, error) {
	cfg, err := load(filepath.Join(dir, BaseConfigFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates every section.
func (c *Config) Finalize() error {
	if err := c.Logging.Finalize(LoggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Paperless.Finalize(PaperlessEnv); err != nil {
		return fmt.Errorf("paperless: %w", err)
	}
	if err := c.Export.Finalize(ExportEnv); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Paperless.Merge(&overlay.Paperless)
	c.Logging.Merge(&overlay.Logging)
	c.Export.Merge(&overlay.Export)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvPaperlessEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
