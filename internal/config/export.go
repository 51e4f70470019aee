package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/paperless/pkg/storage"
)

// Env maps environment variable names for export configuration.
type Env struct {
	Concurrency string
	Original    string
	Prefix      string
	Storage     storage.Env
}

// ExportConfig controls the document export command.
type ExportConfig struct {
	// Concurrency bounds simultaneous downloads.
	// Default: 4
	Concurrency int `toml:"concurrency"`

	// Original exports the uploaded file instead of the archived version.
	Original bool `toml:"original"`

	// Prefix is prepended to every storage key.
	// Default: "documents"
	Prefix string `toml:"prefix"`

	Storage storage.Config `toml:"storage"`
}

// Finalize applies defaults, loads environment overrides, and validates the export configuration.
func (c *ExportConfig) Finalize(env *Env) error {
	c.loadDefaults()
	var storageEnv *storage.Env
	if env != nil {
		c.loadEnv(env)
		storageEnv = &env.Storage
	}
	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ExportConfig) Merge(overlay *ExportConfig) {
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
	if overlay.Original {
		c.Original = true
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	c.Storage.Merge(&overlay.Storage)
}

func (c *ExportConfig) loadDefaults() {
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.Prefix == "" {
		c.Prefix = "documents"
	}
}

func (c *ExportConfig) loadEnv(env *Env) {
	if v := os.Getenv(env.Concurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv(env.Original); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Original = b
		}
	}
	if v := os.Getenv(env.Prefix); v != "" {
		c.Prefix = v
	}
}

func (c *ExportConfig) validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive")
	}
	return nil
}
