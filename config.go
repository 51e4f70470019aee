package paperless

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/transport"
	"github.com/JaimeStill/paperless/tasks"
)

// Env maps environment variable names for client configuration.
type Env struct {
	Transport     transport.Env
	Pagination    pagination.Env
	TaskPollDelay string
}

// Config holds everything needed to construct a Client.
type Config struct {
	Server        transport.Config  `toml:"server"`
	Pagination    pagination.Config `toml:"pagination"`
	TaskPollDelay string            `toml:"task_poll_delay"`
}

// TaskPollDelayDuration returns the parsed delay between task status checks.
func (c *Config) TaskPollDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.TaskPollDelay)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if err := c.validate(); err != nil {
		return err
	}

	var serverEnv *transport.Env
	var pageEnv *pagination.Env
	if env != nil {
		serverEnv = &env.Transport
		pageEnv = &env.Pagination
	}
	if err := c.Server.Finalize(serverEnv); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Pagination.Finalize(pageEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.TaskPollDelay != "" {
		c.TaskPollDelay = overlay.TaskPollDelay
	}
	c.Server.Merge(&overlay.Server)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *Config) loadDefaults() {
	if c.TaskPollDelay == "" {
		c.TaskPollDelay = tasks.DefaultPollDelay.String()
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.TaskPollDelay != "" {
		if v := os.Getenv(env.TaskPollDelay); v != "" {
			c.TaskPollDelay = v
		}
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.TaskPollDelay)
	if err != nil {
		return fmt.Errorf("invalid task_poll_delay: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("task_poll_delay must be positive")
	}
	return nil
}
