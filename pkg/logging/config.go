package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env names the environment variables that override logging settings.
type Env struct {
	Level  string
	Format string
	Source string
}

// Config holds logging settings from the [logging] table. Source adds the
// caller's file and line to each record.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	Source bool   `toml:"source"`
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}

	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}

	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

// Merge applies non-zero values from overlay. Source can only be switched
// on by an overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Source {
		c.Source = true
	}
}

func (c *Config) loadEnv(env *Env) error {
	if v := os.Getenv(env.Level); v != "" {
		c.Level = Level(strings.ToLower(v))
	}
	if v := os.Getenv(env.Format); v != "" {
		c.Format = Format(strings.ToLower(v))
	}
	if env.Source == "" {
		return nil
	}
	if v := os.Getenv(env.Source); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.Source, err)
		}
		c.Source = b
	}
	return nil
}
