package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
)

const (
	EnvAPIOrigin          = "API_ORIGIN"
	EnvAPITimeout         = "API_TIMEOUT"
	EnvAPIMaxResponseSize = "API_MAX_RESPONSE_SIZE"
)

// ClientConfig configures the backend API client.
//
// BaseURL follows the client convention: absolute URLs address the backend
// directly, while a relative base such as /api is resolved against Origin
// and is also where the console mounts its pass-through to the backend.
type ClientConfig struct {
	BaseURL         string `toml:"base_url"`
	Origin          string `toml:"origin"`
	Timeout         string `toml:"timeout"`
	MaxResponseSize string `toml:"max_response_size"`
}

// Relative reports whether the base URL is a path on the console itself.
func (c *ClientConfig) Relative() bool {
	u, err := url.Parse(c.BaseURL)
	return err == nil && !u.IsAbs()
}

// TimeoutDuration returns the per-request timeout. Zero means none.
func (c *ClientConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxResponseSizeBytes returns the parsed response size limit.
func (c *ClientConfig) MaxResponseSizeBytes() int64 {
	n, _ := units.FromHumanSize(c.MaxResponseSize)
	return n
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *ClientConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *ClientConfig) Merge(overlay *ClientConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Origin != "" {
		c.Origin = overlay.Origin
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
}

func (c *ClientConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = apiclient.DefaultBaseURL
	}
	if c.Origin == "" {
		c.Origin = "http://localhost:5000"
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "32MB"
	}
}

func (c *ClientConfig) loadEnv() {
	c.BaseURL = apiclient.BaseURLFromEnv(c.BaseURL)
	if v := os.Getenv(EnvAPIOrigin); v != "" {
		c.Origin = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvAPIMaxResponseSize); v != "" {
		c.MaxResponseSize = v
	}
}

func (c *ClientConfig) validate() error {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}

	if base.IsAbs() {
		if base.Scheme != "http" && base.Scheme != "https" {
			return fmt.Errorf("base_url scheme must be http or https: %s", c.BaseURL)
		}
	} else {
		path := strings.TrimSuffix(base.Path, "/")
		if !strings.HasPrefix(path, "/") || strings.Count(path, "/") != 1 {
			return fmt.Errorf("relative base_url must be a single path segment: %s", c.BaseURL)
		}
	}

	origin, err := url.Parse(c.Origin)
	if err != nil || (origin.Scheme != "http" && origin.Scheme != "https") || origin.Host == "" {
		return fmt.Errorf("origin must be an absolute http(s) url: %s", c.Origin)
	}

	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
	}

	if n, err := units.FromHumanSize(c.MaxResponseSize); err != nil {
		return fmt.Errorf("invalid max_response_size: %w", err)
	} else if n <= 0 {
		return fmt.Errorf("max_response_size must be positive")
	}

	return nil
}
