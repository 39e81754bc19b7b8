// Package config implements layered configuration for Scribe: a base
// config.toml, an optional environment overlay, environment variable
// overrides, and validation before any document is processed.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvScribeEnv     = "SCRIBE_ENV"
	EnvScribeVersion = "SCRIBE_VERSION"
)

// Config is the root configuration for the Scribe pipeline.
type Config struct {
	Agent    gaconfig.AgentConfig `toml:"agent"`
	Pipeline PipelineConfig       `toml:"pipeline"`
	Version  string               `toml:"version"`
}

// Env returns the SCRIBE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvScribeEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults
// and environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Pipeline.Merge(&overlay.Pipeline)
	mergeAgent(&c.Agent, &overlay.Agent)
}

// Finalize applies defaults, environment variable overrides, and
// validation to every sub-config. Validation failures are configuration
// errors: fatal for the run, surfaced before any image is processed.
func (c *Config) Finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvScribeVersion); v != "" {
		c.Version = v
	}

	if err := c.Pipeline.Finalize(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
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

func overlayPath() string {
	if env := os.Getenv(EnvScribeEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
