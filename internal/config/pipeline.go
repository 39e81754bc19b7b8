package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/scribe/pkg/formatting"
)

const (
	EnvPipelineContextChars        = "SCRIBE_PIPELINE_CONTEXT_CHARS"
	EnvPipelineMaxImageSize        = "SCRIBE_PIPELINE_MAX_IMAGE_SIZE"
	EnvPipelineRequestTimeout      = "SCRIBE_PIPELINE_REQUEST_TIMEOUT"
	EnvPipelineMaxRetries          = "SCRIBE_PIPELINE_MAX_RETRIES"
	EnvPipelineRetryBackoff        = "SCRIBE_PIPELINE_RETRY_BACKOFF"
	EnvPipelineWorkers             = "SCRIBE_PIPELINE_WORKERS"
	EnvPipelineConfidenceThreshold = "SCRIBE_PIPELINE_CONFIDENCE_THRESHOLD"
)

// PipelineConfig holds the annotation pipeline parameters: context window
// budget, image size cap, inference call timeouts and retry bounds, and
// the hypothesis confidence threshold used when confirmation falls back.
type PipelineConfig struct {
	ContextChars        int     `toml:"context_chars"`
	MaxImageSize        string  `toml:"max_image_size"`
	RequestTimeout      string  `toml:"request_timeout"`
	MaxRetries          int     `toml:"max_retries"`
	RetryBackoff        string  `toml:"retry_backoff"`
	Workers             int     `toml:"workers"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
}

// MaxImageBytes returns MaxImageSize as a byte count.
func (c *PipelineConfig) MaxImageBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxImageSize)
	return n
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *PipelineConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// RetryBackoffDuration returns RetryBackoff as a time.Duration.
func (c *PipelineConfig) RetryBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryBackoff)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.ContextChars != 0 {
		c.ContextChars = overlay.ContextChars
	}
	if overlay.MaxImageSize != "" {
		c.MaxImageSize = overlay.MaxImageSize
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.RetryBackoff != "" {
		c.RetryBackoff = overlay.RetryBackoff
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.ConfidenceThreshold != 0 {
		c.ConfidenceThreshold = overlay.ConfidenceThreshold
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.ContextChars == 0 {
		c.ContextChars = 500
	}
	if c.MaxImageSize == "" {
		c.MaxImageSize = "5MB"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "120s"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoff == "" {
		c.RetryBackoff = "2s"
	}
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = 0.5
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineContextChars); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ContextChars = n
		}
	}
	if v := os.Getenv(EnvPipelineMaxImageSize); v != "" {
		c.MaxImageSize = v
	}
	if v := os.Getenv(EnvPipelineRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
	if v := os.Getenv(EnvPipelineMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvPipelineRetryBackoff); v != "" {
		c.RetryBackoff = v
	}
	if v := os.Getenv(EnvPipelineWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvPipelineConfidenceThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ConfidenceThreshold = f
		}
	}
}

func (c *PipelineConfig) validate() error {
	if c.ContextChars < 0 {
		return fmt.Errorf("context_chars must not be negative")
	}
	if _, err := formatting.ParseBytes(c.MaxImageSize); err != nil {
		return fmt.Errorf("invalid max_image_size: %w", err)
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if _, err := time.ParseDuration(c.RetryBackoff); err != nil {
		return fmt.Errorf("invalid retry_backoff: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1]")
	}
	return nil
}
