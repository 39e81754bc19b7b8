package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/scribe/internal/config"
)

func TestPipelineDefaults(t *testing.T) {
	cfg := config.PipelineConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.ContextChars != 500 {
		t.Errorf("ContextChars = %d, want 500", cfg.ContextChars)
	}
	if cfg.MaxImageBytes() != 5*1000*1000 && cfg.MaxImageBytes() != 5*1024*1024 {
		t.Errorf("MaxImageBytes = %d", cfg.MaxImageBytes())
	}
	if cfg.RequestTimeoutDuration() != 120*time.Second {
		t.Errorf("RequestTimeout = %v, want 120s", cfg.RequestTimeoutDuration())
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryBackoffDuration() != 2*time.Second {
		t.Errorf("RetryBackoff = %v, want 2s", cfg.RetryBackoffDuration())
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("ConfidenceThreshold = %v, want 0.5", cfg.ConfidenceThreshold)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (auto)", cfg.Workers)
	}
}

func TestPipelineEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvPipelineContextChars, "250")
	t.Setenv(config.EnvPipelineRequestTimeout, "30s")
	t.Setenv(config.EnvPipelineWorkers, "4")
	t.Setenv(config.EnvPipelineConfidenceThreshold, "0.75")

	cfg := config.PipelineConfig{ContextChars: 800}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.ContextChars != 250 {
		t.Errorf("ContextChars = %d, want env override 250", cfg.ContextChars)
	}
	if cfg.RequestTimeoutDuration() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeoutDuration())
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.ConfidenceThreshold != 0.75 {
		t.Errorf("ConfidenceThreshold = %v, want 0.75", cfg.ConfidenceThreshold)
	}
}

func TestPipelineValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.PipelineConfig)
		wantErr string
	}{
		{
			name:    "negative context chars",
			mutate:  func(c *config.PipelineConfig) { c.ContextChars = -1 },
			wantErr: "context_chars",
		},
		{
			name:    "bad image size",
			mutate:  func(c *config.PipelineConfig) { c.MaxImageSize = "five megabytes" },
			wantErr: "max_image_size",
		},
		{
			name:    "bad timeout",
			mutate:  func(c *config.PipelineConfig) { c.RequestTimeout = "soon" },
			wantErr: "request_timeout",
		},
		{
			name:    "threshold above one",
			mutate:  func(c *config.PipelineConfig) { c.ConfidenceThreshold = 1.5 },
			wantErr: "confidence_threshold",
		},
		{
			name:    "negative workers",
			mutate:  func(c *config.PipelineConfig) { c.Workers = -2 },
			wantErr: "workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.PipelineConfig{}
			tt.mutate(&cfg)

			err := cfg.Finalize()
			if err == nil {
				t.Fatal("Finalize succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestPipelineMerge(t *testing.T) {
	base := config.PipelineConfig{
		ContextChars:   500,
		MaxImageSize:   "5MB",
		RequestTimeout: "120s",
	}
	overlay := config.PipelineConfig{
		ContextChars: 300,
		MaxRetries:   5,
	}

	base.Merge(&overlay)

	if base.ContextChars != 300 {
		t.Errorf("ContextChars = %d, want overlay 300", base.ContextChars)
	}
	if base.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want overlay 5", base.MaxRetries)
	}
	if base.MaxImageSize != "5MB" {
		t.Errorf("MaxImageSize = %q, zero overlay field should not clear it", base.MaxImageSize)
	}
	if base.RequestTimeout != "120s" {
		t.Errorf("RequestTimeout = %q, zero overlay field should not clear it", base.RequestTimeout)
	}
}
