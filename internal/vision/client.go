// Package vision wraps the vision-language inference service behind a
// small client contract: an image plus a text prompt in, free-form text
// out. The service is treated as opaque, slow, and fallible; every call
// carries a per-attempt timeout and a bounded exponential-backoff retry.
package vision

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/JaimeStill/go-agents/pkg/format"
)

// Client is the inference call contract: (image, prompt) -> text.
// imageURI is a data URI; implementations must honor ctx cancellation.
type Client interface {
	Analyze(ctx context.Context, prompt, imageURI string) (string, error)
}

// AgentClient calls the inference service through a go-agents vision agent.
// A fresh agent is constructed per call so concurrent pipeline workers
// never share one.
type AgentClient struct {
	cfg      *gaconfig.AgentConfig
	timeout  time.Duration
	retries  uint64
	interval time.Duration
}

// NewAgentClient creates a client with the given per-attempt timeout,
// bounded retry count, and initial backoff interval.
func NewAgentClient(cfg *gaconfig.AgentConfig, timeout time.Duration, retries int, interval time.Duration) *AgentClient {
	if retries < 0 {
		retries = 0
	}
	return &AgentClient{
		cfg:      cfg,
		timeout:  timeout,
		retries:  uint64(retries),
		interval: interval,
	}
}

// Analyze sends the prompt and image to the vision model, retrying
// transient failures with exponential backoff. Run cancellation stops the
// retry loop immediately.
func (c *AgentClient) Analyze(ctx context.Context, prompt, imageURI string) (string, error) {
	var content string

	op := func() error {
		a, err := agent.New(c.cfg)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create agent: %w", err))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := a.Vision(callCtx, prompt, []format.Image{{URL: imageURI}})
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("vision call: %w", err)
		}

		content = resp.Text()
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.interval

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, c.retries), ctx))
	if err != nil {
		return "", err
	}

	return content, nil
}
