// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/cohere"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

// Providers understood by New
const (
	ProviderCohere = "cohere"
	ProviderOpenAI = "openai"
)

var (
	// ErrNotConfigured means no provider or API key was given.
	ErrNotConfigured = errors.New("text generation not configured")

	// ErrRateLimited means the call was dropped by the client-side limiter.
	ErrRateLimited = errors.New("text generation rate limited")

	// ErrEmptyResponse means the model answered with no text.
	ErrEmptyResponse = errors.New("empty text generation response")
)

const (
	defaultTimeout = 10 * time.Second
	defaultRate    = 2.0
	defaultBurst   = 4
)

type Config struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
}

// Client generates text with a single prompt per call. Calls over the rate
// limit fail immediately instead of queueing. Safe for concurrent use.
type Client struct {
	model   llms.Model
	timeout time.Duration
	limiter *rate.Limiter
}

// New builds a client for the configured provider.
func New(cfg Config) (*Client, error) {
	if cfg.Provider == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	var (
		model llms.Model
		err   error
	)
	switch strings.ToLower(cfg.Provider) {
	case ProviderCohere:
		opts := []cohere.Option{cohere.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, cohere.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, cohere.WithBaseURL(cfg.BaseURL))
		}
		model, err = cohere.New(opts...)
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	default:
		return nil, fmt.Errorf("unknown text generation provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	return NewWithModel(model, cfg.Timeout, cfg.RatePerSec), nil
}

// NewWithModel wraps an existing model. Non-positive timeout and rate use
// the defaults.
func NewWithModel(model llms.Model, timeout time.Duration, ratePerSec float64) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ratePerSec <= 0 {
		ratePerSec = defaultRate
	}
	return &Client{
		model:   model,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), defaultBurst),
	}
}

// Generate sends prompt as a single user message and returns the trimmed
// reply. No conversation history is kept between calls.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.limiter.Allow() {
		return "", ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
