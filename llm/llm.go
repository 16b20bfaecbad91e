// Package llm wraps the provider backends with retries, timeouts, error
// classification, and JSON handling for the prompt optimization pipeline.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/providers"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// Request and Response are the provider wire types re-exported for callers
// that never touch the providers package directly.
type (
	Request  = providers.Request
	Response = providers.Response
	Usage    = providers.Usage
)

// LLM is the completion interface consumed by rollouts and the gradient
// engine.
type LLM interface {
	// Generate performs a completion, retrying per configuration.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Model returns the default model name.
	Model() string

	// GetLogger returns the logger shared with callers.
	GetLogger() utils.Logger
}

// Client is the standard LLM implementation over a registered provider.
type Client struct {
	provider   providers.Provider
	model      string
	logger     utils.Logger
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient builds a client from configuration. A nil registry selects the
// process-wide default.
func NewClient(cfg *config.Config, logger utils.Logger, registry *providers.Registry) (*Client, error) {
	if registry == nil {
		registry = providers.DefaultRegistry()
	}
	if logger == nil {
		logger = utils.NewLogger(cfg.LogLevel)
	}
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, NewLLMError(ErrorTypeAuthentication, "no API key configured", err)
	}
	provider, err := registry.Get(cfg.Provider, apiKey, cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, NewLLMError(ErrorTypeProvider, "failed to construct provider", err)
	}
	provider.SetLogger(logger)
	return &Client{
		provider:   provider,
		model:      cfg.Model,
		logger:     logger,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// NewClientWithProvider wraps an already-constructed provider. Used by tests
// and by callers that manage provider lifecycles themselves.
func NewClientWithProvider(provider providers.Provider, model string, logger utils.Logger) *Client {
	if logger == nil {
		logger = utils.NewLogger(utils.LogLevelWarn)
	}
	provider.SetLogger(logger)
	return &Client{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) GetLogger() utils.Logger {
	return c.logger
}

// SetRetries configures the retry budget and the delay between attempts.
func (c *Client) SetRetries(maxRetries int, delay time.Duration) {
	c.maxRetries = maxRetries
	c.retryDelay = delay
}

// Generate performs a completion with per-attempt timeouts. When the target
// provider lacks native JSON mode and the request carries a schema, the
// schema is folded into the prompt instead.
func (c *Client) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return nil, NewLLMError(ErrorTypeInvalidInput, "prompt is empty", nil)
	}

	call := *req
	if call.Model == "" {
		call.Model = c.model
	}
	if call.JSONMode && call.Schema != nil && !c.provider.SupportsJSONMode() {
		call.Prompt = promptWithSchema(call.Prompt, call.Schema, c.logger)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		c.logger.Debug("generating completion",
			"provider", c.provider.Name(), "model", call.Model, "attempt", attempt+1)

		resp, err := c.attemptGenerate(ctx, &call)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		c.logger.Warn("generation attempt failed", "error", err, "attempt", attempt+1)

		if attempt < c.maxRetries {
			c.logger.Debug("retrying", "delay", c.retryDelay)
			if err := c.wait(ctx); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("failed to generate after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.retryDelay):
		return nil
	}
}

func (c *Client) attemptGenerate(ctx context.Context, req *Request) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return nil, c.classify(err)
	}
	return resp, nil
}

// classify maps provider failures onto the package error taxonomy.
func (c *Client) classify(err error) error {
	var llmErr *LLMError
	if errors.As(err, &llmErr) {
		return err
	}
	var apiErr *providers.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403:
			return NewLLMError(ErrorTypeAuthentication, "authentication failed", err)
		case 429:
			return NewLLMError(ErrorTypeRateLimit, "rate limit exceeded", err)
		default:
			return NewLLMError(ErrorTypeAPI, "provider API error", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewLLMError(ErrorTypeRequest, "request cancelled or timed out", err)
	}
	return NewLLMError(ErrorTypeRequest, "provider call failed", err)
}
