// Package providers implements the LLM backends used by the prompt
// optimization pipeline. Every backend satisfies the Provider interface so
// the rest of the system can swap between OpenAI-compatible endpoints,
// Anthropic, and the in-memory mock used in tests.
package providers

import (
	"context"
	"fmt"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// Request describes a single chat completion. The zero value of Temperature
// leaves the backend's default in place; rollout and gradient callers always
// set it explicitly.
type Request struct {
	// Model overrides the provider's default model for this call.
	Model string
	// System is the system message. Empty means no system message is sent.
	System string
	// Prompt is the user message body.
	Prompt string
	// Temperature controls sampling randomness.
	Temperature float64
	// MaxTokens caps the completion length.
	MaxTokens int
	// JSONMode requests a structured JSON object response.
	JSONMode bool
	// Schema optionally carries a Go value whose reflected JSON schema is
	// appended to the prompt for providers without native JSON mode.
	Schema any
}

// Usage reports token consumption for a completed request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is a completed chat request.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Provider is the interface all LLM backends implement.
type Provider interface {
	// Name returns the registry name of the backend.
	Name() string

	// Complete performs a single chat completion.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// SupportsJSONMode reports whether the backend enforces JSON object
	// responses natively.
	SupportsJSONMode() bool

	// SetLogger installs the logger used for request/response tracing.
	SetLogger(logger utils.Logger)
}

// Constructor builds a Provider from credentials and connection settings.
// baseURL may be empty, in which case the backend's public endpoint is used.
type Constructor func(apiKey, model, baseURL string) (Provider, error)

// APIError is a provider-level failure carrying the upstream HTTP status so
// callers can classify rate limits and authentication problems.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
