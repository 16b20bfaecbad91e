package providers

import (
	"context"
	"errors"
	"sync"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// ErrMockExhausted is returned when the scripted response queue runs dry and
// no default response is configured.
var ErrMockExhausted = errors.New("mock: response queue exhausted")

type mockCall struct {
	content string
	err     error
}

// MockProvider is an in-memory Provider used by tests and dry runs. Responses
// are scripted in order; every request is recorded for later assertions.
type MockProvider struct {
	mu       sync.Mutex
	model    string
	queue    []mockCall
	index    int
	loop     bool
	fallback string
	hasFall  bool
	jsonMode bool
	requests []Request
	logger   utils.Logger
}

// NewMockProvider creates a mock with native JSON mode enabled.
func NewMockProvider(model string) *MockProvider {
	return &MockProvider{
		model:    model,
		jsonMode: true,
		logger:   utils.NewLogger(utils.LogLevelOff),
	}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) SupportsJSONMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jsonMode
}

func (p *MockProvider) SetLogger(logger utils.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = logger
}

// SetJSONMode toggles whether the mock claims native JSON support.
func (p *MockProvider) SetJSONMode(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jsonMode = enabled
}

// Enqueue appends successful responses to the script.
func (p *MockProvider) Enqueue(contents ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range contents {
		p.queue = append(p.queue, mockCall{content: c})
	}
}

// EnqueueError appends a failing call to the script.
func (p *MockProvider) EnqueueError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, mockCall{err: err})
}

// SetLoop makes the script repeat from the start once exhausted.
func (p *MockProvider) SetLoop(loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = loop
}

// SetDefaultResponse sets the content returned once the script is exhausted.
func (p *MockProvider) SetDefaultResponse(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fallback = content
	p.hasFall = true
}

// Requests returns a copy of every request seen so far, in order.
func (p *MockProvider) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// CallCount reports how many completions have been requested.
func (p *MockProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// Reset clears the script and the recorded requests.
func (p *MockProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = nil
	p.index = 0
	p.requests = nil
	p.fallback = ""
	p.hasFall = false
}

// Complete pops the next scripted call.
func (p *MockProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, *req)

	if p.index >= len(p.queue) && p.loop && len(p.queue) > 0 {
		p.index = 0
	}
	if p.index >= len(p.queue) {
		if p.hasFall {
			return p.response(req, p.fallback), nil
		}
		return nil, ErrMockExhausted
	}

	call := p.queue[p.index]
	p.index++
	if call.err != nil {
		return nil, call.err
	}
	return p.response(req, call.content), nil
}

func (p *MockProvider) response(req *Request, content string) *Response {
	model := req.Model
	if model == "" {
		model = p.model
	}
	// Usage is approximated from text length.
	promptTokens := len(req.Prompt) / 4
	completionTokens := len(content) / 4
	return &Response{
		Content: content,
		Model:   model,
		Usage: Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}
}
