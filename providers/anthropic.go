package providers

import (
	"context"
	"errors"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// Claude models reject requests without a positive max_tokens.
const anthropicDefaultMaxTokens = 1024

// Anthropic talks to the Claude Messages API. It has no native JSON response
// mode, so structured callers rely on the schema-in-prompt fallback.
type Anthropic struct {
	client *anthropic.Client
	model  string
	logger utils.Logger
}

// NewAnthropic creates an Anthropic provider with the given default model.
func NewAnthropic(apiKey, model, baseURL string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	opts := make([]anthropic.ClientOption, 0, 1)
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &Anthropic{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
		logger: utils.NewLogger(utils.LogLevelWarn),
	}, nil
}

func (p *Anthropic) Name() string {
	return "anthropic"
}

func (p *Anthropic) SupportsJSONMode() bool {
	return false
}

func (p *Anthropic) SetLogger(logger utils.Logger) {
	p.logger = logger
}

// Complete performs one messages call.
func (p *Anthropic) Complete(ctx context.Context, req *Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	msgReq := anthropic.MessagesRequest{
		Model:     anthropic.Model(model),
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(req.Prompt)},
		MaxTokens: maxTokens,
	}
	if req.System != "" {
		msgReq.System = req.System
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		msgReq.Temperature = &temp
	}

	p.logger.Debug("anthropic request", "model", model, "max_tokens", maxTokens)

	resp, err := p.client.CreateMessages(ctx, msgReq)
	if err != nil {
		return nil, p.wrapError(err)
	}

	p.logger.Debug("anthropic response", "model", string(resp.Model),
		"input_tokens", resp.Usage.InputTokens, "output_tokens", resp.Usage.OutputTokens)

	return &Response{
		Content: resp.GetFirstContentText(),
		Model:   string(resp.Model),
		Usage: Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

func (p *Anthropic) wrapError(err error) error {
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{
			Provider:   p.Name(),
			StatusCode: reqErr.StatusCode,
			Message:    reqErr.Error(),
			Err:        err,
		}
	}
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		status := 500
		switch {
		case apiErr.IsAuthenticationErr():
			status = 401
		case apiErr.IsRateLimitErr():
			status = 429
		case apiErr.IsInvalidRequestErr():
			status = 400
		}
		return &APIError{
			Provider:   p.Name(),
			StatusCode: status,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return fmt.Errorf("anthropic: create messages: %w", err)
}
