package providers

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// OpenAI talks to the OpenAI chat completions API, or any compatible
// endpoint when a base URL override is configured.
type OpenAI struct {
	client *openai.Client
	model  string
	logger utils.Logger
}

// NewOpenAI creates an OpenAI provider with the given default model.
func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: utils.NewLogger(utils.LogLevelWarn),
	}, nil
}

func (p *OpenAI) Name() string {
	return "openai"
}

func (p *OpenAI) SupportsJSONMode() bool {
	return true
}

func (p *OpenAI) SetLogger(logger utils.Logger) {
	p.logger = logger
}

// Complete performs one chat completion.
func (p *OpenAI) Complete(ctx context.Context, req *Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	p.logger.Debug("openai request", "model", model, "max_tokens", req.MaxTokens, "json_mode", req.JSONMode)

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &APIError{
				Provider:   p.Name(),
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
				Err:        err,
			}
		}
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: response contained no choices")
	}

	p.logger.Debug("openai response", "model", resp.Model, "total_tokens", resp.Usage.TotalTokens)

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
