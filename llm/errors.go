package llm

import (
	"fmt"
)

// ErrorType classifies an LLM failure.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeProvider
	ErrorTypeRequest
	ErrorTypeResponse
	ErrorTypeAPI
	ErrorTypeRateLimit
	ErrorTypeAuthentication
	ErrorTypeInvalidInput
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeProvider:       "ProviderError",
	ErrorTypeRequest:        "RequestError",
	ErrorTypeResponse:       "ResponseError",
	ErrorTypeAPI:            "APIError",
	ErrorTypeRateLimit:      "RateLimitError",
	ErrorTypeAuthentication: "AuthenticationError",
	ErrorTypeInvalidInput:   "InvalidInputError",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return "UnknownError"
}

// LLMError is the error type surfaced by this package. Rollout callers treat
// these as data (the sample scores zero) rather than aborting a run.
type LLMError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// NewLLMError creates a new LLMError.
func NewLLMError(errType ErrorType, message string, err error) *LLMError {
	return &LLMError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}
