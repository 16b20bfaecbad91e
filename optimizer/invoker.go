package optimizer

import (
	"context"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// System prompts and generation settings per agent, matching the production
// chains these prompts were lifted from.
const (
	dischargeSystem = "You must respond with valid JSON only."
	jsonOnlySystem  = "Respond with valid JSON only."
	safetySystem    = "You are a safety checker. Respond with JSON only."
)

type invokeSettings struct {
	system      string
	temperature float64
	maxTokens   int
	schema      any
}

var (
	dischargeInvoke = invokeSettings{
		system:      dischargeSystem,
		temperature: 0.3,
		maxTokens:   2000,
		schema:      &schema.DischargeOutput{},
	}
	educationInvoke = invokeSettings{
		system:      jsonOnlySystem,
		temperature: 0.5,
		maxTokens:   500,
		schema:      &schema.EducationOutput{},
	}
	safetyInvoke = invokeSettings{
		system:      safetySystem,
		temperature: 0.1,
		maxTokens:   200,
		schema:      &schema.SafetyOutput{},
	}
)

// invokeJSON performs one JSON-mode generation and decodes the reply into
// out. Decoding tolerates per-field type mismatches; anything else is an
// invocation failure for the caller to downgrade.
func invokeJSON(ctx context.Context, model llm.LLM, prompt string, settings invokeSettings, out any) error {
	resp, err := model.Generate(ctx, &llm.Request{
		System:      settings.system,
		Prompt:      prompt,
		Temperature: settings.temperature,
		MaxTokens:   settings.maxTokens,
		JSONMode:    true,
		Schema:      settings.schema,
	})
	if err != nil {
		return err
	}
	raw, err := llm.ExtractJSONObject(resp.Content)
	if err != nil {
		return err
	}
	return llm.DecodeLenient(raw, out)
}

// InvokeDischarge runs the discharge simplifier on a filled prompt. Failures
// never surface as errors: the returned output carries status "failed" and
// the failure text, and the grader scores it zero.
func InvokeDischarge(ctx context.Context, model llm.LLM, prompt string) *schema.DischargeOutput {
	return invokeDischarge(ctx, model, prompt, dischargeInvoke)
}

func invokeDischarge(ctx context.Context, model llm.LLM, prompt string, settings invokeSettings) *schema.DischargeOutput {
	out := &schema.DischargeOutput{}
	if err := invokeJSON(ctx, model, prompt, settings, out); err != nil {
		return &schema.DischargeOutput{Status: schema.StatusFailed, Error: err.Error()}
	}
	out.Status = schema.StatusSuccess
	return out
}

// InvokeEducation runs the patient education agent. On failure it returns
// an output with empty query and tip lists alongside the error, so grading
// proceeds either way.
func InvokeEducation(ctx context.Context, model llm.LLM, prompt string) (*schema.EducationOutput, error) {
	out := &schema.EducationOutput{}
	if err := invokeJSON(ctx, model, prompt, educationInvoke, out); err != nil {
		return &schema.EducationOutput{SearchQueries: []string{}, RecoveryTips: []string{}}, err
	}
	return out, nil
}

// InvokeSafety runs the safety guardrail. On failure it returns a fail-open
// verdict whose reason records the error.
func InvokeSafety(ctx context.Context, model llm.LLM, prompt string) (*schema.SafetyOutput, error) {
	out := &schema.SafetyOutput{}
	if err := invokeJSON(ctx, model, prompt, safetyInvoke, out); err != nil {
		return &schema.SafetyOutput{IsSafe: schema.Bool(true), Reason: "Error: " + err.Error()}, err
	}
	return out, nil
}
