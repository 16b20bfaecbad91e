package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// ErrPlaceholderLost rejects a rewritten prompt that no longer contains the
// agent's input placeholder. Such a prompt would silently produce malformed
// downstream calls, so the candidate is discarded like any other round
// failure.
var ErrPlaceholderLost = errors.New("rewritten prompt lost its input placeholder")

const gradientPromptFormat = `You are an expert at optimizing prompts for medical AI systems.

CURRENT PROMPT:
%s

EVALUATION RESULTS:
%s

The average reward score is %.3f (target: 0.8+)

SCORING CRITERIA:
%s

TASK:
Analyze why the current prompt may not be achieving top scores. Provide:
1. Specific weaknesses in the current prompt
2. Concrete suggestions for improvement
3. Focus on areas with lowest scores

Be specific and actionable. Your analysis will be used to improve the prompt.`

const applyPromptFormat = `You are an expert at rewriting prompts for medical AI systems.

CURRENT PROMPT:
%s

IMPROVEMENT SUGGESTIONS:
%s

TASK:
Rewrite the prompt incorporating the suggested improvements.
Keep the same overall structure and required outputs.
Make specific, targeted changes based on the feedback.

Output ONLY the improved prompt, nothing else.`

// GradientEngine turns evaluation diagnostics into a textual critique and
// applies that critique to produce a rewritten prompt. "Gradient" here is an
// LLM-written analysis, not a numeric derivative.
type GradientEngine struct {
	model               llm.LLM
	gradientModel       string
	applyModel          string
	gradientTemperature float64
	applyTemperature    float64
	placeholder         string
	criteria            string
	debug               *utils.DebugManager
	logger              utils.Logger
}

// NewGradientEngine wires the engine for one agent. A nil debug manager
// disables artifact capture.
func NewGradientEngine(model llm.LLM, agent Agent, cfg *config.Config, debug *utils.DebugManager) *GradientEngine {
	logger := model.GetLogger()
	if debug == nil {
		debug = utils.NewDebugManager(utils.DebugOptions{}, logger)
	}
	return &GradientEngine{
		model:               model,
		gradientModel:       cfg.GradientModelName(),
		applyModel:          cfg.ApplyModelName(),
		gradientTemperature: cfg.GradientTemperature,
		applyTemperature:    cfg.ApplyTemperature,
		placeholder:         agent.Placeholder,
		criteria:            agent.Criteria,
		debug:               debug,
		logger:              logger,
	}
}

// Generate produces the critique of a prompt from its evaluation.
func (e *GradientEngine) Generate(ctx context.Context, prompt string, eval Evaluation) (string, error) {
	diagnostics, err := json.MarshalIndent(eval.Samples, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode evaluation results: %w", err)
	}

	text := fmt.Sprintf(gradientPromptFormat, prompt, diagnostics, eval.MeanReward, e.criteria)
	e.debug.LogPrompt("gradient", text)

	resp, err := e.model.Generate(ctx, &llm.Request{
		Model:       e.gradientModel,
		Prompt:      text,
		Temperature: e.gradientTemperature,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("generate gradient: %w", err)
	}

	e.debug.LogResponse("gradient", resp.Content)
	e.logger.Debug("gradient generated", "chars", len(resp.Content))
	return resp.Content, nil
}

// Apply rewrites the prompt under the critique. The rewritten prompt is
// returned exactly as the model produced it, except that losing the input
// placeholder is a hard failure.
func (e *GradientEngine) Apply(ctx context.Context, prompt, gradient string) (string, error) {
	text := fmt.Sprintf(applyPromptFormat, prompt, gradient)
	e.debug.LogPrompt("apply", text)

	resp, err := e.model.Generate(ctx, &llm.Request{
		Model:       e.applyModel,
		Prompt:      text,
		Temperature: e.applyTemperature,
		MaxTokens:   3000,
	})
	if err != nil {
		return "", fmt.Errorf("apply gradient: %w", err)
	}

	candidate := resp.Content
	if e.placeholder != "" && !strings.Contains(candidate, e.placeholder) {
		return "", fmt.Errorf("%w: %s", ErrPlaceholderLost, e.placeholder)
	}

	e.debug.LogResponse("apply", candidate)
	return candidate, nil
}
