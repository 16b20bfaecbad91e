package optimizer

import (
	"context"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/grading"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/internal/cache"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/prompts"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// statusBlocked marks workflow rollouts stopped by the safety guardrail
// before the discharge step ran.
const statusBlocked = "blocked"

// The workflow's discharge step uses a shorter system prompt than the
// standalone agent, matching the production pipeline it was lifted from.
var workflowDischargeInvoke = invokeSettings{
	system:      jsonOnlySystem,
	temperature: dischargeInvoke.temperature,
	maxTokens:   dischargeInvoke.maxTokens,
	schema:      dischargeInvoke.schema,
}

// RolloutFunc runs one sample through an agent under the given prompt
// template and returns its graded result. Implementations never return
// errors: invocation failures are folded into the reward.
type RolloutFunc func(ctx context.Context, prompt string, sample dataset.Sample) RolloutResult

// DischargeRollout builds the rollout for the discharge simplifier agent.
func DischargeRollout(model llm.LLM) RolloutFunc {
	return func(ctx context.Context, prompt string, sample dataset.Sample) RolloutResult {
		input := sample.Input()
		filled := prompts.Fill(prompt, prompts.PlaceholderInputText, input)

		out := InvokeDischarge(ctx, model, filled)
		return RolloutResult{
			Input:  input,
			Reward: grading.GradeDischargeSimplification(out, sample.ExpectedOutput),
			Status: string(out.Status),
		}
	}
}

// EducationRollout builds the rollout for the patient education agent.
func EducationRollout(model llm.LLM) RolloutFunc {
	return func(ctx context.Context, prompt string, sample dataset.Sample) RolloutResult {
		input := sample.Input()
		filled := prompts.Fill(prompt, prompts.PlaceholderContext, input)

		out, err := InvokeEducation(ctx, model, filled)
		status := schema.StatusSuccess
		if err != nil {
			status = schema.StatusFailed
		}
		return RolloutResult{
			Input:  input,
			Reward: grading.GradePatientEducation(out, input),
			Status: string(status),
			Err:    err,
		}
	}
}

// SafetyRollout builds the rollout for the standalone safety guardrail
// agent. It is exported for library use; the training CLI exercises the
// guardrail through the workflow agent instead.
func SafetyRollout(model llm.LLM) RolloutFunc {
	return func(ctx context.Context, prompt string, sample dataset.Sample) RolloutResult {
		input := sample.Input()
		filled := prompts.Fill(prompt, prompts.PlaceholderInput, input)

		out, err := InvokeSafety(ctx, model, filled)
		status := schema.StatusSuccess
		if err != nil {
			status = schema.StatusFailed
		}
		return RolloutResult{
			Input:  input,
			Reward: grading.GradeSafetyCheck(out, sample.ExpectedSafe),
			Status: string(status),
			Err:    err,
		}
	}
}

// WorkflowRollout builds the two-step pipeline rollout: a fixed safety
// guardrail screens the document, then the optimizable discharge prompt
// runs. The final reward weighs the guardrail at 20% and the discharge
// grade at 80%. An unsafe classification short-circuits with a minimal
// reward for the correct rejection.
//
// Guardrail verdicts are memoized in guard keyed by document text. The
// guardrail prompt is fixed for the whole run, so cached verdicts cannot
// distort comparisons between candidate prompts.
func WorkflowRollout(model llm.LLM, guard *cache.Cache[*schema.SafetyOutput]) RolloutFunc {
	return func(ctx context.Context, prompt string, sample dataset.Sample) RolloutResult {
		input := sample.Input()

		verdict := classifyDocument(ctx, model, guard, input)
		safetyReward := grading.GradeSafetyCheck(verdict, nil)

		if !verdict.Safe() {
			model.GetLogger().Info("document blocked by safety check", "reason", verdict.Reason)
			return RolloutResult{Input: input, Reward: 0.1, Status: statusBlocked}
		}

		filled := prompts.Fill(prompt, prompts.PlaceholderInputText, input)
		out := invokeDischarge(ctx, model, filled, workflowDischargeInvoke)
		mainReward := grading.GradeDischargeSimplification(out, sample.ExpectedOutput)

		return RolloutResult{
			Input:  input,
			Reward: safetyReward*0.2 + mainReward*0.8,
			Status: string(out.Status),
		}
	}
}

// classifyDocument runs the fixed guardrail prompt over a document,
// consulting the cache first. Classification failures fail open.
func classifyDocument(ctx context.Context, model llm.LLM, guard *cache.Cache[*schema.SafetyOutput], text string) *schema.SafetyOutput {
	if guard != nil {
		if verdict, ok := guard.Get(text); ok {
			return verdict
		}
	}

	filled := prompts.Fill(prompts.SafetyGuardrail, prompts.PlaceholderInput, text)
	verdict := &schema.SafetyOutput{}
	err := invokeJSON(ctx, model, filled, invokeSettings{
		temperature: safetyInvoke.temperature,
		maxTokens:   safetyInvoke.maxTokens,
		schema:      safetyInvoke.schema,
	}, verdict)
	if err != nil {
		verdict = &schema.SafetyOutput{IsSafe: schema.Bool(true), Reason: "Parse error"}
	}

	if guard != nil {
		guard.Set(text, verdict)
	}
	return verdict
}
