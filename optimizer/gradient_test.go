package optimizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/providers"
)

func newTestEngine(t *testing.T, mock *providers.MockProvider, cfg *config.Config) *GradientEngine {
	t.Helper()
	agent, err := AgentByName("discharge")
	require.NoError(t, err)
	if cfg == nil {
		cfg = config.NewConfig(config.SetProvider("mock"))
	}
	return NewGradientEngine(mockClient(mock), agent, cfg, nil)
}

func TestGradientGenerate(t *testing.T) {
	mock := providers.NewMockProvider("gpt-4o-mini")
	mock.Enqueue("The prompt never names the target reading level.")
	engine := newTestEngine(t, mock, nil)

	eval := Evaluation{
		MeanReward: 0.46,
		Samples: []SampleEval{
			{Input: "Patient admitted with acute CHF...", Reward: 0.46, OutputStatus: "success"},
		},
	}

	gradient, err := engine.Generate(context.Background(), "BASE PROMPT {input_text}", eval)
	require.NoError(t, err)
	assert.Equal(t, "The prompt never names the target reading level.", gradient)

	req := mock.Requests()[0]
	assert.Contains(t, req.Prompt, "You are an expert at optimizing prompts for medical AI systems.")
	assert.Contains(t, req.Prompt, "CURRENT PROMPT:\nBASE PROMPT {input_text}")
	assert.Contains(t, req.Prompt, "EVALUATION RESULTS:")
	assert.Contains(t, req.Prompt, `"output_status": "success"`)
	assert.Contains(t, req.Prompt, "The average reward score is 0.460 (target: 0.8+)")
	assert.Contains(t, req.Prompt, "- Readability (0-0.3): Output should be at 6th-8th grade reading level")
	assert.Contains(t, req.Prompt, "Be specific and actionable. Your analysis will be used to improve the prompt.")

	assert.Empty(t, req.System)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, 1000, req.MaxTokens)
	assert.False(t, req.JSONMode)
}

func TestGradientApply(t *testing.T) {
	t.Run("KeepsRewriteVerbatim", func(t *testing.T) {
		mock := providers.NewMockProvider("gpt-4o-mini")
		mock.Enqueue("\nREWRITTEN PROMPT with {input_text}\n")
		engine := newTestEngine(t, mock, nil)

		candidate, err := engine.Apply(context.Background(), "BASE {input_text}", "Add grade-level targets")
		require.NoError(t, err)
		assert.Equal(t, "\nREWRITTEN PROMPT with {input_text}\n", candidate,
			"the rewrite is used exactly as produced")

		req := mock.Requests()[0]
		assert.Contains(t, req.Prompt, "You are an expert at rewriting prompts for medical AI systems.")
		assert.Contains(t, req.Prompt, "CURRENT PROMPT:\nBASE {input_text}")
		assert.Contains(t, req.Prompt, "IMPROVEMENT SUGGESTIONS:\nAdd grade-level targets")
		assert.Contains(t, req.Prompt, "Output ONLY the improved prompt, nothing else.")
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		assert.Equal(t, 3000, req.MaxTokens)
	})

	t.Run("RejectsRewriteMissingPlaceholder", func(t *testing.T) {
		mock := providers.NewMockProvider("gpt-4o-mini")
		mock.Enqueue("a confident rewrite that dropped the input slot entirely")
		engine := newTestEngine(t, mock, nil)

		candidate, err := engine.Apply(context.Background(), "BASE {input_text}", "critique")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPlaceholderLost))
		assert.Contains(t, err.Error(), "{input_text}")
		assert.Empty(t, candidate)
	})

	t.Run("WrapsProviderFailure", func(t *testing.T) {
		mock := providers.NewMockProvider("gpt-4o-mini")
		mock.EnqueueError(errors.New("boom"))
		engine := newTestEngine(t, mock, nil)

		_, err := engine.Apply(context.Background(), "BASE {input_text}", "critique")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apply gradient")
	})
}

func TestGradientModelOverrides(t *testing.T) {
	cfg := config.NewConfig(config.SetProvider("mock"))
	cfg.GradientModel = "gpt-4o"
	cfg.ApplyModel = "gpt-4o-mini-batch"

	mock := providers.NewMockProvider("gpt-4o-mini")
	mock.Enqueue("critique", "rewrite {input_text}")
	engine := newTestEngine(t, mock, cfg)

	_, err := engine.Generate(context.Background(), "BASE {input_text}", Evaluation{})
	require.NoError(t, err)
	_, err = engine.Apply(context.Background(), "BASE {input_text}", "critique")
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "gpt-4o", reqs[0].Model)
	assert.Equal(t, "gpt-4o-mini-batch", reqs[1].Model)
}
