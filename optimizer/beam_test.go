package optimizer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/providers"
)

func testBeamConfig(t *testing.T, width, branch, rounds int) *config.Config {
	t.Helper()
	cfg := config.NewConfig(
		config.SetProvider("mock"),
		config.SetOutputDir(t.TempDir()),
	)
	cfg.BeamWidth = width
	cfg.BranchFactor = branch
	cfg.BeamRounds = rounds
	cfg.GradientBatchSize = 1
	cfg.ValBatchSize = 1
	return cfg
}

func TestBeamTrainerPromotesCandidate(t *testing.T) {
	mock := providers.NewMockProvider("gpt-4o-mini")
	mock.Enqueue(
		weakDischargeJSON,           // parent scored on the gradient batch
		"critique",                  // parent critique
		"CANDIDATE V2 {input_text}", // branch rewrite
		weakDischargeJSON,           // parent scored on the validation batch
		perfectDischargeJSON,        // candidate scored on the validation batch
	)

	cfg := testBeamConfig(t, 2, 1, 1)
	beam := NewBeamTrainer(mockClient(mock), dischargeAgent(t), cfg)

	result, err := beam.Train(context.Background(),
		[]dataset.Sample{noteSample("chf_case", "Patient note.")}, nil)
	require.NoError(t, err)
	require.Len(t, result.Rounds, 1)

	round := result.Rounds[0]
	assert.InDelta(t, 0.46, round.CurrentReward, 1e-9)
	assert.InDelta(t, 1.0, round.CandidateReward, 1e-9)
	assert.True(t, round.Promoted)
	assert.InDelta(t, 1.0, round.BestReward, 1e-9)

	assert.Equal(t, "CANDIDATE V2 {input_text}", result.BestPrompt)
	assert.InDelta(t, 1.0, result.BestReward, 1e-9)
	assert.Equal(t, 5, mock.CallCount())

	saved, err := os.ReadFile(result.PromptPath)
	require.NoError(t, err)
	assert.Equal(t, "CANDIDATE V2 {input_text}", string(saved))
}

func TestBeamWidthBoundsSurvivors(t *testing.T) {
	// With width 1 and branch 1, every round costs exactly five calls:
	// gradient-batch evaluation, critique, rewrite, and two validation
	// scores. A leaked survivor would show up as extra calls in round two.
	mock := providers.NewMockProvider("gpt-4o-mini")
	mock.Enqueue(
		weakDischargeJSON, "critique 1", "C1 {input_text}", weakDischargeJSON, perfectDischargeJSON,
		perfectDischargeJSON, "critique 2", "C2 {input_text}", perfectDischargeJSON, weakDischargeJSON,
	)

	cfg := testBeamConfig(t, 1, 1, 2)
	beam := NewBeamTrainer(mockClient(mock), dischargeAgent(t), cfg)

	result, err := beam.Train(context.Background(),
		[]dataset.Sample{noteSample("chf_case", "Patient note.")}, nil)
	require.NoError(t, err)
	require.Len(t, result.Rounds, 2)
	assert.Equal(t, 10, mock.CallCount())

	assert.True(t, result.Rounds[0].Promoted)
	assert.False(t, result.Rounds[1].Promoted, "the incumbent stayed on top")

	// Best-ever never decreases.
	assert.InDelta(t, 1.0, result.Rounds[0].BestReward, 1e-9)
	assert.InDelta(t, 1.0, result.Rounds[1].BestReward, 1e-9)
	assert.Equal(t, "C1 {input_text}", result.BestPrompt)
}

func TestBeamDeduplicatesBranches(t *testing.T) {
	mock := providers.NewMockProvider("gpt-4o-mini")
	mock.Enqueue(
		weakDischargeJSON,
		"critique",
		"C1 {input_text}", "C1 {input_text}", // both branches produce the same rewrite
		weakDischargeJSON,    // parent validation score
		perfectDischargeJSON, // the single surviving candidate's score
	)

	cfg := testBeamConfig(t, 4, 2, 1)
	beam := NewBeamTrainer(mockClient(mock), dischargeAgent(t), cfg)

	result, err := beam.Train(context.Background(),
		[]dataset.Sample{noteSample("chf_case", "Patient note.")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, mock.CallCount(), "duplicate rewrites are scored once")
	assert.Equal(t, "C1 {input_text}", result.BestPrompt)
}

func TestBeamRoundWithoutCandidatesStillScoresParents(t *testing.T) {
	mock := providers.NewMockProvider("gpt-4o-mini")
	mock.Enqueue(weakDischargeJSON)
	mock.EnqueueError(errors.New("boom"))
	mock.Enqueue(weakDischargeJSON)

	cfg := testBeamConfig(t, 1, 1, 1)
	agent := dischargeAgent(t)
	beam := NewBeamTrainer(mockClient(mock), agent, cfg)

	result, err := beam.Train(context.Background(),
		[]dataset.Sample{noteSample("chf_case", "Patient note.")}, nil)
	require.NoError(t, err)
	require.Len(t, result.Rounds, 1)

	assert.Equal(t, "no candidates produced", result.Rounds[0].Err)
	assert.Equal(t, 3, mock.CallCount())
	assert.InDelta(t, 0.46, result.BestReward, 1e-9)
	assert.Equal(t, agent.Baseline, result.BestPrompt)
}

func TestBeamNoSamples(t *testing.T) {
	mock := providers.NewMockProvider("gpt-4o-mini")
	beam := NewBeamTrainer(mockClient(mock), dischargeAgent(t), testBeamConfig(t, 1, 1, 1))

	_, err := beam.Train(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no training samples")
}
