package optimizer

import "time"

// RolloutResult is the outcome of running one sample through an agent.
type RolloutResult struct {
	// Input is the raw sample text fed into the prompt template.
	Input string

	// Reward is the graded score in [0, 1].
	Reward float64

	// Status mirrors the agent output status ("success" or "failed").
	Status string

	// Err carries the underlying invocation failure, if any. It is
	// diagnostic only: failed rollouts still score, they just score low.
	Err error
}

// SampleEval is the per-sample diagnostic record embedded in gradient
// prompts and debug artifacts.
type SampleEval struct {
	Input        string  `json:"input"`
	Reward       float64 `json:"reward"`
	OutputStatus string  `json:"output_status"`
}

// Evaluation aggregates a prompt's performance over a batch.
type Evaluation struct {
	MeanReward float64
	Samples    []SampleEval
}

// RoundReport records what happened in one optimization round.
type RoundReport struct {
	Round           int     `json:"round"`
	CurrentReward   float64 `json:"current_reward"`
	CandidateReward float64 `json:"candidate_reward"`
	Promoted        bool    `json:"promoted"`
	BestReward      float64 `json:"best_reward"`
	CandidateTokens int     `json:"candidate_tokens,omitempty"`
	Err             string  `json:"error,omitempty"`
}

// TrainResult is the terminal state of a training run.
type TrainResult struct {
	RunID      string        `json:"run_id"`
	Agent      string        `json:"agent"`
	BestPrompt string        `json:"-"`
	BestReward float64       `json:"best_reward"`
	Rounds     []RoundReport `json:"rounds"`
	PromptPath string        `json:"prompt_path"`
	Model      string        `json:"model"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}
