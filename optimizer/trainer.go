// Package optimizer implements automatic prompt optimization: a
// hill-climbing search over prompt text driven by LLM-written critiques and
// deterministic reward graders. A beam-search variant is available for
// wider exploration.
package optimizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/internal/cache"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/internal/platform"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// Trainer runs the hill-climbing optimization loop for one agent.
//
// Each round evaluates the current prompt on a fixed batch, folds any
// improvement into the best-ever pair, generates a critique, rewrites the
// prompt, and promotes the rewrite only when it strictly beats the current
// prompt on the same batch. Round-level failures abort only that round's
// improvement attempt.
type Trainer struct {
	cfg       *config.Config
	agent     Agent
	model     llm.LLM
	evaluator *Evaluator
	engine    *GradientEngine
	debug     *utils.DebugManager
	logger    utils.Logger
	runID     string
	initial   string
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithInitialPrompt starts optimization from a prompt other than the agent's
// baseline, e.g. to resume from a previously optimized artifact.
func WithInitialPrompt(prompt string) TrainerOption {
	return func(t *Trainer) { t.initial = prompt }
}

// WithDebugManager captures per-round prompts, gradients, and diagnostics.
func WithDebugManager(debug *utils.DebugManager) TrainerOption {
	return func(t *Trainer) { t.debug = debug }
}

// NewTrainer wires the rollout, evaluator, gradient engine, and guardrail
// cache for one agent. The cache lives for the trainer's lifetime, one per
// training process.
func NewTrainer(model llm.LLM, agent Agent, cfg *config.Config, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		cfg:     cfg,
		agent:   agent,
		model:   model,
		logger:  model.GetLogger(),
		runID:   uuid.NewString(),
		initial: agent.Baseline,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.debug == nil {
		t.debug = utils.NewDebugManager(utils.DebugOptions{}, t.logger)
	}

	guard := cache.New[*schema.SafetyOutput](cfg.GuardrailCacheSize, cfg.GuardrailCacheTTL)
	rollout := agent.NewRollout(model, guard)

	evalOpts := []EvaluatorOption{WithWorkers(cfg.Workers), WithLogger(t.logger)}
	if cfg.RequestsPerSecond > 0 {
		evalOpts = append(evalOpts, WithLimiter(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)))
	}
	t.evaluator = NewEvaluator(rollout, evalOpts...)
	t.engine = NewGradientEngine(model, agent, cfg, t.debug)
	return t
}

// RunID identifies this trainer's run in artifacts and reports.
func (t *Trainer) RunID() string {
	return t.runID
}

// Train executes the configured number of optimization rounds over the
// training samples and persists the best-ever prompt. The round batch is the
// leading SamplesPerRound samples, fixed across rounds so reward comparisons
// stay apples-to-apples.
func (t *Trainer) Train(ctx context.Context, samples []dataset.Sample) (*TrainResult, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("agent %s: no training samples", t.agent.Name)
	}

	batch := samples
	if len(batch) > t.cfg.SamplesPerRound {
		batch = batch[:t.cfg.SamplesPerRound]
	}

	result := &TrainResult{
		RunID:      t.runID,
		Agent:      t.agent.Name,
		Model:      t.model.Model(),
		PromptPath: t.promptPath(),
		StartedAt:  time.Now(),
	}

	current := t.initial
	best := current
	bestReward := 0.0

	t.logger.Info("training started",
		"agent", t.agent.Name, "run_id", t.runID,
		"rounds", t.cfg.Rounds, "batch_size", len(batch))

	for round := 1; round <= t.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			t.finish(result, best, bestReward)
			return result, fmt.Errorf("training interrupted at round %d: %w", round, err)
		}

		report := RoundReport{Round: round}

		evaluation := t.evaluator.Evaluate(ctx, current, batch)
		report.CurrentReward = evaluation.MeanReward
		t.logger.Info("current prompt evaluated",
			"agent", t.agent.Name, "round", round, "mean_reward", evaluation.MeanReward)
		t.debug.SaveRound(t.agent.Name, round, evaluation.Samples)

		if evaluation.MeanReward > bestReward {
			bestReward = evaluation.MeanReward
			best = current
			t.logger.Info("new best reward", "agent", t.agent.Name, "best_reward", bestReward)
			if err := t.saveBest(best); err != nil {
				t.logger.Warn("failed to persist best prompt", "error", err)
			}
		}
		report.BestReward = bestReward

		gradient, err := t.engine.Generate(ctx, current, evaluation)
		if err != nil {
			report.Err = err.Error()
			result.Rounds = append(result.Rounds, report)
			t.logger.Warn("round improvement aborted",
				"agent", t.agent.Name, "round", round, "error", err)
			continue
		}

		candidate, err := t.engine.Apply(ctx, current, gradient)
		if err != nil {
			report.Err = err.Error()
			result.Rounds = append(result.Rounds, report)
			t.logger.Warn("round improvement aborted",
				"agent", t.agent.Name, "round", round, "error", err)
			continue
		}
		if tokens, err := llm.CountTokens(t.model.Model(), candidate); err == nil {
			report.CandidateTokens = tokens
		}

		candEval := t.evaluator.Evaluate(ctx, candidate, batch)
		report.CandidateReward = candEval.MeanReward

		if candEval.MeanReward > evaluation.MeanReward {
			report.Promoted = true
			current = candidate
			t.logger.Info("candidate promoted",
				"agent", t.agent.Name, "round", round,
				"improvement", candEval.MeanReward-evaluation.MeanReward)
		} else {
			t.logger.Info("candidate rejected, keeping current prompt",
				"agent", t.agent.Name, "round", round,
				"candidate_reward", candEval.MeanReward)
		}

		result.Rounds = append(result.Rounds, report)
	}

	t.finish(result, best, bestReward)
	if err := t.saveBest(best); err != nil {
		return result, err
	}

	t.logger.Info("training complete",
		"agent", t.agent.Name, "best_reward", bestReward, "prompt_path", result.PromptPath)
	return result, nil
}

func (t *Trainer) finish(result *TrainResult, best string, bestReward float64) {
	result.BestPrompt = best
	result.BestReward = bestReward
	result.FinishedAt = time.Now()
}

func (t *Trainer) promptPath() string {
	return filepath.Join(t.cfg.OutputDir, t.agent.Name+"_optimized_prompt.txt")
}

// saveBest writes the best prompt artifact under an advisory lock, so a
// concurrently launched run for the same agent cannot interleave writes.
func (t *Trainer) saveBest(prompt string) error {
	if err := os.MkdirAll(t.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := t.promptPath()
	lock := platform.NewFileLock(path + ".lock")
	if err := lock.Lock(); err != nil {
		t.logger.Warn("writing prompt without lock", "error", err)
	} else {
		defer lock.Unlock()
	}

	if err := os.WriteFile(path, []byte(prompt), 0o644); err != nil {
		return fmt.Errorf("write optimized prompt: %w", err)
	}
	return nil
}
