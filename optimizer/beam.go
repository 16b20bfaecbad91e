package optimizer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
)

// BeamTrainer explores several prompt rewrites per round instead of one.
// Each surviving prompt is critiqued on a small gradient batch and branched
// into BranchFactor rewrites; the pooled parents and children are then
// scored on a validation batch and the top BeamWidth survive.
type BeamTrainer struct {
	*Trainer
}

type scoredPrompt struct {
	prompt string
	reward float64
}

// NewBeamTrainer wires a beam searcher with the same collaborators as the
// hill-climbing trainer.
func NewBeamTrainer(model llm.LLM, agent Agent, cfg *config.Config, opts ...TrainerOption) *BeamTrainer {
	return &BeamTrainer{Trainer: NewTrainer(model, agent, cfg, opts...)}
}

// Train runs BeamRounds rounds of beam search. Critiques are computed on the
// leading GradientBatchSize training samples; survivor selection uses the
// leading ValBatchSize validation samples, falling back to the gradient
// batch when no validation split exists.
func (bt *BeamTrainer) Train(ctx context.Context, train, val []dataset.Sample) (*TrainResult, error) {
	if len(train) == 0 {
		return nil, fmt.Errorf("agent %s: no training samples", bt.agent.Name)
	}

	gradBatch := clampBatch(train, bt.cfg.GradientBatchSize)
	valBatch := clampBatch(val, bt.cfg.ValBatchSize)
	if len(valBatch) == 0 {
		valBatch = gradBatch
	}

	result := &TrainResult{
		RunID:      bt.runID,
		Agent:      bt.agent.Name,
		Model:      bt.model.Model(),
		PromptPath: bt.promptPath(),
		StartedAt:  time.Now(),
	}

	beam := []string{bt.initial}
	best := bt.initial
	bestReward := 0.0

	bt.logger.Info("beam training started",
		"agent", bt.agent.Name, "run_id", bt.runID,
		"rounds", bt.cfg.BeamRounds, "beam_width", bt.cfg.BeamWidth,
		"branch_factor", bt.cfg.BranchFactor,
		"gradient_batch", len(gradBatch), "validation_batch", len(valBatch))

	for round := 1; round <= bt.cfg.BeamRounds; round++ {
		if err := ctx.Err(); err != nil {
			bt.finish(result, best, bestReward)
			return result, fmt.Errorf("training interrupted at round %d: %w", round, err)
		}

		report := RoundReport{Round: round}

		seen := make(map[string]struct{}, len(beam))
		for _, prompt := range beam {
			seen[prompt] = struct{}{}
		}

		var candidates []string
		for _, parent := range beam {
			evaluation := bt.evaluateBounded(ctx, parent, gradBatch)
			gradient, err := bt.engine.Generate(ctx, parent, evaluation)
			if err != nil {
				bt.logger.Warn("parent critique failed",
					"agent", bt.agent.Name, "round", round, "error", err)
				continue
			}

			for branch := 0; branch < bt.cfg.BranchFactor; branch++ {
				candidate, err := bt.engine.Apply(ctx, parent, gradient)
				if err != nil {
					bt.logger.Warn("branch rewrite failed",
						"agent", bt.agent.Name, "round", round, "branch", branch, "error", err)
					continue
				}
				if _, dup := seen[candidate]; dup {
					continue
				}
				seen[candidate] = struct{}{}
				candidates = append(candidates, candidate)
			}
		}
		if len(candidates) == 0 {
			report.Err = "no candidates produced"
			bt.logger.Warn("round produced no candidates", "agent", bt.agent.Name, "round", round)
		}

		pool := make([]scoredPrompt, 0, len(beam)+len(candidates))
		for _, prompt := range beam {
			evaluation := bt.evaluateBounded(ctx, prompt, valBatch)
			pool = append(pool, scoredPrompt{prompt: prompt, reward: evaluation.MeanReward})
		}
		leaderScore := pool[0].reward
		for _, prompt := range candidates {
			evaluation := bt.evaluateBounded(ctx, prompt, valBatch)
			pool = append(pool, scoredPrompt{prompt: prompt, reward: evaluation.MeanReward})
		}

		sort.SliceStable(pool, func(i, j int) bool { return pool[i].reward > pool[j].reward })

		width := bt.cfg.BeamWidth
		if width > len(pool) {
			width = len(pool)
		}
		next := make([]string, 0, width)
		for _, sp := range pool[:width] {
			next = append(next, sp.prompt)
		}

		report.CurrentReward = leaderScore
		report.CandidateReward = pool[0].reward
		report.Promoted = pool[0].prompt != beam[0]
		beam = next

		if pool[0].reward > bestReward {
			bestReward = pool[0].reward
			best = pool[0].prompt
			bt.logger.Info("new best reward", "agent", bt.agent.Name, "best_reward", bestReward)
			if err := bt.saveBest(best); err != nil {
				bt.logger.Warn("failed to persist best prompt", "error", err)
			}
		}
		report.BestReward = bestReward

		if tokens, err := llm.CountTokens(bt.model.Model(), beam[0]); err == nil {
			report.CandidateTokens = tokens
		}

		result.Rounds = append(result.Rounds, report)
		bt.logger.Info("beam round complete",
			"agent", bt.agent.Name, "round", round,
			"pool_size", len(pool), "top_reward", pool[0].reward)
	}

	bt.finish(result, best, bestReward)
	if err := bt.saveBest(best); err != nil {
		return result, err
	}

	bt.logger.Info("beam training complete",
		"agent", bt.agent.Name, "best_reward", bestReward, "prompt_path", result.PromptPath)
	return result, nil
}

// evaluateBounded scores one prompt on a batch under the rollout batch
// timeout, so a wedged provider cannot stall the whole search.
func (bt *BeamTrainer) evaluateBounded(ctx context.Context, prompt string, batch []dataset.Sample) Evaluation {
	if bt.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bt.cfg.BatchTimeout)
		defer cancel()
	}
	return bt.evaluator.Evaluate(ctx, prompt, batch)
}

func clampBatch(samples []dataset.Sample, size int) []dataset.Sample {
	if len(samples) > size {
		return samples[:size]
	}
	return samples
}
