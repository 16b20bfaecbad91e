package optimizer

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// previewRunes bounds the sample text echoed into diagnostics and gradient
// prompts.
const previewRunes = 100

// Evaluator scores a prompt template over a sample batch.
type Evaluator struct {
	rollout RolloutFunc
	workers int
	limiter *rate.Limiter
	logger  utils.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithWorkers enables bounded parallel rollouts. Values below 2 keep the
// evaluator sequential.
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) { e.workers = n }
}

// WithLimiter paces rollout starts across workers.
func WithLimiter(limiter *rate.Limiter) EvaluatorOption {
	return func(e *Evaluator) { e.limiter = limiter }
}

// WithLogger sets the evaluator's logger.
func WithLogger(logger utils.Logger) EvaluatorOption {
	return func(e *Evaluator) { e.logger = logger }
}

// NewEvaluator builds an evaluator around a rollout.
func NewEvaluator(rollout RolloutFunc, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		rollout: rollout,
		workers: 1,
		logger:  utils.NewLogger(utils.LogLevelWarn),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs every sample through the rollout under the given prompt and
// returns the mean reward with ordered per-sample diagnostics. The empty
// batch evaluates to zero.
func (e *Evaluator) Evaluate(ctx context.Context, prompt string, samples []dataset.Sample) Evaluation {
	diags := make([]SampleEval, len(samples))
	if len(samples) == 0 {
		return Evaluation{MeanReward: 0, Samples: diags}
	}

	if e.workers > 1 {
		e.evaluateParallel(ctx, prompt, samples, diags)
	} else {
		for i, sample := range samples {
			diags[i] = e.evaluateOne(ctx, prompt, sample)
		}
	}

	total := 0.0
	for _, d := range diags {
		total += d.Reward
	}
	return Evaluation{MeanReward: total / float64(len(samples)), Samples: diags}
}

// evaluateParallel fans samples out over a bounded worker pool. Results land
// at their sample's index, so diagnostic order matches batch order no matter
// which rollout finishes first.
func (e *Evaluator) evaluateParallel(ctx context.Context, prompt string, samples []dataset.Sample, diags []SampleEval) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)

	for i, sample := range samples {
		wg.Add(1)
		go func(i int, sample dataset.Sample) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			diags[i] = e.evaluateOne(ctx, prompt, sample)
		}(i, sample)
	}
	wg.Wait()
}

func (e *Evaluator) evaluateOne(ctx context.Context, prompt string, sample dataset.Sample) SampleEval {
	input := sample.Input()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			e.logger.Warn("rate limiter interrupted", "sample", sample.ID, "error", err)
			return SampleEval{Input: preview(input), Reward: 0, OutputStatus: string(schema.StatusFailed)}
		}
	}

	result := e.rollout(ctx, prompt, sample)
	e.logger.Debug("sample evaluated",
		"sample", sample.ID, "reward", result.Reward, "status", result.Status)

	return SampleEval{
		Input:        preview(input),
		Reward:       result.Reward,
		OutputStatus: result.Status,
	}
}

func preview(input string) string {
	runes := []rune(input)
	if len(runes) > previewRunes {
		runes = runes[:previewRunes]
	}
	return string(runes) + "..."
}
