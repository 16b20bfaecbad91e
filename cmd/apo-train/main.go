// Package main provides the apo-train command, which optimizes the discharge
// pipeline's agent prompts against their reward graders.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/config"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/internal/platform"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/optimizer"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// Dry runs shrink the search to one round over two samples so a full
// pipeline pass costs a handful of provider calls.
const (
	dryRunRounds  = 1
	dryRunSamples = 2
)

// cmdFlags holds all command-line flags.
type cmdFlags struct {
	agent       string
	strategy    string
	rounds      int
	samples     int
	datasetPath string
	outputDir   string
	provider    string
	model       string
	apiKey      string
	workers     int
	rps         float64
	dryRun      bool
	debug       bool
	debugLevel  string
}

// parseFlags parses command-line flags.
func parseFlags() *cmdFlags {
	flags := &cmdFlags{}
	flag.StringVar(&flags.agent, "agent", "discharge", "Agent to train (discharge, education, workflow)")
	flag.StringVar(&flags.strategy, "strategy", "hill", "Search strategy (hill, beam)")
	flag.IntVar(&flags.rounds, "rounds", 0, "Optimization rounds (0 = configured default)")
	flag.IntVar(&flags.samples, "samples", 0, "Samples per round (0 = configured default)")
	flag.StringVar(&flags.datasetPath, "dataset", "", "YAML corpus to train on instead of the builtin samples")
	flag.StringVar(&flags.outputDir, "output-dir", "", "Directory for optimized prompts and run reports")
	flag.StringVar(&flags.provider, "provider", "", "LLM provider (openai, anthropic, mock)")
	flag.StringVar(&flags.model, "model", "", "LLM model")
	flag.StringVar(&flags.apiKey, "api-key", "", "API key for the specified provider")
	flag.IntVar(&flags.workers, "workers", 0, "Concurrent rollout workers (0 = configured default)")
	flag.Float64Var(&flags.rps, "rps", 0, "Request rate limit across rollouts (0 = unlimited)")
	flag.BoolVar(&flags.dryRun, "dry-run", false, "Run one round over two samples to smoke-test a provider")
	flag.BoolVar(&flags.debug, "debug", false, "Persist prompts, critiques, and diagnostics under <output-dir>/debug")
	flag.StringVar(&flags.debugLevel, "debug-level", "info", "Log level (debug, info, warn, error, off)")
	flag.Parse()
	return flags
}

func main() {
	flags := parseFlags()

	level, err := getLogLevel(flags.debugLevel)
	if err != nil {
		exitWithError("%v\n", err)
	}
	logger := utils.NewLogger(level)

	cfg, err := buildConfig(flags)
	if err != nil {
		exitWithError("Invalid configuration: %v\n", err)
	}

	client, err := llm.NewClient(cfg, logger, nil)
	if err != nil {
		exitWithError("Error creating LLM client: %v\n", err)
	}

	agent, err := optimizer.AgentByName(flags.agent)
	if err != nil {
		exitWithError("%v\n", err)
	}

	train, val, err := loadSamples(flags, agent, cfg)
	if err != nil {
		exitWithError("Error loading dataset: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runTraining(ctx, flags, client, agent, cfg, logger, train, val)
	if result != nil {
		if reportErr := writeRunReport(cfg.OutputDir, flags.strategy, result); reportErr != nil {
			logger.Warn("failed to write run report", "error", reportErr)
		}
	}
	if err != nil {
		exitWithError("Training failed: %v\n", err)
	}

	fmt.Printf("Run %s: best reward %.3f over %d rounds\n", result.RunID, result.BestReward, len(result.Rounds))
	fmt.Printf("Optimized prompt: %s\n", result.PromptPath)
}

// exitWithError prints an error message and exits.
func exitWithError(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

// buildConfig loads the environment configuration, applies flag overrides,
// and validates the result before any round runs.
func buildConfig(flags *cmdFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if flags.provider != "" {
		cfg.Provider = flags.provider
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.apiKey != "" {
		cfg.APIKeys[cfg.Provider] = flags.apiKey
	}
	if flags.rounds > 0 {
		cfg.Rounds = flags.rounds
		cfg.BeamRounds = flags.rounds
	}
	if flags.samples > 0 {
		cfg.SamplesPerRound = flags.samples
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.rps > 0 {
		cfg.RequestsPerSecond = flags.rps
	}
	if flags.dryRun {
		cfg.Rounds = dryRunRounds
		cfg.SamplesPerRound = dryRunSamples
		cfg.BeamRounds = dryRunRounds
		cfg.GradientBatchSize = dryRunSamples
		cfg.ValBatchSize = dryRunSamples
	}

	if flags.strategy != "hill" && flags.strategy != "beam" {
		return nil, fmt.Errorf("unknown strategy %q (known: hill, beam)", flags.strategy)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSamples resolves the training corpus: a YAML file when -dataset is
// given, otherwise the agent's builtin samples.
func loadSamples(flags *cmdFlags, agent optimizer.Agent, cfg *config.Config) (train, val []dataset.Sample, err error) {
	if flags.datasetPath == "" {
		train, val = agent.Load(cfg.TrainRatio)
		return train, val, nil
	}

	samples, err := dataset.LoadYAML(flags.datasetPath)
	if err != nil {
		return nil, nil, err
	}
	train, val = dataset.Split(samples, cfg.TrainRatio)
	return train, val, nil
}

// runTraining dispatches to the selected search strategy.
func runTraining(
	ctx context.Context,
	flags *cmdFlags,
	client *llm.Client,
	agent optimizer.Agent,
	cfg *config.Config,
	logger utils.Logger,
	train, val []dataset.Sample,
) (*optimizer.TrainResult, error) {
	var opts []optimizer.TrainerOption
	if flags.debug {
		opts = append(opts, optimizer.WithDebugManager(utils.NewDebugManager(utils.DebugOptions{
			Enabled:      true,
			OutputDir:    filepath.Join(cfg.OutputDir, "debug"),
			SaveToFile:   true,
			LogPrompts:   true,
			LogResponses: true,
		}, logger)))
	}

	if flags.strategy == "beam" {
		return optimizer.NewBeamTrainer(client, agent, cfg, opts...).Train(ctx, train, val)
	}
	return optimizer.NewTrainer(client, agent, cfg, opts...).Train(ctx, train)
}

// runReport is the on-disk JSON layout of a finished run.
type runReport struct {
	*optimizer.TrainResult
	Strategy string `json:"strategy"`
	User     string `json:"user"`
	Host     string `json:"host,omitempty"`
}

// writeRunReport records the run next to the prompt artifact. Interrupted
// runs still get a report for the rounds that completed.
func writeRunReport(outputDir, strategy string, result *optimizer.TrainResult) error {
	report := runReport{
		TrainResult: result,
		Strategy:    strategy,
		User:        platform.CurrentIdentity().Username,
	}
	if host, err := os.Hostname(); err == nil {
		report.Host = host
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(outputDir, result.Agent+"_run.json")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}

// getLogLevel parses the -debug-level flag.
func getLogLevel(text string) (utils.LogLevel, error) {
	var level utils.LogLevel
	if err := level.UnmarshalText([]byte(text)); err != nil {
		return 0, fmt.Errorf("invalid -debug-level %q (use debug, info, warn, error, or off)", text)
	}
	return level, nil
}
