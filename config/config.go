// Package config loads and validates the training pipeline configuration
// from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// Config holds every tunable of the optimization pipeline. All fields are
// overridable through APO_* environment variables; API keys are harvested
// from *_API_KEY variables.
type Config struct {
	Provider string `env:"APO_PROVIDER" envDefault:"openai" validate:"required"`
	Model    string `env:"APO_MODEL" envDefault:"gpt-4o-mini" validate:"required"`

	// GradientModel and ApplyModel override Model for the critique and
	// rewrite calls. Empty means use Model.
	GradientModel string `env:"APO_GRADIENT_MODEL"`
	ApplyModel    string `env:"APO_APPLY_MODEL"`

	BaseURL    string        `env:"APO_BASE_URL"`
	Timeout    time.Duration `env:"APO_TIMEOUT" envDefault:"60s"`
	MaxRetries int           `env:"APO_MAX_RETRIES" envDefault:"0" validate:"min=0"`
	RetryDelay time.Duration `env:"APO_RETRY_DELAY" envDefault:"2s"`

	APIKeys  map[string]string `validate:"apikey"`
	LogLevel utils.LogLevel    `env:"APO_LOG_LEVEL" envDefault:"INFO"`

	Rounds              int     `env:"APO_ROUNDS" envDefault:"3" validate:"min=1"`
	SamplesPerRound     int     `env:"APO_SAMPLES_PER_ROUND" envDefault:"3" validate:"min=1"`
	GradientTemperature float64 `env:"APO_GRADIENT_TEMPERATURE" envDefault:"0.7" validate:"gte=0,lte=2"`
	ApplyTemperature    float64 `env:"APO_APPLY_TEMPERATURE" envDefault:"0.3" validate:"gte=0,lte=2"`
	TrainRatio          float64 `env:"APO_TRAIN_RATIO" envDefault:"0.7" validate:"gt=0,lt=1"`
	OutputDir           string  `env:"APO_OUTPUT_DIR" envDefault:"trained_prompts" validate:"required"`

	Workers           int     `env:"APO_WORKERS" envDefault:"1" validate:"min=1"`
	RequestsPerSecond float64 `env:"APO_REQUESTS_PER_SECOND" envDefault:"0" validate:"gte=0"`

	BeamWidth         int           `env:"APO_BEAM_WIDTH" envDefault:"4" validate:"min=1"`
	BranchFactor      int           `env:"APO_BRANCH_FACTOR" envDefault:"4" validate:"min=1"`
	BeamRounds        int           `env:"APO_BEAM_ROUNDS" envDefault:"3" validate:"min=1"`
	GradientBatchSize int           `env:"APO_GRADIENT_BATCH_SIZE" envDefault:"4" validate:"min=1"`
	ValBatchSize      int           `env:"APO_VAL_BATCH_SIZE" envDefault:"10" validate:"min=1"`
	BatchTimeout      time.Duration `env:"APO_BATCH_TIMEOUT" envDefault:"10m"`

	GuardrailCacheSize int           `env:"APO_GUARDRAIL_CACHE_SIZE" envDefault:"1024" validate:"min=1"`
	GuardrailCacheTTL  time.Duration `env:"APO_GUARDRAIL_CACHE_TTL" envDefault:"15m"`
}

// validate is the shared validator instance used across the package.
var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("apikey", validateAPIKey); err != nil {
		panic(fmt.Sprintf("failed to register API key validator: %v", err))
	}
}

// validateAPIKey checks that the key map holds a non-empty key for the
// configured provider. The mock provider needs no credentials.
func validateAPIKey(fl validator.FieldLevel) bool {
	apiKeys, ok := fl.Field().Interface().(map[string]string)
	if !ok {
		return false
	}
	provider := fl.Parent().FieldByName("Provider").String()
	if provider == "mock" {
		return true
	}
	return apiKeys[provider] != ""
}

// LoadConfig reads the environment and harvests API keys. Callers validate
// after applying their own overrides.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIKeys: make(map[string]string),
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	loadAPIKeys(cfg)
	return cfg, nil
}

// loadAPIKeys harvests provider credentials from *_API_KEY environment
// variables. Numbered OpenAI keys (OPENAI_API_KEY_1) take precedence over
// the plain one so rotated deployments keep working.
func loadAPIKeys(cfg *Config) {
	for _, envVar := range os.Environ() {
		key, value, found := strings.Cut(envVar, "=")
		if !found || value == "" {
			continue
		}
		upper := strings.ToUpper(key)
		if strings.HasSuffix(upper, "_API_KEY") {
			provider := strings.TrimSuffix(upper, "_API_KEY")
			cfg.APIKeys[strings.ToLower(provider)] = value
		}
	}
	if numbered := os.Getenv("OPENAI_API_KEY_1"); numbered != "" {
		cfg.APIKeys["openai"] = numbered
	}
}

// Validate checks field constraints and provider credentials.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() (string, error) {
	if c.Provider == "mock" {
		return "", nil
	}
	key := c.APIKeys[c.Provider]
	if key == "" {
		return "", fmt.Errorf("no API key found for provider %q (set %s_API_KEY)",
			c.Provider, strings.ToUpper(c.Provider))
	}
	return key, nil
}

// GradientModelName resolves the model used for critique generation.
func (c *Config) GradientModelName() string {
	if c.GradientModel != "" {
		return c.GradientModel
	}
	return c.Model
}

// ApplyModelName resolves the model used for prompt rewriting.
func (c *Config) ApplyModelName() string {
	if c.ApplyModel != "" {
		return c.ApplyModel
	}
	return c.Model
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// NewConfig returns a Config with library defaults applied. Unlike
// LoadConfig it does not consult the environment.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := &Config{
		Provider:            "openai",
		Model:               "gpt-4o-mini",
		Timeout:             60 * time.Second,
		MaxRetries:          0,
		RetryDelay:          2 * time.Second,
		APIKeys:             make(map[string]string),
		LogLevel:            utils.LogLevelInfo,
		Rounds:              3,
		SamplesPerRound:     3,
		GradientTemperature: 0.7,
		ApplyTemperature:    0.3,
		TrainRatio:          0.7,
		OutputDir:           "trained_prompts",
		Workers:             1,
		BeamWidth:           4,
		BranchFactor:        4,
		BeamRounds:          3,
		GradientBatchSize:   4,
		ValBatchSize:        10,
		BatchTimeout:        10 * time.Minute,
		GuardrailCacheSize:  1024,
		GuardrailCacheTTL:   15 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func SetProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

func SetModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

func SetAPIKey(provider, apiKey string) ConfigOption {
	return func(c *Config) {
		if c.APIKeys == nil {
			c.APIKeys = make(map[string]string)
		}
		c.APIKeys[provider] = apiKey
	}
}

func SetBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

func SetRounds(rounds int) ConfigOption {
	return func(c *Config) {
		c.Rounds = rounds
	}
}

func SetSamplesPerRound(samples int) ConfigOption {
	return func(c *Config) {
		c.SamplesPerRound = samples
	}
}

func SetOutputDir(dir string) ConfigOption {
	return func(c *Config) {
		c.OutputDir = dir
	}
}

func SetWorkers(workers int) ConfigOption {
	return func(c *Config) {
		c.Workers = workers
	}
}

func SetTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

func SetMaxRetries(maxRetries int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

func SetLogLevel(level utils.LogLevel) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}
