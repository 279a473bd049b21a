// Package config loads the YAML document that describes a transition model
// and the experiment settings that run against it. Loading follows a fixed
// sequence: decode, fill defaults, validate. Environment variables override
// the scalar experiment settings so a checked-in priors file can be reused
// across runs with different trial counts or seeds.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"venturesim/domain/belief"
	"venturesim/domain/experiment"
	"venturesim/domain/venture"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config is the complete application configuration.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ModelConfig holds the prior pseudo-counts and calibration observations
// that define a transition model.
type ModelConfig struct {
	// Priors maps stage names to yearly transition pseudo-counts in
	// operating, next_stage, bankrupt, unicorn order. Seed through series_c
	// are required. series_c_plus may be omitted, in which case the C+ stage
	// shares the series_c belief.
	Priors map[string][]float64 `yaml:"priors" validate:"required"`
	// Terminal holds horizon pseudo-counts in bankrupt, zombie, unicorn
	// order.
	Terminal []float64 `yaml:"terminal" validate:"required"`
	// Observations sharpen stage beliefs before any experiment runs. They
	// are applied in document order.
	Observations []StageObservation `yaml:"observations" validate:"dive"`
	// TerminalObservations sharpen the horizon belief.
	TerminalObservations []TerminalObservation `yaml:"terminal_observations" validate:"dive"`
}

// StageObservation is one batch of observed yearly transitions at a stage.
type StageObservation struct {
	Stage   string `yaml:"stage" validate:"required"`
	Outcome string `yaml:"outcome" validate:"required"`
	Count   int    `yaml:"count" validate:"gt=0"`
}

// TerminalObservation is one batch of observed horizon outcomes.
type TerminalObservation struct {
	Outcome string `yaml:"outcome" validate:"required"`
	Count   int    `yaml:"count" validate:"gt=0"`
}

// ExperimentConfig holds batch simulation settings.
type ExperimentConfig struct {
	// Trials is the number of lifecycles per batch.
	Trials int `yaml:"trials" default:"10000" validate:"gte=1"`
	// Seed derives every random stream of a batch. A zero or omitted seed
	// selects the default.
	Seed int64 `yaml:"seed" default:"42"`
	// Sampling switches trials from posterior-mean vectors to per-year
	// posterior draws.
	Sampling bool `yaml:"sampling"`
	// Workers is the parallelism degree. Zero lets the runtime decide.
	Workers int `yaml:"workers" validate:"gte=0"`
	// Interval selects the rate interval construction.
	Interval string `yaml:"interval" default:"wilson" validate:"oneof=wilson normal jeffreys"`
	// Confidence is the interval level.
	Confidence float64 `yaml:"confidence" default:"0.95" validate:"gt=0,lt=1"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the benchmark configuration: the stage priors and horizon
// prior of the reference cohort study, with default experiment settings.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Priors: map[string][]float64{
				"seed":     {0.22, 0.27, 0.40, 0.01},
				"series_a": {0.19, 0.30, 0.40, 0.01},
				"series_b": {0.43, 0.26, 0.29, 0.02},
				"series_c": {0.38, 0.32, 0.25, 0.05},
			},
			Terminal: []float64{0.20, 0.75, 0.05},
		},
		Experiment: ExperimentConfig{
			Trials:     10000,
			Seed:       42,
			Interval:   "wilson",
			Confidence: 0.95,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// LoadWithEnv loads a configuration file and overrides the experiment and
// logging settings from environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Parse decodes a YAML document, fills defaults, and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate checks the tag rules and the structural rules the tags cannot
// express: stage and outcome names must parse, each prior vector must match
// its outcome space, and observations must name outcomes their space
// contains.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	yearly := venture.YearlySpace()
	terminal := venture.TerminalSpace()

	for _, stage := range []venture.Stage{venture.StageSeed, venture.StageSeriesA, venture.StageSeriesB, venture.StageSeriesC} {
		if _, ok := c.Model.Priors[stage.String()]; !ok {
			return fmt.Errorf("model.priors: missing required stage %s", stage)
		}
	}

	for name, prior := range c.Model.Priors {
		if _, err := venture.ParseStage(name); err != nil {
			return fmt.Errorf("model.priors: %w", err)
		}
		if len(prior) != yearly.Size() {
			return fmt.Errorf("model.priors.%s: expected %d entries, got %d", name, yearly.Size(), len(prior))
		}
		for i, v := range prior {
			if v <= 0 {
				return fmt.Errorf("model.priors.%s[%d]: pseudo-counts must be positive, got %v", name, i, v)
			}
		}
	}

	if len(c.Model.Terminal) != terminal.Size() {
		return fmt.Errorf("model.terminal: expected %d entries, got %d", terminal.Size(), len(c.Model.Terminal))
	}
	for i, v := range c.Model.Terminal {
		if v <= 0 {
			return fmt.Errorf("model.terminal[%d]: pseudo-counts must be positive, got %v", i, v)
		}
	}

	for i, obs := range c.Model.Observations {
		if _, err := venture.ParseStage(obs.Stage); err != nil {
			return fmt.Errorf("model.observations[%d]: %w", i, err)
		}
		outcome, err := venture.ParseOutcome(obs.Outcome)
		if err != nil {
			return fmt.Errorf("model.observations[%d]: %w", i, err)
		}
		if !yearly.Contains(outcome) {
			return fmt.Errorf("model.observations[%d]: outcome %s not valid for the %s space", i, outcome, yearly)
		}
	}

	for i, obs := range c.Model.TerminalObservations {
		outcome, err := venture.ParseOutcome(obs.Outcome)
		if err != nil {
			return fmt.Errorf("model.terminal_observations[%d]: %w", i, err)
		}
		if !terminal.Contains(outcome) {
			return fmt.Errorf("model.terminal_observations[%d]: outcome %s not valid for the %s space", i, outcome, terminal)
		}
	}

	return nil
}

// TransitionModel builds the model the document describes and applies its
// calibration observations in document order.
func (c *Config) TransitionModel() (*belief.TransitionModel, error) {
	priors := make(map[venture.Stage][]float64, len(c.Model.Priors))
	for name, vector := range c.Model.Priors {
		stage, err := venture.ParseStage(name)
		if err != nil {
			return nil, err
		}
		priors[stage] = vector
	}

	model, err := belief.NewTransitionModel(priors, c.Model.Terminal)
	if err != nil {
		return nil, err
	}

	for i, obs := range c.Model.Observations {
		stage, err := venture.ParseStage(obs.Stage)
		if err != nil {
			return nil, err
		}
		outcome, err := venture.ParseOutcome(obs.Outcome)
		if err != nil {
			return nil, err
		}
		if err := model.Observe(stage, outcome, obs.Count); err != nil {
			return nil, fmt.Errorf("model.observations[%d]: %w", i, err)
		}
	}
	for i, obs := range c.Model.TerminalObservations {
		outcome, err := venture.ParseOutcome(obs.Outcome)
		if err != nil {
			return nil, err
		}
		if err := model.ObserveTerminal(outcome, obs.Count); err != nil {
			return nil, fmt.Errorf("model.terminal_observations[%d]: %w", i, err)
		}
	}

	return model, nil
}

// Spec returns the experiment spec the document describes.
func (c *Config) Spec() experiment.Spec {
	return experiment.Spec{
		Trials:     c.Experiment.Trials,
		Seed:       c.Experiment.Seed,
		Sampling:   c.Experiment.Sampling,
		Workers:    c.Experiment.Workers,
		Interval:   experiment.IntervalMethod(c.Experiment.Interval),
		Confidence: c.Experiment.Confidence,
	}
}

// ApplyEnv overrides the experiment and logging settings from environment
// variables. Model priors and observations only ever come from the document.
func (c *Config) ApplyEnv() {
	c.Experiment.Trials = getEnvIntOrDefault("VENTURESIM_TRIALS", c.Experiment.Trials)
	c.Experiment.Seed = getEnvInt64OrDefault("VENTURESIM_SEED", c.Experiment.Seed)
	c.Experiment.Sampling = getEnvBoolOrDefault("VENTURESIM_SAMPLING", c.Experiment.Sampling)
	c.Experiment.Workers = getEnvIntOrDefault("VENTURESIM_WORKERS", c.Experiment.Workers)
	c.Experiment.Interval = getEnvOrDefault("VENTURESIM_INTERVAL", c.Experiment.Interval)
	c.Experiment.Confidence = getEnvFloatOrDefault("VENTURESIM_CONFIDENCE", c.Experiment.Confidence)
	c.Logging.Level = getEnvOrDefault("VENTURESIM_LOG_LEVEL", c.Logging.Level)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
