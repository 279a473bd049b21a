package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"venturesim/adapters/rng"
	"venturesim/app"
	"venturesim/domain/belief"
	"venturesim/domain/experiment"
	"venturesim/domain/trial"
	"venturesim/internal/config"
	"venturesim/internal/estimate"
	"venturesim/internal/logging"
)

// version is stamped at build time via -ldflags "-X main.version=...". It
// feeds the replay manifest, so two binaries with different versions never
// claim fingerprint-equivalent runs.
var version = "dev"

var (
	cfgPath    string
	logLevel   string
	prettyLogs bool
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	rootCmd := &cobra.Command{
		Use:     "venturesim",
		Short:   "Bayesian Monte Carlo simulator for venture lifecycle outcomes",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML priors file (empty = benchmark priors)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: trace|debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "Human-readable logs instead of JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newPriorsCmd(),
		newTraceCmd(),
		newReplayCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		trials     int
		seed       int64
		sampling   bool
		workers    int
		interval   string
		confidence float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a Monte Carlo batch and print the result as JSON",
		Long: `Run a batch of simulated company lifecycles against the configured
transition model and print the outcome tally, unicorn rate interval, path
statistics, and replay manifest as JSON on stdout. Logs go to stderr.

Flags override the experiment settings of the config file.

Example: venturesim run --config priors.yaml --trials 100000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("trials") {
				cfg.Experiment.Trials = trials
			}
			if cmd.Flags().Changed("seed") {
				cfg.Experiment.Seed = seed
			}
			if cmd.Flags().Changed("sampling") {
				cfg.Experiment.Sampling = sampling
			}
			if cmd.Flags().Changed("workers") {
				cfg.Experiment.Workers = workers
			}
			if cmd.Flags().Changed("interval") {
				cfg.Experiment.Interval = interval
			}
			if cmd.Flags().Changed("confidence") {
				cfg.Experiment.Confidence = confidence
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runExperiment(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 10000, "Number of lifecycles to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")
	cmd.Flags().BoolVar(&sampling, "sampling", false, "Draw transition vectors from the posterior instead of using means")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (0 = one per CPU)")
	cmd.Flags().StringVar(&interval, "interval", "wilson", "Interval method: wilson|normal|jeffreys")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Interval confidence level")

	return cmd
}

func newPriorsCmd() *cobra.Command {
	var level float64

	cmd := &cobra.Command{
		Use:   "priors",
		Short: "Print the posterior transition table with credible intervals",
		Long: `Print each stage's posterior mean transition probabilities with
equal-tailed credible intervals, plus the terminal distribution. Calibration
observations from the config are applied before summarizing.

Example: venturesim priors --config priors.yaml --level 0.9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			model, err := cfg.TransitionModel()
			if err != nil {
				return fmt.Errorf("build model: %w", err)
			}
			summary, err := estimate.SummarizeModel(model, level)
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}

	cmd.Flags().Float64Var(&level, "level", 0.95, "Credible interval level")

	return cmd
}

func newTraceCmd() *cobra.Command {
	var (
		count    int
		seed     int64
		sampling bool
	)

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Simulate a few lifecycles and print each yearly draw",
		Long: `Simulate individual company lifecycles and print every step of each
path, useful for inspecting how the chain moves companies between stages.

Example: venturesim trace --count 3 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			model, err := cfg.TransitionModel()
			if err != nil {
				return fmt.Errorf("build model: %w", err)
			}
			return runTrace(cmd.Context(), model, count, seed, sampling)
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "Number of lifecycles to trace")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")
	cmd.Flags().BoolVar(&sampling, "sampling", false, "Draw transition vectors from the posterior instead of using means")

	return cmd
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [manifest.json]",
		Short: "Re-run an experiment from its manifest and verify the fingerprint",
		Long: `Re-run the experiment a manifest describes and verify the rerun
produces the same replay fingerprint. The config must describe the same
model state the manifest was recorded against; a drifted model fails before
any trial runs.

Example: venturesim replay manifest.json --config priors.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return runReplay(cmd.Context(), cfg, logger, args[0])
		},
	}

	return cmd
}

// setup loads the configuration and builds the process logger, applying the
// persistent flag overrides.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if prettyLogs {
		cfg.Logging.Pretty = true
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty}, os.Stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.LoadWithEnv(path)
}

func runExperiment(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	model, err := cfg.TransitionModel()
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	svc := app.NewExperimentService(rng.NewDeterministicAdapter(), logger, version)
	result, err := svc.Run(ctx, model, cfg.Spec())
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runTrace(ctx context.Context, model *belief.TransitionModel, count int, seed int64, sampling bool) error {
	adapter := rng.NewDeterministicAdapter()
	stream, err := adapter.SeededStream(ctx, "trace", seed)
	if err != nil {
		return err
	}
	sim := trial.Simulator{Source: model, Sampling: sampling}

	fmt.Printf("Tracing %d lifecycles (seed %d)\n", count, seed)
	for i := 0; i < count; i++ {
		tr, err := sim.Run(stream)
		if err != nil {
			return err
		}
		fmt.Printf("\ntrial %d: %s at year %d, final stage %s, %d rounds raised\n",
			i+1, tr.Outcome, tr.ExitYear, tr.FinalStage, tr.RoundsRaised)
		for _, step := range tr.Path {
			fmt.Printf("  year %2d: %-12s %s\n", step.Year, step.Stage, step.Outcome)
		}
	}
	return nil
}

func runReplay(ctx context.Context, cfg *config.Config, logger zerolog.Logger, manifestPath string) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var manifest experiment.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	model, err := cfg.TransitionModel()
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	svc := app.NewExperimentService(rng.NewDeterministicAdapter(), logger, version)
	result, err := svc.Replay(ctx, model, manifest)
	if err != nil {
		return err
	}

	logger.Info().Str("fingerprint", string(result.Manifest.Fingerprint)).Msg("replay verified")
	return printJSON(result)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
