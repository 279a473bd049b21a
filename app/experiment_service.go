package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"venturesim/domain/belief"
	"venturesim/domain/core"
	"venturesim/domain/experiment"
	"venturesim/domain/trial"
	"venturesim/internal/estimate"
	"venturesim/ports"
)

// trialStreamName roots every worker's random stream. Renaming it changes
// every replay, so it is part of the determinism contract.
const trialStreamName = "trials"

// ExperimentService runs Monte Carlo batches against a transition model and
// packages the outcome tally, rate estimates, and path statistics into an
// immutable result with a replay manifest.
type ExperimentService struct {
	rngPort     ports.RNGPort
	logger      zerolog.Logger
	codeVersion string
}

// NewExperimentService creates an experiment service.
func NewExperimentService(rngPort ports.RNGPort, logger zerolog.Logger, codeVersion string) *ExperimentService {
	return &ExperimentService{
		rngPort:     rngPort,
		logger:      logger,
		codeVersion: codeVersion,
	}
}

// Run executes one batch of lifecycle trials. Trials are partitioned over
// workers up front, each worker draws from its own seeded stream, and the
// per-worker accumulators merge in worker order, so a given seed, trial
// count, worker count, and model state always reproduce the same tally and
// statistics. The model must not receive observations while a run is in
// flight.
func (s *ExperimentService) Run(ctx context.Context, model *belief.TransitionModel, spec experiment.Spec) (*experiment.Result, error) {
	startTime := time.Now()

	if model == nil {
		return nil, core.NewArgumentError("model", "transition model is required")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec = spec.Normalized()
	spec.Workers = resolveWorkers(spec.Workers, spec.Trials)

	s.logger.Info().
		Int("trials", spec.Trials).
		Int64("seed", spec.Seed).
		Bool("sampling", spec.Sampling).
		Int("workers", spec.Workers).
		Msg("experiment started")

	counts := partitionTrials(spec.Trials, spec.Workers)

	accs := make([]*experiment.Accumulator, spec.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < spec.Workers; w++ {
		g.Go(func() error {
			stream, err := s.rngPort.WorkerStream(gctx, trialStreamName, w, spec.Seed)
			if err != nil {
				return fmt.Errorf("worker %d stream: %w", w, err)
			}

			sim := trial.Simulator{Source: model, Sampling: spec.Sampling}
			acc := experiment.NewAccumulator(counts[w])
			for i := 0; i < counts[w]; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				tr, err := sim.Run(stream)
				if err != nil {
					return fmt.Errorf("worker %d trial %d: %w", w, i, err)
				}
				if err := acc.Record(tr); err != nil {
					return fmt.Errorf("worker %d trial %d: %w", w, i, err)
				}
			}
			accs[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in worker index order so the observation sequence is canonical.
	merged := accs[0]
	for w := 1; w < spec.Workers; w++ {
		merged.Merge(accs[w])
	}

	rate := float64(merged.Tally.Unicorn) / float64(spec.Trials)
	interval, err := estimate.RateInterval(merged.Tally.Unicorn, spec.Trials, spec.Confidence, spec.Interval)
	if err != nil {
		return nil, fmt.Errorf("rate interval: %w", err)
	}
	paths, err := estimate.PathStats(merged)
	if err != nil {
		return nil, fmt.Errorf("path statistics: %w", err)
	}

	id := core.ExperimentID(core.NewID())
	manifest := experiment.NewManifest(id, spec, model.Fingerprint(), s.codeVersion)
	runtimeMs := time.Since(startTime).Milliseconds()

	result := &experiment.Result{
		ExperimentID: id,
		Seed:         spec.Seed,
		Trials:       spec.Trials,
		Sampling:     spec.Sampling,
		Workers:      spec.Workers,
		Tally:        merged.Tally,
		UnicornRate:  rate,
		Interval:     interval,
		PathStats:    paths,
		Manifest:     manifest,
		RuntimeMs:    runtimeMs,
		CreatedAt:    core.Now(),
	}

	s.logger.Info().
		Str("experiment_id", id.String()).
		Int("unicorns", merged.Tally.Unicorn).
		Int("zombies", merged.Tally.Zombie).
		Int("bankruptcies", merged.Tally.Bankrupt).
		Float64("unicorn_rate", rate).
		Int64("runtime_ms", runtimeMs).
		Msg("experiment completed")

	return result, nil
}

// Replay reruns the computation a manifest describes and verifies the rerun
// produces the same replay fingerprint. The model must be in the same state
// the manifest recorded; a drifted model or binary fails before any trial
// runs. The replayed result carries default interval settings, since the
// manifest pins only the parameters that shape the random streams.
func (s *ExperimentService) Replay(ctx context.Context, model *belief.TransitionModel, manifest experiment.Manifest) (*experiment.Result, error) {
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, core.NewArgumentError("model", "transition model is required")
	}
	if s.codeVersion != manifest.CodeVersion {
		return nil, fmt.Errorf("%w: code version %s does not match manifest %s",
			core.ErrFingerprintMismatch, s.codeVersion, manifest.CodeVersion)
	}
	if fp := model.Fingerprint(); fp != manifest.ModelFingerprint {
		return nil, fmt.Errorf("%w: model fingerprint %s does not match manifest %s",
			core.ErrFingerprintMismatch, fp, manifest.ModelFingerprint)
	}

	result, err := s.Run(ctx, model, experiment.Spec{
		Trials:   manifest.Trials,
		Seed:     manifest.Seed,
		Sampling: manifest.Sampling,
		Workers:  manifest.Workers,
	})
	if err != nil {
		return nil, err
	}
	if !result.Manifest.ReplayEquivalent(manifest) {
		return nil, fmt.Errorf("%w: replay fingerprint %s does not match manifest %s",
			core.ErrFingerprintMismatch, result.Manifest.Fingerprint, manifest.Fingerprint)
	}
	return result, nil
}

// resolveWorkers fills the runtime default and caps parallelism at one
// worker per trial.
func resolveWorkers(workers, trials int) int {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}
	return workers
}

// partitionTrials splits trials across workers, front-loading the
// remainder. The partition is part of the replay identity: the same trial
// and worker counts always produce the same per-worker slices.
func partitionTrials(trials, workers int) []int {
	counts := make([]int, workers)
	base := trials / workers
	rem := trials % workers
	for w := range counts {
		counts[w] = base
		if w < rem {
			counts[w]++
		}
	}
	return counts
}
