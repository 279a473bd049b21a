package experiment

import (
	"crypto/sha256"
	"fmt"

	"venturesim/domain/core"
)

// Manifest is the truth source for replaying an experiment: every input that
// determines the batch's output, fingerprinted into a single hash. Two runs
// with equal fingerprints must produce bit-identical tallies and statistics.
type Manifest struct {
	ExperimentID     core.ExperimentID     `json:"experiment_id"`
	Seed             int64                 `json:"seed"`
	Trials           int                   `json:"trials"`
	Sampling         bool                  `json:"sampling"`
	Workers          int                   `json:"workers"`
	ModelFingerprint core.ModelFingerprint `json:"model_fingerprint"`
	CodeVersion      string                `json:"code_version"`
	// Fingerprint hashes the replay identity above. The experiment ID and
	// creation time are excluded: they vary between replays of the same run.
	Fingerprint core.Hash      `json:"fingerprint"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// NewManifest creates a manifest from an experiment's determinism parameters.
func NewManifest(id core.ExperimentID, spec Spec, modelFingerprint core.ModelFingerprint, codeVersion string) Manifest {
	return Manifest{
		ExperimentID:     id,
		Seed:             spec.Seed,
		Trials:           spec.Trials,
		Sampling:         spec.Sampling,
		Workers:          spec.Workers,
		ModelFingerprint: modelFingerprint,
		CodeVersion:      codeVersion,
		Fingerprint:      computeManifestFingerprint(spec, modelFingerprint, codeVersion),
		CreatedAt:        core.Now(),
	}
}

// computeManifestFingerprint generates a deterministic hash from all replay
// parameters
func computeManifestFingerprint(spec Spec, modelFingerprint core.ModelFingerprint, codeVersion string) core.Hash {
	data := fmt.Sprintf("seed:%d|trials:%d|sampling:%t|workers:%d|model:%s|code:%s",
		spec.Seed, spec.Trials, spec.Sampling, spec.Workers, modelFingerprint, codeVersion)

	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}

// ReplayEquivalent reports whether two manifests describe the same
// deterministic computation.
func (m Manifest) ReplayEquivalent(other Manifest) bool {
	return m.Fingerprint == other.Fingerprint
}

// Validate checks if the manifest is complete
func (m Manifest) Validate() error {
	if core.ID(m.ExperimentID).IsEmpty() {
		return core.NewArgumentError("manifest", "experiment_id cannot be empty")
	}
	if m.Trials < 1 {
		return core.NewArgumentError("manifest", "trials must be at least 1")
	}
	if m.ModelFingerprint == "" {
		return core.NewArgumentError("manifest", "model_fingerprint cannot be empty")
	}
	if m.CodeVersion == "" {
		return core.NewArgumentError("manifest", "code_version cannot be empty")
	}
	if m.Fingerprint.IsEmpty() {
		return core.NewArgumentError("manifest", "fingerprint cannot be empty")
	}
	return nil
}
