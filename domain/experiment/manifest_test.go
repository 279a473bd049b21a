package experiment

import (
	"testing"

	"venturesim/domain/core"
)

func baseSpec() Spec {
	return Spec{Trials: 10000, Seed: 42, Sampling: false, Workers: 4}
}

func TestManifest_Deterministic(t *testing.T) {
	// Golden test - same inputs produce identical fingerprints
	modelFP := core.ModelFingerprint("model-fp")

	m1 := NewManifest(core.ExperimentID("exp-1"), baseSpec(), modelFP, "1.0.0")
	m2 := NewManifest(core.ExperimentID("exp-2"), baseSpec(), modelFP, "1.0.0")

	// Same replay identity despite different experiment IDs
	if !m1.ReplayEquivalent(m2) {
		t.Errorf("Fingerprints not identical: %s vs %s", m1.Fingerprint, m2.Fingerprint)
	}

	if m1.Seed != 42 || m1.Trials != 10000 || m1.Workers != 4 {
		t.Errorf("Replay parameters not carried: %+v", m1)
	}
	if m1.ModelFingerprint != modelFP {
		t.Errorf("ModelFingerprint mismatch: %s vs %s", m1.ModelFingerprint, modelFP)
	}
	if m1.CodeVersion != "1.0.0" {
		t.Errorf("CodeVersion mismatch: %s", m1.CodeVersion)
	}
}

func TestManifest_Unique(t *testing.T) {
	// Different replay parameters should produce different fingerprints
	modelFP := core.ModelFingerprint("model-fp")
	base := NewManifest(core.ExperimentID("exp"), baseSpec(), modelFP, "1.0.0")

	differentSeed := baseSpec()
	differentSeed.Seed = 43

	differentTrials := baseSpec()
	differentTrials.Trials = 10001

	differentSampling := baseSpec()
	differentSampling.Sampling = true

	differentWorkers := baseSpec()
	differentWorkers.Workers = 8

	testCases := []struct {
		name string
		m    Manifest
	}{
		{"different seed", NewManifest(core.ExperimentID("exp"), differentSeed, modelFP, "1.0.0")},
		{"different trials", NewManifest(core.ExperimentID("exp"), differentTrials, modelFP, "1.0.0")},
		{"different sampling", NewManifest(core.ExperimentID("exp"), differentSampling, modelFP, "1.0.0")},
		{"different workers", NewManifest(core.ExperimentID("exp"), differentWorkers, modelFP, "1.0.0")},
		{"different model", NewManifest(core.ExperimentID("exp"), baseSpec(), core.ModelFingerprint("other-fp"), "1.0.0")},
		{"different code", NewManifest(core.ExperimentID("exp"), baseSpec(), modelFP, "1.0.1")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.m.ReplayEquivalent(base) {
				t.Errorf("Fingerprint should be different for %s", tc.name)
			}
		})
	}
}

func TestManifest_Validate(t *testing.T) {
	modelFP := core.ModelFingerprint("model-fp")
	valid := NewManifest(core.ExperimentID("exp"), baseSpec(), modelFP, "1.0.0")
	if err := valid.Validate(); err != nil {
		t.Errorf("Manifest validation failed: %v", err)
	}

	missingID := valid
	missingID.ExperimentID = ""
	if err := missingID.Validate(); err == nil {
		t.Error("expected validation failure for empty experiment_id")
	}

	missingModel := valid
	missingModel.ModelFingerprint = ""
	if err := missingModel.Validate(); err == nil {
		t.Error("expected validation failure for empty model_fingerprint")
	}

	missingCode := valid
	missingCode.CodeVersion = ""
	if err := missingCode.Validate(); err == nil {
		t.Error("expected validation failure for empty code_version")
	}
}
