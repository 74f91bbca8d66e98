package reco

import "testing"

func TestNormalize_ZeroConfigYieldsDefaults(t *testing.T) {
	got := Config{}.Normalize()
	if got != DefaultConfig() {
		t.Fatalf("zero config normalized to %+v, want %+v", got, DefaultConfig())
	}
}

func TestNormalize_KeepsExplicitKnobs(t *testing.T) {
	cfg := Config{
		ItemsFromHistory:     3,
		CovisitsPerItem:      15,
		CandidatesPerSession: 80,
		TopK:                 10,
		NativeIterations:     120,
	}
	if got := cfg.Normalize(); got != cfg {
		t.Fatalf("explicit knobs changed by Normalize: %+v", got)
	}
}

func TestNormalize_NegativeIterationHintZeroed(t *testing.T) {
	got := Config{NativeIterations: -4}.Normalize()
	if got.NativeIterations != 0 {
		t.Fatalf("NativeIterations = %d, want 0", got.NativeIterations)
	}
}

func TestDefaultConfig_IsAlreadyNormalized(t *testing.T) {
	def := DefaultConfig()
	if def.Normalize() != def {
		t.Fatalf("defaults do not survive Normalize: %+v", def.Normalize())
	}
}
