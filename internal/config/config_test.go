package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Problem != "decay" {
		t.Errorf("expected problem decay, got %s", cfg.Problem)
	}
	if cfg.Solver != "adams-bashforth" {
		t.Errorf("expected solver adams-bashforth, got %s", cfg.Solver)
	}
	if cfg.Nout <= 0 {
		t.Error("nout should be positive")
	}
	if cfg.Tstep <= 0 {
		t.Error("tstep should be positive")
	}
	if cfg.RTol <= 0 || cfg.ATol <= 0 {
		t.Error("tolerances should be positive")
	}
}

func TestLoadMergesOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("problem: oscillator\nrtol: 1.0e-8\nadaptive_order: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Problem != "oscillator" {
		t.Errorf("expected problem oscillator, got %s", cfg.Problem)
	}
	if cfg.RTol != 1e-8 {
		t.Errorf("expected rtol 1e-8, got %g", cfg.RTol)
	}
	if !cfg.AdaptiveOrder {
		t.Error("expected adaptive_order true")
	}

	// Fields absent from the file keep their defaults.
	def := DefaultConfig()
	if cfg.MXStep != def.MXStep {
		t.Errorf("expected default mxstep %d, got %d", def.MXStep, cfg.MXStep)
	}
	if cfg.MaximumOrder != def.MaximumOrder {
		t.Errorf("expected default maximum_order %d, got %d", def.MaximumOrder, cfg.MaximumOrder)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Problem = "vanderpol"
	cfg.Nout = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Problem != "vanderpol" || loaded.Nout != 42 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestOptionsMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RTol = 1e-9
	cfg.Adaptive = false
	cfg.MaximumOrder = 7

	opts := cfg.Options()
	if opts.RTol != 1e-9 {
		t.Errorf("expected rtol 1e-9, got %g", opts.RTol)
	}
	if opts.Adaptive {
		t.Error("expected adaptive false")
	}
	if opts.MaximumOrder != 7 {
		t.Errorf("expected maximum order 7, got %d", opts.MaximumOrder)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("decay", "accurate")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Problem != "decay" {
		t.Errorf("expected problem decay, got %s", cfg.Problem)
	}
	if cfg.RTol != 1e-10 {
		t.Errorf("expected rtol 1e-10, got %g", cfg.RTol)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("decay", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "quick"); cfg != nil {
		t.Error("expected nil for nonexistent problem")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("decay")
	if len(presets) == 0 {
		t.Error("expected presets for decay")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent problem")
	}
}

func TestPresetsValid(t *testing.T) {
	for problem, group := range Presets {
		for name, cfg := range group {
			if cfg.Problem != problem {
				t.Errorf("preset %s/%s: problem field %s does not match group", problem, name, cfg.Problem)
			}
			if cfg.Nout <= 0 || cfg.Tstep <= 0 {
				t.Errorf("preset %s/%s: invalid output grid", problem, name)
			}
		}
	}
}
