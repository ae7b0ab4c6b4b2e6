package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/askeland/multistep/internal/ode"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &ode.Result{
		States: []ode.State{
			{1.0, 0.0},
			{0.9, -0.1},
		},
		Times:  []float64{0.0, 0.1},
		Dts:    []float64{0.05, 0.08},
		Orders: []int{1, 2},
		Stats:  ode.Stats{Accepted: 4, Rejected: 1, RHSEvals: 5},
		Metrics: map[string]float64{
			"energy_drift": 1.5e-9,
		},
	}

	runID, err := st.Save("oscillator", "adams-bashforth", 2, 0.1, 1e-12, 1e-5, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Problem != "oscillator" {
		t.Errorf("expected problem 'oscillator', got '%s'", meta.Problem)
	}
	if meta.Solver != "adams-bashforth" {
		t.Errorf("expected solver 'adams-bashforth', got '%s'", meta.Solver)
	}
	if meta.Accepted != 4 || meta.Rejected != 1 {
		t.Errorf("expected stats 4/1, got %d/%d", meta.Accepted, meta.Rejected)
	}
	if meta.Metrics["energy_drift"] != 1.5e-9 {
		t.Errorf("expected energy_drift 1.5e-9, got %g", meta.Metrics["energy_drift"])
	}

	loaded, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if len(loaded.States) != 2 || len(loaded.Times) != 2 {
		t.Fatalf("expected 2 samples, got %d states, %d times", len(loaded.States), len(loaded.Times))
	}
	if loaded.Times[1] != 0.1 {
		t.Errorf("expected time 0.1, got %g", loaded.Times[1])
	}
	if loaded.Dts[1] != 0.08 {
		t.Errorf("expected dt 0.08, got %g", loaded.Dts[1])
	}
	if loaded.Orders[1] != 2 {
		t.Errorf("expected order 2, got %d", loaded.Orders[1])
	}
	if loaded.States[1][1] != -0.1 {
		t.Errorf("expected state component -0.1, got %g", loaded.States[1][1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	result := &ode.Result{
		States:  []ode.State{{1.0}},
		Times:   []float64{0.0},
		Dts:     []float64{0.1},
		Orders:  []int{1},
		Metrics: map[string]float64{},
	}

	_, err = st.Save("decay", "adams-bashforth", 1, 0.1, 1e-12, 1e-5, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &ode.Result{
		States:  []ode.State{{1.0}},
		Times:   []float64{0.0},
		Dts:     []float64{0.1},
		Orders:  []int{1},
		Metrics: map[string]float64{},
	}

	runID, err := st.Save("decay", "adams-bashforth", 1, 0.1, 1e-12, 1e-5, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "samples.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	result := &ode.Result{
		States:  []ode.State{{1.0}, {0.5}},
		Times:   []float64{0.0, 0.1},
		Dts:     []float64{0.05, 0.05},
		Orders:  []int{1, 2},
		Stats:   ode.Stats{Accepted: 2, RHSEvals: 3},
		Metrics: map[string]float64{},
	}

	var buf bytes.Buffer
	if err := writeExport(&buf, "decay", "adams-bashforth", 2, 0.1, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Problem != "decay" || data.Steps != 2 {
		t.Errorf("unexpected export: %+v", data)
	}
	if data.Orders[1] != 2 {
		t.Errorf("expected order 2, got %d", data.Orders[1])
	}
}
