package registry

import (
	"testing"

	"github.com/askeland/multistep/internal/ode"
)

func TestGetSolver(t *testing.T) {
	r := New()

	fn, err := r.GetSolver("adams-bashforth")
	if err != nil {
		t.Fatalf("expected solver, got error: %v", err)
	}

	s := fn(func(x ode.State, tv float64) (ode.State, error) {
		return ode.State{-x[0]}, nil
	}, ode.State{1}, ode.DefaultOptions())
	if s == nil {
		t.Fatal("constructor returned nil solver")
	}
	if err := s.Init(1, 1.0); err != nil {
		t.Errorf("constructed solver failed to init: %v", err)
	}
}

func TestGetSolverUnknown(t *testing.T) {
	r := New()
	if _, err := r.GetSolver("runge-kutta"); err == nil {
		t.Error("expected error for unknown solver")
	}
}

func TestDefaultMetrics(t *testing.T) {
	r := New()

	osc, err := r.GetProblem("oscillator")
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, m := range r.DefaultMetrics(osc) {
		names[m.Name()] = true
	}
	for _, want := range []string{"mean_step_size", "max_order", "global_error", "energy_drift"} {
		if !names[want] {
			t.Errorf("oscillator metrics missing %s", want)
		}
	}

	vdp, err := r.GetProblem("vanderpol")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range r.DefaultMetrics(vdp) {
		if m.Name() == "global_error" || m.Name() == "energy_drift" {
			t.Errorf("vanderpol should not get %s", m.Name())
		}
	}
}

func TestGetProblem(t *testing.T) {
	r := New()
	for _, name := range r.Problems() {
		p, err := r.GetProblem(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if p.Dim() < 1 {
			t.Errorf("%s: dim %d", name, p.Dim())
		}
	}
	if _, err := r.GetProblem("lorenz"); err == nil {
		t.Error("expected error for unknown problem")
	}
}
