package metrics

import (
	"math"
	"testing"

	"github.com/askeland/multistep/internal/ode"
	"github.com/askeland/multistep/internal/problems"
)

func TestMeanStepSize(t *testing.T) {
	m := NewMeanStepSize()

	x := ode.State{1.0}
	m.Observe(x, 0.1, 0.1, 2)
	m.Observe(x, 0.4, 0.3, 2)

	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("expected mean 0.2, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMaxOrder(t *testing.T) {
	m := NewMaxOrder()

	x := ode.State{1.0}
	m.Observe(x, 0.1, 0.1, 1)
	m.Observe(x, 0.2, 0.1, 3)
	m.Observe(x, 0.3, 0.1, 2)

	if m.Value() != 3 {
		t.Errorf("expected max order 3, got %f", m.Value())
	}
}

func TestEnergyDriftConservedSignal(t *testing.T) {
	osc := problems.NewOscillator()
	m := NewEnergyDrift(osc.Energy)

	// Exact trajectory conserves energy, so drift stays at rounding level.
	for i := 0; i <= 100; i++ {
		tt := float64(i) * 0.05
		m.Observe(osc.Exact(tt), tt, 0.05, 3)
	}

	if m.Value() > 1e-12 {
		t.Errorf("expected negligible drift on exact trajectory, got %g", m.Value())
	}
}

func TestEnergyDriftDetectsDecay(t *testing.T) {
	osc := problems.NewOscillator()
	m := NewEnergyDrift(osc.Energy)

	m.Observe(ode.State{1.0, 0.0}, 0, 0.1, 2)
	m.Observe(ode.State{0.5, 0.0}, 1, 0.1, 2)

	if m.Value() < 0.5 {
		t.Errorf("expected drift >= 0.5, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10.0)

	m.Observe(ode.State{1.0, 2.0}, 0, 0.1, 2)
	m.Observe(ode.State{50.0, 2.0}, 0.1, 0.1, 2)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Error("expected stability 1.0 after reset")
	}
}

func TestGlobalError(t *testing.T) {
	dec := problems.NewDecay()
	m := NewGlobalError(dec.Exact)

	m.Observe(dec.Exact(0.5), 0.5, 0.1, 2)
	if m.Value() > 1e-15 {
		t.Errorf("expected zero error on exact sample, got %g", m.Value())
	}

	ref := dec.Exact(1.0)
	perturbed := ref.Clone()
	perturbed[0] += 1e-3
	m.Observe(perturbed, 1.0, 0.1, 2)

	if math.Abs(m.Value()-1e-3) > 1e-12 {
		t.Errorf("expected error 1e-3, got %g", m.Value())
	}
}
