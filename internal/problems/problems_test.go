package problems

import (
	"math"
	"testing"

	"github.com/askeland/multistep/internal/ode"
)

func TestDecayDerivative(t *testing.T) {
	d := NewDecay()
	dx, err := d.Derivative(ode.State{2.0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if dx[0] != -2.0 {
		t.Errorf("expected -2.0, got %v", dx[0])
	}
	if got := d.Exact(1.0)[0]; math.Abs(got-math.Exp(-1)) > 1e-15 {
		t.Errorf("exact solution wrong: %v", got)
	}
}

func TestOscillatorEnergyOfExactSolution(t *testing.T) {
	o := NewOscillator()
	e0 := o.Energy(o.Initial())
	for _, tv := range []float64{0.3, 1.7, 9.2} {
		if e := o.Energy(o.Exact(tv)); math.Abs(e-e0) > 1e-12 {
			t.Errorf("t=%v: energy %v differs from %v", tv, e, e0)
		}
	}
}

func TestPolynomialExactConsistency(t *testing.T) {
	p := &Polynomial{Degree: 3}
	// d/dt of Exact must equal Derivative.
	tv := 0.8
	h := 1e-6
	fd := (p.Exact(tv+h)[0] - p.Exact(tv-h)[0]) / (2 * h)
	dx, _ := p.Derivative(nil, tv)
	if math.Abs(fd-dx[0]) > 1e-8 {
		t.Errorf("derivative %v does not match exact slope %v", dx[0], fd)
	}
}

func TestVanDerPolEquilibrium(t *testing.T) {
	v := NewVanDerPol()
	dx, err := v.Derivative(ode.State{0, 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if dx[0] != 0 || dx[1] != 0 {
		t.Errorf("origin should be an equilibrium, got %v", dx)
	}
}

func TestProblemInterfaces(t *testing.T) {
	ps := []ode.Problem{NewDecay(), NewOscillator(), NewPolynomial(), NewVanDerPol()}
	for _, p := range ps {
		if len(p.Initial()) != p.Dim() {
			t.Errorf("initial state length %d does not match dim %d", len(p.Initial()), p.Dim())
		}
	}
	for _, p := range ps[:3] {
		if _, ok := p.(ode.ExactSolution); !ok {
			t.Errorf("%T should expose an exact solution", p)
		}
	}
}
