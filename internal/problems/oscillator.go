package problems

import (
	"math"

	"github.com/askeland/multistep/internal/ode"
)

// Oscillator is the undamped harmonic oscillator x'' = -omega^2 x,
// written as the first-order pair (position, velocity).
type Oscillator struct {
	Omega float64
	X0    float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1.0, X0: 1.0}
}

func (o *Oscillator) Dim() int { return 2 }

func (o *Oscillator) Derivative(x ode.State, t float64) (ode.State, error) {
	return ode.State{x[1], -o.Omega * o.Omega * x[0]}, nil
}

func (o *Oscillator) Initial() ode.State {
	return ode.State{o.X0, 0}
}

func (o *Oscillator) Exact(t float64) ode.State {
	return ode.State{
		o.X0 * math.Cos(o.Omega*t),
		-o.X0 * o.Omega * math.Sin(o.Omega*t),
	}
}

// Energy is conserved by the exact flow; drift measures integrator error.
func (o *Oscillator) Energy(x ode.State) float64 {
	return 0.5 * (x[1]*x[1] + o.Omega*o.Omega*x[0]*x[0])
}
