package problems

import (
	"math"

	"github.com/askeland/multistep/internal/ode"
)

// Decay is the scalar test problem x' = -rate * x.
type Decay struct {
	Rate float64
	X0   float64
}

func NewDecay() *Decay {
	return &Decay{Rate: 1.0, X0: 1.0}
}

func (d *Decay) Dim() int { return 1 }

func (d *Decay) Derivative(x ode.State, t float64) (ode.State, error) {
	return ode.State{-d.Rate * x[0]}, nil
}

func (d *Decay) Initial() ode.State {
	return ode.State{d.X0}
}

func (d *Decay) Exact(t float64) ode.State {
	return ode.State{d.X0 * math.Exp(-d.Rate*t)}
}
