package problems

import (
	"math"

	"github.com/askeland/multistep/internal/ode"
)

// Polynomial is the time-only problem x' = t^Degree, whose solution is a
// polynomial the multistep formula integrates exactly once its order
// exceeds the degree.
type Polynomial struct {
	Degree int
}

func NewPolynomial() *Polynomial {
	return &Polynomial{Degree: 2}
}

func (p *Polynomial) Dim() int { return 1 }

func (p *Polynomial) Derivative(x ode.State, t float64) (ode.State, error) {
	return ode.State{math.Pow(t, float64(p.Degree))}, nil
}

func (p *Polynomial) Initial() ode.State {
	return ode.State{0}
}

func (p *Polynomial) Exact(t float64) ode.State {
	k := float64(p.Degree)
	return ode.State{math.Pow(t, k+1) / (k + 1)}
}
