package problems

import "github.com/askeland/multistep/internal/ode"

// VanDerPol is the Van der Pol oscillator; Mu controls how strongly the
// step controller has to work around the relaxation spikes.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 1.0}
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Derivative(x ode.State, t float64) (ode.State, error) {
	return ode.State{
		x[1],
		v.Mu*(1-x[0]*x[0])*x[1] - x[0],
	}, nil
}

func (v *VanDerPol) Initial() ode.State {
	return ode.State{2, 0}
}
