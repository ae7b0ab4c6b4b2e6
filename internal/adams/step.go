package adams

import (
	"gonum.org/v1/gonum/floats"

	"github.com/askeland/multistep/internal/ode"
)

// extrapolate forms the candidate state one step of size dt ahead of tn
// at the given order, using the order newest history entries. It performs
// no derivative evaluations.
func (s *Solver) extrapolate(tn, dt float64, order int) ode.State {
	offsets := make([]float64, order)
	for i := 0; i < order; i++ {
		offsets[i] = s.hist.Time(i) - tn
	}
	coeffs := coefficients(dt, offsets)

	result := s.state.Clone()
	for i := 0; i < order; i++ {
		floats.AddScaled(result, dt*coeffs[i], s.hist.Deriv(i))
	}
	return result
}

// takeStep builds the candidate solution for one step and, when an error
// estimate is wanted, a second candidate at the adjacent order computed
// from the same history. Which of the two is reported as the solution
// follows the FollowHighOrder option; the alternate is returned for the
// error estimate. With a single history entry the alternate is the
// zero-order (constant) prediction, so even the startup step is
// error-controlled.
func (s *Solver) takeStep(tn, dt float64, order int, withEstimate bool) (solution, alternate ode.State) {
	if !withEstimate {
		return s.extrapolate(tn, dt, order), nil
	}

	other := order - 1
	if order == 1 {
		// At order one the adjacent scheme is order two, which needs
		// a second history entry.
		if s.hist.Len() < 2 {
			return s.extrapolate(tn, dt, order), s.state.Clone()
		}
		other = 2
	}

	high, low := order, other
	if other > order {
		high, low = other, order
	}

	highState := s.extrapolate(tn, dt, high)
	lowState := s.extrapolate(tn, dt, low)

	if s.opts.FollowHighOrder {
		return highState, lowState
	}
	return lowState, highState
}
