// Package adams implements an adaptive-order, adaptive-timestep explicit
// Adams-Bashforth integrator on a non-uniform step history.
package adams

// coefficients computes the weights of the explicit Adams-Bashforth
// formula
//
//	x(t+dt) = x(t) + dt * sum_i c_i * f_i
//
// for derivative samples taken at the given time offsets relative to the
// step start (offsets[0] is the newest, normally 0; older offsets are
// negative). Each weight is the analytic integral over [0, dt] of the
// Lagrange basis polynomial attached to that sample, scaled by 1/dt, so
// the formula integrates exactly any polynomial of degree below
// len(offsets). The weights are valid only for this exact offset
// sequence and dt.
func coefficients(dt float64, offsets []float64) []float64 {
	p := len(offsets)
	out := make([]float64, p)
	poly := make([]float64, p)

	for i := 0; i < p; i++ {
		// Numerator polynomial prod_{j!=i} (s - offsets[j]) and its
		// denominator prod_{j!=i} (offsets[i] - offsets[j]).
		poly[0] = 1
		deg := 0
		denom := 1.0
		for j := 0; j < p; j++ {
			if j == i {
				continue
			}
			poly[deg+1] = 0
			for k := deg; k >= 0; k-- {
				poly[k+1] += poly[k]
				poly[k] *= -offsets[j]
			}
			deg++
			denom *= offsets[i] - offsets[j]
		}

		// Integrate over [0, dt]: int_0^dt s^m ds = dt^(m+1)/(m+1),
		// then scale by 1/(dt*denom). One power of dt cancels.
		integral := 0.0
		dtPow := 1.0
		for m := 0; m <= deg; m++ {
			integral += poly[m] * dtPow / float64(m+1)
			dtPow *= dt
		}
		out[i] = integral / denom

		for k := range poly {
			poly[k] = 0
		}
	}
	return out
}
