package metrics

import (
	"math"

	"github.com/askeland/multistep/internal/ode"
)

// GlobalError tracks the maximum componentwise deviation from a known
// exact solution across all observed samples.
type GlobalError struct {
	name  string
	exact func(t float64) ode.State
	max   float64
}

func NewGlobalError(exact func(t float64) ode.State) *GlobalError {
	return &GlobalError{
		name:  "global_error",
		exact: exact,
	}
}

func (g *GlobalError) Name() string { return g.name }

func (g *GlobalError) Observe(x ode.State, t, dt float64, order int) {
	ref := g.exact(t)
	for i := range x {
		if i >= len(ref) {
			break
		}
		diff := math.Abs(x[i] - ref[i])
		g.max = math.Max(g.max, diff)
	}
}

func (g *GlobalError) Value() float64 { return g.max }

func (g *GlobalError) Reset() { g.max = 0 }
