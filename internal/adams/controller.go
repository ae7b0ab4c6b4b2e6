package adams

import (
	"math"

	"github.com/askeland/multistep/internal/ode"
)

// Clamps on the step-size scale factor, so a single wild error estimate
// cannot collapse or explode the timestep.
const (
	minScale = 0.2
	maxScale = 10.0
)

// controller judges step candidates against the tolerances and derives
// the next timestep and order.
type controller struct {
	opts   ode.Options
	recent []float64 // error norms of the most recent accepted steps
}

func newController(opts ode.Options) *controller {
	return &controller{opts: opts}
}

// errorNorm reduces the componentwise difference between the two
// candidates to a single scalar: each component is scaled by
// atol + rtol*max(|x|, |candidate|), then combined by root mean square.
// The step is acceptable iff the result is at most 1.
func (c *controller) errorNorm(prev, solution, alternate ode.State) float64 {
	sum := 0.0
	for i := range solution {
		scale := c.opts.ATol + c.opts.RTol*math.Max(math.Abs(prev[i]), math.Abs(solution[i]))
		e := (solution[i] - alternate[i]) / scale
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(solution)))
}

// nextTimestep estimates the timestep for the following step from an
// accepted step of size dt with the given error norm at the given order.
func (c *controller) nextTimestep(dt, norm float64, order int, maxDt float64) float64 {
	scale := maxScale
	if norm > 0 {
		scale = c.opts.DtFac * math.Pow(norm, -1.0/float64(order+1))
	}
	scale = math.Min(math.Max(scale, minScale), maxScale)
	return c.clampDt(dt*scale, maxDt)
}

// startTimestep estimates a safe first timestep from the state and its
// derivative at the starting point. The increment of a first-order step
// of this size stays inside the tolerances, and the step is further
// bounded by the characteristic time scale of the solution (the dny/dnf
// ratio of the Hairer starting-step estimate). Returns +Inf when the
// derivative is negligible and there is nothing to bound against.
func (c *controller) startTimestep(x, f ode.State) float64 {
	dnf, dny := 0.0, 0.0
	for i := range x {
		sc := c.opts.ATol + c.opts.RTol*math.Abs(x[i])
		dnf += (f[i] / sc) * (f[i] / sc)
		dny += (x[i] / sc) * (x[i] / sc)
	}
	if dnf < 1e-10 {
		return math.Inf(1)
	}
	dt := c.opts.DtFac * math.Sqrt(float64(len(x))/dnf)
	if dny >= 1e-10 {
		dt = math.Min(dt, 1e-2*math.Sqrt(dny/dnf))
	}
	return dt
}

// rejectTimestep shrinks the timestep after a rejected step.
func (c *controller) rejectTimestep(dt, maxDt float64) float64 {
	return c.clampDt(dt*c.opts.RejectShrink, maxDt)
}

func (c *controller) clampDt(dt, maxDt float64) float64 {
	if maxDt > 0 && dt > maxDt {
		dt = maxDt
	}
	if dt < c.opts.MinTimestep {
		dt = c.opts.MinTimestep
	}
	return dt
}

// noteAccepted records the error norm of an accepted step for the order
// trend.
func (c *controller) noteAccepted(norm float64) {
	c.recent = append(c.recent, norm)
	if len(c.recent) > c.opts.OrderWindow {
		c.recent = c.recent[1:]
	}
}

// adaptOrder raises the order when the recent accepted steps were all
// comfortably within tolerance, lowers it when they were all close to the
// rejection boundary. Raising is bounded by the maximum order and by the
// available history depth. The trend window resets on any change.
func (c *controller) adaptOrder(order, histDepth int) int {
	if len(c.recent) < c.opts.OrderWindow {
		return order
	}

	allBelow, allAbove := true, true
	for _, n := range c.recent {
		if n > c.opts.OrderRaiseThreshold {
			allBelow = false
		}
		if n < c.opts.OrderLowerThreshold {
			allAbove = false
		}
	}

	switch {
	case allBelow && order < c.opts.MaximumOrder && order < histDepth:
		order++
		c.recent = c.recent[:0]
	case allAbove && order > 1:
		order--
		c.recent = c.recent[:0]
	}
	return order
}

func (c *controller) reset() {
	c.recent = c.recent[:0]
}
