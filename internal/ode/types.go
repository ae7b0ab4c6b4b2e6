package ode

import (
	"context"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Func computes d(state)/dt at time t. It may perform collective
// communication, so the solver calls it exactly once per attempted step
// and never speculatively.
type Func func(x State, t float64) (State, error)

type Problem interface {
	Dim() int
	Initial() State
	Derivative(x State, t float64) (State, error)
}

// ExactSolution is implemented by problems with a known closed-form
// solution, used for error reporting and accuracy tests.
type ExactSolution interface {
	Exact(t float64) State
}

// Monitor is called at every output boundary with the simulated time, the
// output interval index and the total number of intervals. A non-nil
// error aborts the run.
type Monitor func(simtime float64, iter, nout int) error

// TimestepMonitor is called after every accepted internal step.
type TimestepMonitor func(simtime, lastdt float64)

type MonitorPosition int

const (
	MonitorFront MonitorPosition = iota
	MonitorBack
)

type Solver interface {
	Init(nout int, tstep float64) error
	Run(ctx context.Context) error
	CurrentTimestep() float64
	SetMaxTimestep(dt float64)
	ResetInternalFields()
	AddMonitor(m Monitor, pos MonitorPosition)
	AddTimestepMonitor(m TimestepMonitor)
	State() State
	Stats() Stats
}

type Options struct {
	ATol            float64 // absolute tolerance
	RTol            float64 // relative tolerance
	MaxTimestep     float64 // unbounded if negative
	MinTimestep     float64
	StartTimestep   float64 // first internal dt; falls back to the output interval
	MXStep          int     // internal step cap per output interval
	MaxRejects      int     // consecutive rejections before giving up
	Adaptive        bool
	AdaptiveOrder   bool
	MaximumOrder    int
	DtFac           float64 // safety factor on the new-dt estimate
	RejectShrink    float64 // fixed dt shrink on rejection
	FollowHighOrder bool    // report the higher-order candidate as the solution

	// Order adaptation policy: the order is raised when the last
	// OrderWindow accepted error norms all fall below
	// OrderRaiseThreshold, lowered when they all exceed
	// OrderLowerThreshold.
	OrderWindow         int
	OrderRaiseThreshold float64
	OrderLowerThreshold float64
}

func DefaultOptions() Options {
	return Options{
		ATol:                1e-12,
		RTol:                1e-5,
		MaxTimestep:         -1,
		MinTimestep:         1e-14,
		MXStep:              500,
		MaxRejects:          20,
		Adaptive:            true,
		AdaptiveOrder:       false,
		MaximumOrder:        4,
		DtFac:               0.75,
		RejectShrink:        0.5,
		FollowHighOrder:     true,
		OrderWindow:         3,
		OrderRaiseThreshold: 0.1,
		OrderLowerThreshold: 0.7,
	}
}

type Stats struct {
	Accepted int
	Rejected int
	RHSEvals int
	Order    int
	Timestep float64
}

// Result collects the per-boundary samples of a completed (or aborted)
// run.
type Result struct {
	Times   []float64
	States  []State
	Dts     []float64
	Orders  []int
	Stats   Stats
	Metrics map[string]float64
}
