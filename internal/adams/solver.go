package adams

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/askeland/multistep/internal/history"
	"github.com/askeland/multistep/internal/ode"
)

// Solver advances a state vector between requested output times with an
// explicit Adams-Bashforth scheme on a non-uniform history of past steps.
// It owns all of its internal state and is driven from a single
// goroutine.
type Solver struct {
	rhs  ode.Func
	opts ode.Options

	state   ode.State
	simtime float64

	timestep    float64 // preferred internal dt
	maxTimestep float64
	outTimestep float64
	nsteps      int
	order       int
	lastOrder   int // effective order of the last accepted step

	hist *history.Buffer
	ctrl *controller

	monitors   []ode.Monitor
	tsMonitors []ode.TimestepMonitor

	stats       ode.Stats
	initialized bool
}

var _ ode.Solver = (*Solver)(nil)

func New(rhs ode.Func, x0 ode.State, opts ode.Options) *Solver {
	return &Solver{
		rhs:   rhs,
		opts:  opts,
		state: x0.Clone(),
	}
}

// Init validates the options, primes the history with one derivative
// evaluation at the current time and chooses the starting timestep. The
// run never starts on a configuration error.
func (s *Solver) Init(nout int, tstep float64) error {
	if err := s.validate(nout, tstep); err != nil {
		return err
	}

	s.nsteps = nout
	s.outTimestep = tstep

	s.maxTimestep = s.opts.MaxTimestep
	if s.maxTimestep <= 0 {
		s.maxTimestep = math.Inf(1)
	}

	s.timestep = s.opts.StartTimestep
	if s.timestep <= 0 {
		s.timestep = tstep
	}
	s.timestep = math.Min(s.timestep, s.maxTimestep)

	s.order = s.opts.MaximumOrder
	if s.opts.AdaptiveOrder {
		s.order = 1
	}
	s.lastOrder = 1

	s.hist = history.New(s.opts.MaximumOrder)
	s.ctrl = newController(s.opts)
	s.stats = ode.Stats{}

	f, err := s.rhs(s.state, s.simtime)
	if err != nil {
		return err
	}
	s.stats.RHSEvals++
	s.hist.Push(s.simtime, f)
	s.seedTimestep(f)

	s.initialized = true
	return nil
}

// seedTimestep lowers the preferred timestep to a tolerance-derived
// estimate before the first step from an empty history, where the error
// estimate can only compare against the constant prediction.
func (s *Solver) seedTimestep(f ode.State) {
	if !s.opts.Adaptive {
		return
	}
	if est := s.ctrl.startTimestep(s.state, f); est < s.timestep {
		s.timestep = s.ctrl.clampDt(est, s.maxTimestep)
	}
}

func (s *Solver) validate(nout int, tstep float64) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ode.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case nout < 1:
		return fail("nout must be at least 1, got %d", nout)
	case tstep <= 0:
		return fail("output timestep must be positive, got %g", tstep)
	case s.opts.MaximumOrder < 1:
		return fail("maximum order must be at least 1, got %d", s.opts.MaximumOrder)
	case s.opts.ATol <= 0:
		return fail("absolute tolerance must be positive, got %g", s.opts.ATol)
	case s.opts.RTol < 0:
		return fail("relative tolerance must not be negative, got %g", s.opts.RTol)
	case s.opts.MaxTimestep > 0 && s.opts.MaxTimestep > tstep:
		return fail("max timestep %g exceeds output interval %g", s.opts.MaxTimestep, tstep)
	case s.opts.MinTimestep <= 0:
		return fail("minimum timestep must be positive, got %g", s.opts.MinTimestep)
	case s.opts.DtFac <= 0 || s.opts.DtFac >= 1:
		return fail("dt factor must be in (0,1), got %g", s.opts.DtFac)
	case s.opts.RejectShrink <= 0 || s.opts.RejectShrink >= 1:
		return fail("reject shrink factor must be in (0,1), got %g", s.opts.RejectShrink)
	case s.opts.MXStep < 1:
		return fail("mxstep must be at least 1, got %d", s.opts.MXStep)
	case s.opts.MaxRejects < 1:
		return fail("max rejections must be at least 1, got %d", s.opts.MaxRejects)
	case s.opts.AdaptiveOrder && s.opts.OrderWindow < 1:
		return fail("order window must be at least 1, got %d", s.opts.OrderWindow)
	}
	return nil
}

// Run advances through every output interval, invoking the monitors at
// each boundary. Internal steps always land exactly on the boundaries.
// Cancellation is honoured between internal steps only.
func (s *Solver) Run(ctx context.Context) error {
	if !s.initialized {
		return ode.ErrNotInitialized
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for out := 0; out < s.nsteps; out++ {
		target := s.simtime + s.outTimestep

		internal := 0
		rejects := 0
		for running := true; running; {
			if err := ctx.Err(); err != nil {
				return err
			}
			internal++
			if internal > s.opts.MXStep {
				return &ode.StepError{
					Step: internal, Time: s.simtime,
					Wrapped: fmt.Errorf("%w: mxstep=%d exceeded before reaching t=%g",
						ode.ErrConvergence, s.opts.MXStep, target),
				}
			}

			// Derivative at the step start. Retries at the same
			// starting time reuse the entry already in history;
			// rejected attempts never insert anything.
			fresh := s.hist.Len() == 0
			if fresh || s.hist.Time(0) != s.simtime {
				f, err := s.rhs(s.state, s.simtime)
				if err != nil {
					return err
				}
				s.stats.RHSEvals++
				if s.opts.Adaptive && !f.IsValid() {
					// Non-finite derivative: keep it out of the
					// history and retry as a rejection.
					s.stats.Rejected++
					rejects++
					if rejects > s.opts.MaxRejects {
						return &ode.StepError{
							Step: internal, Time: s.simtime,
							Wrapped: fmt.Errorf("%w: repeated non-finite derivative: %w",
								ode.ErrConvergence, ode.ErrNumericalAnomaly),
						}
					}
					s.timestep = s.ctrl.rejectTimestep(s.timestep, s.maxTimestep)
					continue
				}
				s.hist.Push(s.simtime, f)
				if fresh {
					s.seedTimestep(f)
				}
			}

			preferred := s.timestep
			dt := s.timestep
			final := false
			if remaining := target - s.simtime; dt >= remaining {
				dt = remaining
				final = true
			}

			effOrder := s.order
			if n := s.hist.Len(); effOrder > n {
				effOrder = n
			}

			solution, alternate := s.takeStep(s.simtime, dt, effOrder, s.opts.Adaptive)

			if s.opts.Adaptive {
				norm := 0.0
				if alternate != nil {
					if !solution.IsValid() || !alternate.IsValid() {
						norm = math.Inf(1)
					} else {
						norm = s.ctrl.errorNorm(s.state, solution, alternate)
					}
				} else if !solution.IsValid() {
					norm = math.Inf(1)
				}

				if norm > 1 {
					s.stats.Rejected++
					rejects++
					if rejects > s.opts.MaxRejects {
						return &ode.StepError{
							Step: internal, Time: s.simtime,
							Wrapped: fmt.Errorf("%w: %d consecutive step rejections",
								ode.ErrConvergence, rejects),
						}
					}
					s.timestep = s.ctrl.rejectTimestep(dt, s.maxTimestep)
					if s.opts.AdaptiveOrder && s.order > 1 {
						s.order--
						s.hist.TruncateTo(s.order)
					}
					continue
				}

				if alternate != nil {
					dtNew := s.ctrl.nextTimestep(dt, norm, effOrder, s.maxTimestep)
					if final {
						// Boundary-clipped step: keep the preferred
						// timestep rather than the clipped estimate.
						s.timestep = preferred
					} else {
						s.timestep = dtNew
					}
					s.ctrl.noteAccepted(norm)
					if s.opts.AdaptiveOrder {
						next := s.ctrl.adaptOrder(s.order, s.hist.Len())
						if next < s.order {
							s.hist.TruncateTo(next)
						}
						s.order = next
					}
				}
			}

			s.state = solution
			s.stats.Accepted++
			s.lastOrder = effOrder
			rejects = 0
			if final {
				s.simtime = target
				running = false
			} else {
				s.simtime += dt
			}

			for _, m := range s.tsMonitors {
				m(s.simtime, dt)
			}
		}

		for _, m := range s.monitors {
			if err := m(s.simtime, out, s.nsteps); err != nil {
				return err
			}
		}
	}
	return nil
}

// CurrentTimestep reports the preferred internal timestep.
func (s *Solver) CurrentTimestep() float64 { return s.timestep }

// SetMaxTimestep lowers or raises the timestep ceiling; non-positive
// values are ignored. The current timestep is clipped to the new ceiling.
func (s *Solver) SetMaxTimestep(dt float64) {
	if dt <= 0 {
		return
	}
	s.maxTimestep = dt
	if s.timestep > dt {
		s.timestep = dt
	}
}

// ResetInternalFields empties the derivative history after an externally
// driven state change. The next step reseeds from the current state and
// runs at first order until the history refills.
func (s *Solver) ResetInternalFields() {
	if s.hist != nil {
		s.hist.Clear()
	}
	if s.ctrl != nil {
		s.ctrl.reset()
	}
	if s.opts.AdaptiveOrder {
		s.order = 1
	}
}

// SetState replaces the current state vector, e.g. after a restart. The
// caller should follow with ResetInternalFields so stale history is not
// extrapolated from.
func (s *Solver) SetState(x ode.State) {
	s.state = x.Clone()
}

// State returns a copy of the current state vector.
func (s *Solver) State() ode.State { return s.state.Clone() }

// Time reports the current simulated time.
func (s *Solver) Time() float64 { return s.simtime }

// Order reports the current method order.
func (s *Solver) Order() int { return s.order }

func (s *Solver) AddMonitor(m ode.Monitor, pos ode.MonitorPosition) {
	if pos == ode.MonitorFront {
		s.monitors = append([]ode.Monitor{m}, s.monitors...)
		return
	}
	s.monitors = append(s.monitors, m)
}

// RemoveMonitor drops a previously added monitor. The argument must be
// the same function value that was passed to AddMonitor.
func (s *Solver) RemoveMonitor(m ode.Monitor) {
	target := reflect.ValueOf(m).Pointer()
	for i, existing := range s.monitors {
		if reflect.ValueOf(existing).Pointer() == target {
			s.monitors = append(s.monitors[:i], s.monitors[i+1:]...)
			return
		}
	}
}

func (s *Solver) AddTimestepMonitor(m ode.TimestepMonitor) {
	s.tsMonitors = append(s.tsMonitors, m)
}

// Stats reports the run counters. Order is the effective order of the
// last accepted step, which trails the nominal order while the history
// is still filling.
func (s *Solver) Stats() ode.Stats {
	st := s.stats
	st.Order = s.lastOrder
	st.Timestep = s.timestep
	return st
}
