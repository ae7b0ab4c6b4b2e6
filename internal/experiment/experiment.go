package experiment

import (
	"context"
	"fmt"

	"github.com/askeland/multistep/internal/metrics"
	"github.com/askeland/multistep/internal/ode"
)

type Config struct {
	Problem string
	Solver  string
	Nout    int
	Tstep   float64
	Options ode.Options
}

// Experiment wires a problem, a solver and a metric set into a single
// run that produces an ode.Result.
type Experiment struct {
	cfg     Config
	problem ode.Problem
	solver  ode.Solver
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(prob ode.Problem, slv ode.Solver, ms []metrics.Metric) error {
	e.problem = prob
	e.solver = slv
	e.metrics = ms
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*ode.Result, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	if err := e.solver.Init(e.cfg.Nout, e.cfg.Tstep); err != nil {
		return nil, err
	}

	result := &ode.Result{
		Metrics: make(map[string]float64),
	}

	// Metrics follow every accepted internal step.
	e.solver.AddTimestepMonitor(func(simtime, lastdt float64) {
		x := e.solver.State()
		order := e.solver.Stats().Order
		for _, m := range e.metrics {
			m.Observe(x, simtime, lastdt, order)
		}
	})

	// Output-boundary samples build the stored trajectory.
	sample := func(simtime float64) {
		stats := e.solver.Stats()
		result.Times = append(result.Times, simtime)
		result.States = append(result.States, e.solver.State())
		result.Dts = append(result.Dts, stats.Timestep)
		result.Orders = append(result.Orders, stats.Order)
	}
	sample(0)
	e.solver.AddMonitor(func(simtime float64, iter, nout int) error {
		sample(simtime)
		return nil
	}, ode.MonitorBack)

	if err := e.solver.Run(ctx); err != nil {
		return nil, err
	}

	result.Stats = e.solver.Stats()
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	if total := result.Stats.Accepted + result.Stats.Rejected; total > 0 {
		result.Metrics["rejection_ratio"] = float64(result.Stats.Rejected) / float64(total)
	}

	return result, nil
}

// Solver exposes the underlying solver for adding extra observers
// before Run.
func (e *Experiment) Solver() ode.Solver {
	return e.solver
}
