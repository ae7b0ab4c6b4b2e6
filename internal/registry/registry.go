// Package registry maps solver and problem names to constructors. It is
// an explicit value populated at startup and owned by the caller; there
// is no mutable global state.
package registry

import (
	"fmt"
	"sort"

	"github.com/askeland/multistep/internal/adams"
	"github.com/askeland/multistep/internal/metrics"
	"github.com/askeland/multistep/internal/ode"
	"github.com/askeland/multistep/internal/problems"
)

type SolverFunc func(rhs ode.Func, x0 ode.State, opts ode.Options) ode.Solver

type Registry struct {
	solvers  map[string]SolverFunc
	problems map[string]func() ode.Problem
}

func New() *Registry {
	r := &Registry{
		solvers:  make(map[string]SolverFunc),
		problems: make(map[string]func() ode.Problem),
	}

	r.solvers["adams-bashforth"] = func(rhs ode.Func, x0 ode.State, opts ode.Options) ode.Solver {
		return adams.New(rhs, x0, opts)
	}

	r.problems["decay"] = func() ode.Problem { return problems.NewDecay() }
	r.problems["oscillator"] = func() ode.Problem { return problems.NewOscillator() }
	r.problems["polynomial"] = func() ode.Problem { return problems.NewPolynomial() }
	r.problems["vanderpol"] = func() ode.Problem { return problems.NewVanDerPol() }

	return r
}

func (r *Registry) GetSolver(name string) (SolverFunc, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
	return fn, nil
}

func (r *Registry) GetProblem(name string) (ode.Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return fn(), nil
}

// DefaultMetrics builds the metric set a run records, based on what the
// problem can report about itself.
func (r *Registry) DefaultMetrics(prob ode.Problem) []metrics.Metric {
	set := []metrics.Metric{
		metrics.NewMeanStepSize(),
		metrics.NewMaxOrder(),
		metrics.NewStability(1e6),
	}
	if exact, ok := prob.(ode.ExactSolution); ok {
		set = append(set, metrics.NewGlobalError(exact.Exact))
	}
	if h, ok := prob.(interface{ Energy(x ode.State) float64 }); ok {
		set = append(set, metrics.NewEnergyDrift(h.Energy))
	}
	return set
}

func (r *Registry) Solvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Problems() []string {
	names := make([]string, 0, len(r.problems))
	for name := range r.problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
