package optim

import (
	"context"
	"testing"

	"github.com/askeland/multistep/internal/adams"
	"github.com/askeland/multistep/internal/experiment"
	"github.com/askeland/multistep/internal/metrics"
	"github.com/askeland/multistep/internal/ode"
	"github.com/askeland/multistep/internal/problems"
)

func buildDecayExperiment(params map[string]float64) (*experiment.Experiment, error) {
	prob := problems.NewDecay()
	opts := ode.DefaultOptions()
	if v, ok := params["dtfac"]; ok {
		opts.DtFac = v
	}
	if v, ok := params["rtol"]; ok {
		opts.RTol = v
	}

	exp := experiment.New(experiment.Config{
		Problem: "decay",
		Solver:  "adams-bashforth",
		Nout:    5,
		Tstep:   0.2,
		Options: opts,
	})
	slv := adams.New(prob.Derivative, prob.Initial(), opts)
	if err := exp.Setup(prob, slv, []metrics.Metric{metrics.NewGlobalError(prob.Exact)}); err != nil {
		return nil, err
	}
	return exp, nil
}

func TestGridSearchFindsLowestScore(t *testing.T) {
	gs := NewGridSearch(
		[]string{"rtol"},
		[][]float64{{1e-3, 1e-7}},
	)

	// Scoring by accuracy must pick the tighter tolerance.
	bestParams, bestScore, err := gs.Search(context.Background(), buildDecayExperiment,
		func(result *ode.Result) float64 {
			return result.Metrics["global_error"]
		})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if bestParams == nil {
		t.Fatal("expected best parameters")
	}
	if bestParams["rtol"] != 1e-7 {
		t.Errorf("expected rtol 1e-7, got %g", bestParams["rtol"])
	}
	if bestScore <= 0 {
		t.Errorf("expected positive score, got %g", bestScore)
	}
}

func TestGridSearchCoversFullGrid(t *testing.T) {
	gs := NewGridSearch(
		[]string{"dtfac", "rtol"},
		[][]float64{{0.5, 0.75}, {1e-3, 1e-5}},
	)

	seen := 0
	_, _, err := gs.Search(context.Background(),
		func(params map[string]float64) (*experiment.Experiment, error) {
			seen++
			return buildDecayExperiment(params)
		},
		func(result *ode.Result) float64 {
			return float64(result.Stats.RHSEvals)
		})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if seen != 4 {
		t.Errorf("expected 4 candidates, got %d", seen)
	}
}
