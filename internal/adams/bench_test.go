package adams

import (
	"context"
	"testing"

	"github.com/askeland/multistep/internal/ode"
)

func benchRHS(x ode.State, t float64) (ode.State, error) {
	dx := make(ode.State, len(x))
	for i := range x {
		dx[i] = -0.1 * x[i]
	}
	return dx, nil
}

func BenchmarkCoefficientsOrder4(b *testing.B) {
	offsets := []float64{0, -0.01, -0.023, -0.031}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		coefficients(0.01, offsets)
	}
}

func BenchmarkCoefficientsOrder8(b *testing.B) {
	offsets := []float64{0, -0.01, -0.02, -0.03, -0.04, -0.05, -0.06, -0.07}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		coefficients(0.01, offsets)
	}
}

func BenchmarkRunFixedOrder(b *testing.B) {
	x0 := make(ode.State, 100)
	for i := range x0 {
		x0[i] = 1.0
	}

	opts := ode.DefaultOptions()
	opts.Adaptive = false
	opts.StartTimestep = 1e-3
	opts.MXStep = 100000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := New(benchRHS, x0, opts)
		if err := s.Init(1, 1.0); err != nil {
			b.Fatal(err)
		}
		if err := s.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunAdaptive(b *testing.B) {
	x0 := make(ode.State, 100)
	for i := range x0 {
		x0[i] = 1.0
	}

	opts := ode.DefaultOptions()
	opts.StartTimestep = 1e-3

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := New(benchRHS, x0, opts)
		if err := s.Init(1, 1.0); err != nil {
			b.Fatal(err)
		}
		if err := s.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
