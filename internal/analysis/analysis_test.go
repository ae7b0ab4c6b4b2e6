package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumPeak(t *testing.T) {
	// 8 full cycles over 256 samples puts the peak in bin 8.
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := range ps {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 8 {
		t.Errorf("expected peak at bin 8, got %d", maxIdx)
	}
}

func TestPadToPow2(t *testing.T) {
	padded := PadToPow2(make([]float64, 100))
	if len(padded) != 128 {
		t.Errorf("expected length 128, got %d", len(padded))
	}

	exact := make([]float64, 64)
	if len(PadToPow2(exact)) != 64 {
		t.Error("power-of-two input should pass through")
	}
}

func TestObservedOrderCubic(t *testing.T) {
	dts := []float64{0.1, 0.05, 0.025, 0.0125}
	errs := make([]float64, len(dts))
	for i, dt := range dts {
		errs[i] = 2.5 * dt * dt * dt
	}

	order := ObservedOrder(dts, errs)
	if math.Abs(order-3.0) > 1e-10 {
		t.Errorf("expected order 3, got %g", order)
	}
}

func TestObservedOrderDegenerate(t *testing.T) {
	if !math.IsNaN(ObservedOrder([]float64{0.1}, []float64{1e-3})) {
		t.Error("expected NaN for a single sample")
	}
	if !math.IsNaN(ObservedOrder([]float64{0.1, 0.1}, []float64{1e-3, 1e-3})) {
		t.Error("expected NaN for constant dt")
	}
}
