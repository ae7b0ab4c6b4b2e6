package analysis

import "math"

// ObservedOrder estimates the convergence order from matched slices of
// step sizes and global errors, as the least-squares slope of
// log(error) against log(dt). Non-positive pairs are skipped; fewer
// than two usable pairs yield NaN.
func ObservedOrder(dts, errs []float64) float64 {
	n := len(dts)
	if len(errs) < n {
		n = len(errs)
	}

	var xs, ys []float64
	for i := 0; i < n; i++ {
		if dts[i] <= 0 || errs[i] <= 0 {
			continue
		}
		xs = append(xs, math.Log(dts[i]))
		ys = append(ys, math.Log(errs[i]))
	}
	if len(xs) < 2 {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(len(xs))
	meanY := sumY / float64(len(ys))

	var num, den float64
	for i := range xs {
		num += (xs[i] - meanX) * (ys[i] - meanY)
		den += (xs[i] - meanX) * (xs[i] - meanX)
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
