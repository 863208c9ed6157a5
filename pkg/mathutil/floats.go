// Package mathutil provides common numeric helpers shared by the analysis
// pipeline.
package mathutil

import "math"

// NearZero reports whether value lies strictly within threshold of zero.
func NearZero(value, threshold float64) bool {
	return math.Abs(value) < threshold
}

// MaxAbs returns the largest absolute value in xs, or 0 for empty input.
func MaxAbs(xs []float64) float64 {
	maxAbs := 0.0
	for _, x := range xs {
		if math.Abs(x) > maxAbs {
			maxAbs = math.Abs(x)
		}
	}
	return maxAbs
}

// RangeAbs returns the spread of absolute values, max|x| - min|x|, or 0 for
// empty input.
func RangeAbs(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	minAbs := math.Abs(xs[0])
	maxAbs := minAbs
	for _, x := range xs[1:] {
		a := math.Abs(x)
		if a < minAbs {
			minAbs = a
		}
		if a > maxAbs {
			maxAbs = a
		}
	}
	return maxAbs - minAbs
}

// Ptp returns the peak-to-peak spread max(xs) - min(xs), or 0 for empty
// input.
func Ptp(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	minVal, maxVal := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minVal {
			minVal = x
		}
		if x > maxVal {
			maxVal = x
		}
	}
	return maxVal - minVal
}

// ArgMax returns the index of the largest value in xs, or -1 for empty
// input. Ties resolve to the first occurrence.
func ArgMax(xs []float64) int {
	idx := -1
	for i, x := range xs {
		if idx == -1 || x > xs[idx] {
			idx = i
		}
	}
	return idx
}

// ArgMin returns the index of the smallest value in xs, or -1 for empty
// input. Ties resolve to the first occurrence.
func ArgMin(xs []float64) int {
	idx := -1
	for i, x := range xs {
		if idx == -1 || x < xs[idx] {
			idx = i
		}
	}
	return idx
}

// ArgMaxAbs returns the index of the largest absolute value in xs, or -1
// for empty input. Ties resolve to the first occurrence.
func ArgMaxAbs(xs []float64) int {
	idx := -1
	for i, x := range xs {
		if idx == -1 || math.Abs(x) > math.Abs(xs[idx]) {
			idx = i
		}
	}
	return idx
}

// TrapezoidArea returns the absolute trapezoidal integral of y with respect
// to x. The abscissa is traversed in sample order and does not need to be
// monotone; a hysteresis loop path folds to its enclosed area.
func TrapezoidArea(x, y []float64) float64 {
	area := 0.0
	for i := 0; i+1 < len(x) && i+1 < len(y); i++ {
		area += 0.5 * (y[i] + y[i+1]) * (x[i+1] - x[i])
	}
	return math.Abs(area)
}
