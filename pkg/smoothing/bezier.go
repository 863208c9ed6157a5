package smoothing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/structlab/hysteresis/pkg/constants"
)

// bezier evaluates a parametric Bezier curve through a reduced subset of
// the input points and remaps it onto the requested grid. The control-point
// subset is a uniform index sampling sized by ratio, never fewer than four
// points. Because the parametric curve's x values need not be monotone, the
// remap first tries shape-preserving interpolation over the sorted,
// deduplicated curve and falls back to nearest-neighbor lookup.
func (s *Smoother) bezier(xs, ys, grid []float64, ratio float64) ([]float64, Fallback, error) {
	if ratio <= 0 {
		ratio = 0.3
	}
	if ratio > 1 {
		ratio = 1
	}

	cx, cy := controlPoints(xs, ys, ratio)
	degree := len(cx) - 1

	ts := make([]float64, len(grid))
	floats.Span(ts, 0, 1)
	curveX := make([]float64, len(ts))
	curveY := make([]float64, len(ts))
	for k := 0; k <= degree; k++ {
		logC := logBinomial(degree, k)
		for i, t := range ts {
			b := bernstein(logC, degree, k, t)
			curveX[i] += cx[k] * b
			curveY[i] += cy[k] * b
		}
	}

	ux, uy := dedupCurve(curveX, curveY)
	if len(ux) > 3 {
		if out, err := predictAll(&interp.FritschButland{}, ux, uy, grid); err == nil {
			return out, FallbackNone, nil
		}
	}

	// Nearest-neighbor lookup on the parametric curve.
	out := make([]float64, len(grid))
	for i, g := range grid {
		best := 0
		bestDist := math.Inf(1)
		for j, cxv := range curveX {
			if d := math.Abs(cxv - g); d < bestDist {
				bestDist = d
				best = j
			}
		}
		out[i] = curveY[best]
	}
	return out, FallbackNearest, nil
}

// controlPoints picks the Bezier control subset by uniform index sampling,
// always including the first and last points.
func controlPoints(xs, ys []float64, ratio float64) ([]float64, []float64) {
	n := len(xs)
	count := int(float64(n) * ratio)
	if count < constants.MinSmoothingPoints {
		count = constants.MinSmoothingPoints
	}
	if count >= n {
		return xs, ys
	}

	cx := make([]float64, 0, count)
	cy := make([]float64, 0, count)
	prev := -1
	for k := 0; k < count; k++ {
		i := int(float64(k) * float64(n-1) / float64(count-1))
		if i == prev {
			continue
		}
		prev = i
		cx = append(cx, xs[i])
		cy = append(cy, ys[i])
	}
	return cx, cy
}

// dedupCurve sorts the parametric curve by x and drops points closer than
// 1e-10 to their predecessor, so the remap sees strictly increasing x.
func dedupCurve(curveX, curveY []float64) ([]float64, []float64) {
	order := make([]int, len(curveX))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return curveX[order[a]] < curveX[order[b]] })

	var ux, uy []float64
	for _, idx := range order {
		if len(ux) > 0 && curveX[idx]-ux[len(ux)-1] <= 1e-10 {
			continue
		}
		ux = append(ux, curveX[idx])
		uy = append(uy, curveY[idx])
	}
	return ux, uy
}

// bernstein evaluates the Bernstein basis polynomial B(n,k) at t using the
// precomputed log binomial coefficient, stable for high degrees.
func bernstein(logC float64, n, k int, t float64) float64 {
	switch {
	case t <= 0:
		if k == 0 {
			return 1
		}
		return 0
	case t >= 1:
		if k == n {
			return 1
		}
		return 0
	}
	return math.Exp(logC + float64(k)*math.Log(t) + float64(n-k)*math.Log(1-t))
}

func logBinomial(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
