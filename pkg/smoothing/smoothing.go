// Package smoothing resamples skeleton branches onto a uniform grid using
// one of seven interpolation and filtering algorithms. Failures never
// propagate: each algorithm degrades through a chain of simpler methods and
// the result records which fallback, if any, was used.
package smoothing

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/structlab/hysteresis/pkg/constants"
)

// Algorithm selects the smoothing algorithm.
type Algorithm int

const (
	// ShapePreserving is a monotonicity-preserving piecewise cubic with no
	// overshoot.
	ShapePreserving Algorithm = iota

	// Akima is a reduced-oscillation piecewise cubic.
	Akima

	// Bezier evaluates a parametric Bezier curve through a reduced
	// control-point subset; the parameter is the control-point density
	// ratio in [0.10, 1.00].
	Bezier

	// BSpline is a smoothing-spline fit with factor s = param * N.
	BSpline

	// SavitzkyGolay resamples to a uniform grid and applies a polynomial
	// smoothing filter; the parameter is the window length.
	SavitzkyGolay

	// GeneralSpline interpolates exactly when param is zero and smooths
	// with s = param * N otherwise.
	GeneralSpline

	// CubicSpline is an exact interpolating cubic spline.
	CubicSpline
)

// ParseAlgorithm maps a configuration string onto an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "pchip":
		return ShapePreserving, nil
	case "akima":
		return Akima, nil
	case "bezier":
		return Bezier, nil
	case "bspline":
		return BSpline, nil
	case "savgol":
		return SavitzkyGolay, nil
	case "spline":
		return GeneralSpline, nil
	case "cubic":
		return CubicSpline, nil
	}
	return ShapePreserving, fmt.Errorf("unknown smoothing algorithm %q, expected pchip, akima, bezier, bspline, savgol, spline, or cubic", s)
}

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Akima:
		return "akima"
	case Bezier:
		return "bezier"
	case BSpline:
		return "bspline"
	case SavitzkyGolay:
		return "savgol"
	case GeneralSpline:
		return "spline"
	case CubicSpline:
		return "cubic"
	}
	return "pchip"
}

// Fallback records how far down the degradation chain a Smooth call went.
type Fallback int

const (
	// FallbackNone means the requested algorithm succeeded.
	FallbackNone Fallback = iota

	// FallbackNearest means the Bezier remap fell back to nearest-neighbor
	// lookup on the parametric curve.
	FallbackNearest

	// FallbackCubic means the requested algorithm failed and a plain cubic
	// spline was used.
	FallbackCubic

	// FallbackLinear means only linear interpolation succeeded.
	FallbackLinear

	// FallbackOriginal means nothing succeeded and the input points were
	// returned untouched.
	FallbackOriginal
)

// String describes the fallback for logs and reports.
func (fb Fallback) String() string {
	switch fb {
	case FallbackNearest:
		return "nearest-neighbor remap"
	case FallbackCubic:
		return "cubic spline"
	case FallbackLinear:
		return "linear interpolation"
	case FallbackOriginal:
		return "original points"
	}
	return "none"
}

// Result is the outcome of one smoothing run.
type Result struct {
	X        []float64
	Y        []float64
	Fallback Fallback
}

// Smoother runs the smoothing algorithms.
type Smoother struct {
	logger *zap.Logger
}

// New returns a Smoother logging through the given logger.
func New(logger *zap.Logger) *Smoother {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Smoother{logger: logger}
}

// Smooth resamples (x, y) to numPoints samples over [min(x), max(x)] using
// the selected algorithm. Inputs with fewer than four usable points after
// deduplication are returned unchanged. Failures degrade to a plain cubic
// spline, then linear interpolation, then the original points, and are
// reported through Result.Fallback rather than an error.
func (s *Smoother) Smooth(x, y []float64, algo Algorithm, param float64, numPoints int) Result {
	// A grid needs at least two points to span an interval.
	if numPoints < 2 {
		numPoints = constants.DefaultInterpolationPoints
	}

	xs, ys := dedupSorted(x, y)
	if len(xs) < constants.MinSmoothingPoints {
		return Result{X: x, Y: y}
	}

	grid := make([]float64, numPoints)
	floats.Span(grid, xs[0], xs[len(xs)-1])

	var (
		out []float64
		fb  Fallback
		err error
	)
	switch algo {
	case ShapePreserving:
		out, err = predictAll(&interp.FritschButland{}, xs, ys, grid)
	case Akima:
		out, err = predictAll(&interp.AkimaSpline{}, xs, ys, grid)
	case Bezier:
		out, fb, err = s.bezier(xs, ys, grid, param)
	case BSpline:
		out, err = s.penalizedSpline(xs, ys, grid, param*float64(len(xs)))
	case SavitzkyGolay:
		out, err = s.savitzkyGolay(xs, ys, grid, param)
	case GeneralSpline:
		if param == 0 {
			out, err = predictAll(&interp.NaturalCubic{}, xs, ys, grid)
		} else {
			out, err = s.penalizedSpline(xs, ys, grid, param*float64(len(xs)))
		}
	case CubicSpline:
		out, err = predictAll(&interp.NaturalCubic{}, xs, ys, grid)
	default:
		return Result{X: x, Y: y, Fallback: FallbackOriginal}
	}
	if err == nil {
		return Result{X: grid, Y: out, Fallback: fb}
	}

	s.logger.Warn("smoothing failed, degrading to simpler method",
		zap.String("op", "smoothing.Smooth"),
		zap.String("algorithm", algo.String()),
		zap.Error(err),
	)

	if out, cubicErr := predictAll(&interp.NaturalCubic{}, xs, ys, grid); cubicErr == nil {
		return Result{X: grid, Y: out, Fallback: FallbackCubic}
	}
	if out, linErr := predictAll(&interp.PiecewiseLinear{}, xs, ys, grid); linErr == nil {
		return Result{X: grid, Y: out, Fallback: FallbackLinear}
	}
	return Result{X: x, Y: y, Fallback: FallbackOriginal}
}

type fittablePredictor interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

// predictAll fits p over (xs, ys) and evaluates it on grid, rejecting
// non-finite predictions.
func predictAll(p fittablePredictor, xs, ys, grid []float64) ([]float64, error) {
	if err := p.Fit(xs, ys); err != nil {
		return nil, err
	}
	out := make([]float64, len(grid))
	for i, g := range grid {
		v := p.Predict(g)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite prediction at x=%g", g)
		}
		out[i] = v
	}
	return out, nil
}

// dedupSorted removes repeated x values, keeping the first occurrence, and
// returns the pairs sorted ascending by x.
func dedupSorted(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	seen := make(map[float64]bool, n)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if seen[x[i]] {
			continue
		}
		seen[x[i]] = true
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	sortedX := make([]float64, len(xs))
	sortedY := make([]float64, len(ys))
	for i, idx := range order {
		sortedX[i] = xs[idx]
		sortedY[i] = ys[idx]
	}
	return sortedX, sortedY
}
