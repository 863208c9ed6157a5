package smoothing

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/structlab/hysteresis/pkg/constants"
)

// savitzkyGolay resamples the points onto the uniform grid through a cubic
// spline and then applies a Savitzky-Golay polynomial smoothing filter. The
// parameter is the window length.
func (s *Smoother) savitzkyGolay(xs, ys, grid []float64, param float64) ([]float64, error) {
	resampled, err := predictAll(&interp.NaturalCubic{}, xs, ys, grid)
	if err != nil {
		return nil, err
	}
	window, order := savgolWindow(param, len(grid))
	return savgolFilter(resampled, window, order)
}

// savgolWindow forces the window length odd, at least 3, and below the
// number of resampled points; the polynomial order tracks the window up to
// the cubic cap.
func savgolWindow(param float64, n int) (window, order int) {
	window = int(param)
	if window%2 == 0 {
		window++
	}
	if window >= n {
		window = n - 1
		if window%2 == 0 {
			window--
		}
	}
	if window < constants.MinSavGolWindow {
		window = constants.MinSavGolWindow
	}
	order = window - 1
	if order > constants.MaxSavGolOrder {
		order = constants.MaxSavGolOrder
	}
	return window, order
}

// savgolFilter smooths y with a moving least-squares polynomial of the
// given window and order. Interior points take the center of the fitted
// polynomial; points near the boundary are evaluated off-center on the
// first or last full window.
func savgolFilter(y []float64, window, order int) ([]float64, error) {
	if window > len(y) {
		return nil, fmt.Errorf("window %d exceeds series length %d", window, len(y))
	}
	half := window / 2

	// Projection from window samples to polynomial coefficients over
	// offsets -half..half.
	design := mat.NewDense(window, order+1, nil)
	for r := 0; r < window; r++ {
		t := float64(r - half)
		v := 1.0
		for c := 0; c <= order; c++ {
			design.Set(r, c, v)
			v *= t
		}
	}
	var gram mat.Dense
	gram.Mul(design.T(), design)
	var inv mat.Dense
	if err := inv.Inverse(&gram); err != nil {
		return nil, err
	}
	var proj mat.Dense
	proj.Mul(&inv, design.T())

	coef := make([]float64, order+1)
	evalAt := func(winStart int, t float64) float64 {
		for c := range coef {
			sum := 0.0
			for r := 0; r < window; r++ {
				sum += proj.At(c, r) * y[winStart+r]
			}
			coef[c] = sum
		}
		v, p := 0.0, 1.0
		for c := 0; c <= order; c++ {
			v += coef[c] * p
			p *= t
		}
		return v
	}

	out := make([]float64, len(y))
	for i := range y {
		switch {
		case i < half:
			out[i] = evalAt(0, float64(i-half))
		case i >= len(y)-half:
			start := len(y) - window
			out[i] = evalAt(start, float64(i-start-half))
		default:
			out[i] = evalAt(i-half, 0)
		}
	}
	return out, nil
}
