package smoothing

import (
	"errors"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

var errNotPositiveDefinite = errors.New("penalized system is not positive definite")

// penalizedSpline resamples onto the grid through a Whittaker smoother: the
// curve z minimizing sum (z-y)^2 + lambda * sum (second differences of z)^2,
// then a cubic spline through the smoothed knots evaluated on the grid.
func (s *Smoother) penalizedSpline(xs, ys, grid []float64, lambda float64) ([]float64, error) {
	if lambda < 0 {
		lambda = 0
	}
	smoothed, err := whittaker(ys, lambda)
	if err != nil {
		return nil, err
	}
	return predictAll(&interp.NaturalCubic{}, xs, smoothed, grid)
}

// whittaker solves (I + lambda * D'D) z = y where D is the second
// difference operator. The system is symmetric positive definite with
// bandwidth 2, solved with a banded Cholesky factorization.
func whittaker(y []float64, lambda float64) ([]float64, error) {
	n := len(y)
	if n < 3 || lambda == 0 {
		out := make([]float64, n)
		copy(out, y)
		return out, nil
	}

	// Accumulate lambda * D'D row by row from the [1,-2,1] stencil.
	band := mat.NewSymBandDense(n, 2, nil)
	stencil := []float64{1, -2, 1}
	for r := 0; r < n-2; r++ {
		for a := 0; a < 3; a++ {
			for b := a; b < 3; b++ {
				i, j := r+a, r+b
				band.SetSymBand(i, j, band.At(i, j)+lambda*stencil[a]*stencil[b])
			}
		}
	}
	for i := 0; i < n; i++ {
		band.SetSymBand(i, i, band.At(i, i)+1)
	}

	var chol mat.BandCholesky
	if ok := chol.Factorize(band); !ok {
		return nil, errNotPositiveDefinite
	}
	var z mat.VecDense
	if err := chol.SolveVecTo(&z, mat.NewVecDense(n, y)); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = z.AtVec(i)
	}
	return out, nil
}
