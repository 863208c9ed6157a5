// Package ductility estimates the ductility coefficient of a skeleton
// branch, the ratio of ultimate to yield displacement, using one of seven
// yield-point definitions.
package ductility

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/structlab/hysteresis/pkg/mathutil"
	"github.com/structlab/hysteresis/pkg/skeleton"
)

// Method selects the yield-point definition.
type Method int

const (
	// Geometric takes the yield point at 75 percent of the peak force on
	// the rising branch.
	Geometric Method = iota

	// Energy equates the backbone energy to an equivalent bilinear system.
	Energy

	// Park locates yield where the secant stiffness falls to a third of
	// the initial stiffness.
	Park

	// Farthest takes yield at the branch point farthest from the chord to
	// the ultimate point.
	Farthest

	// ASCE takes the yield point at 60 percent of the peak force.
	ASCE

	// EEEP uses the equivalent energy elastic-plastic construction.
	EEEP

	// ElasticYield projects the peak force back onto the initial
	// stiffness line.
	ElasticYield
)

// ParseMethod maps a configuration string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "geometric":
		return Geometric, nil
	case "energy":
		return Energy, nil
	case "park":
		return Park, nil
	case "farthest":
		return Farthest, nil
	case "asce":
		return ASCE, nil
	case "eeep":
		return EEEP, nil
	case "elastic_yield":
		return ElasticYield, nil
	}
	return Geometric, fmt.Errorf("unknown ductility method %q, expected geometric, energy, park, farthest, asce, eeep, or elastic_yield", s)
}

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case Energy:
		return "energy"
	case Park:
		return "park"
	case Farthest:
		return "farthest"
	case ASCE:
		return "asce"
	case EEEP:
		return "eeep"
	case ElasticYield:
		return "elastic_yield"
	}
	return "geometric"
}

// Direction selects which skeleton branches are analyzed.
type Direction int

const (
	// Both analyzes the positive and negative branches.
	Both Direction = iota

	// PositiveOnly analyzes only the positive branch.
	PositiveOnly

	// NegativeOnly analyzes only the negative branch.
	NegativeOnly
)

// ParseDirection maps a configuration string onto a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "both":
		return Both, nil
	case "positive":
		return PositiveOnly, nil
	case "negative":
		return NegativeOnly, nil
	}
	return Both, fmt.Errorf("unknown direction %q, expected both, positive, or negative", s)
}

// String returns the configuration name of the direction.
func (d Direction) String() string {
	switch d {
	case PositiveOnly:
		return "positive"
	case NegativeOnly:
		return "negative"
	}
	return "both"
}

// Result carries the computed coefficients. A nil field means the branch
// was not analyzed, either excluded by the direction or too short.
type Result struct {
	Method   Method
	Positive *float64
	Negative *float64
}

// Compute evaluates the selected method on the skeleton branches covered by
// the direction. Branches with fewer than three points are skipped.
func Compute(logger *zap.Logger, curve *skeleton.Curve, method Method, direction Direction) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	res := Result{Method: method}
	if curve == nil {
		return res
	}

	if direction == Both || direction == PositiveOnly {
		res.Positive = branchDuctility(curve.Positive, method)
	}
	if direction == Both || direction == NegativeOnly {
		res.Negative = branchDuctility(curve.Negative, method)
	}

	logger.Debug("ductility computed",
		zap.String("op", "ductility.Compute"),
		zap.String("method", method.String()),
		zap.String("direction", direction.String()),
	)
	return res
}

func branchDuctility(b skeleton.Branch, method Method) *float64 {
	if b.Len() < 3 {
		return nil
	}
	d, f := b.Displacement, b.Force

	var mu float64
	switch method {
	case Energy:
		mu = energyDuctility(d, f)
	case Park:
		mu = parkDuctility(d, f)
	case Farthest:
		mu = farthestDuctility(d, f)
	case ASCE:
		mu = asceDuctility(d, f)
	case EEEP:
		mu = eeepDuctility(d, f)
	case ElasticYield:
		mu = elasticYieldDuctility(d, f)
	default:
		mu = geometricDuctility(d, f)
	}
	return &mu
}

// geometricDuctility puts the yield point where the force first reaches 75
// percent of the branch peak.
func geometricDuctility(d, f []float64) float64 {
	maxIdx := mathutil.ArgMaxAbs(f)
	maxForce := math.Abs(f[maxIdx])
	maxDisp := math.Abs(d[maxIdx])

	yieldForce := 0.75 * maxForce
	yieldIdx, best := 0, math.Inf(1)
	for i := 0; i <= maxIdx; i++ {
		if diff := math.Abs(math.Abs(f[i]) - yieldForce); diff < best {
			yieldIdx, best = i, diff
		}
	}
	yieldDisp := math.Abs(d[yieldIdx])
	if yieldDisp <= 0 {
		return 1.0
	}
	return maxDisp / yieldDisp
}

// energyDuctility equates the area under the branch to half the yield
// displacement times the peak force.
func energyDuctility(d, f []float64) float64 {
	energy := mathutil.TrapezoidArea(d, f)
	maxDisp := math.Abs(d[mathutil.ArgMaxAbs(d)])
	maxForce := math.Abs(f[mathutil.ArgMaxAbs(f)])
	if maxForce <= 0 {
		return 1.0
	}
	yieldDisp := 2 * energy / maxForce
	if yieldDisp <= 0 {
		return 1.0
	}
	return maxDisp / yieldDisp
}

// parkDuctility declares yield at the first point whose secant stiffness
// drops to a third of the initial stiffness, taken as the steepest secant
// over the first few points.
func parkDuctility(d, f []float64) float64 {
	k0 := initialSecant(d, f)
	if k0 == 0 {
		return 1.0
	}
	ky := k0 / 3
	for i := 2; i < len(d); i++ {
		if math.Abs(d[i]) <= 1e-6 {
			continue
		}
		if math.Abs(f[i]/d[i]) <= ky {
			yieldDisp := math.Abs(d[i])
			maxDisp := math.Abs(d[len(d)-1])
			if yieldDisp <= 0 {
				return 1.0
			}
			return maxDisp / yieldDisp
		}
	}
	return 1.0
}

// farthestDuctility takes yield at the interior point with the greatest
// perpendicular distance from the chord between the origin and the
// ultimate point.
func farthestDuctility(d, f []float64) float64 {
	maxIdx := mathutil.ArgMaxAbs(d)
	maxDisp := d[maxIdx]
	maxForce := f[maxIdx]
	if math.Abs(maxDisp) < 1e-6 {
		return 1.0
	}

	maxDist, yieldIdx := 0.0, 0
	norm := math.Hypot(maxForce, maxDisp)
	for i := 1; i < maxIdx; i++ {
		dist := math.Abs(maxForce*d[i]-maxDisp*f[i]) / norm
		if dist > maxDist {
			maxDist, yieldIdx = dist, i
		}
	}
	yieldDisp := math.Abs(d[yieldIdx])
	if yieldDisp <= 0 {
		return 1.0
	}
	return math.Abs(maxDisp) / yieldDisp
}

// asceDuctility puts the yield point nearest 60 percent of the peak force,
// searched over the whole branch.
func asceDuctility(d, f []float64) float64 {
	maxForce := math.Abs(f[mathutil.ArgMaxAbs(f)])
	yieldForce := 0.6 * maxForce

	yieldIdx, best := 0, math.Inf(1)
	for i := range f {
		if diff := math.Abs(math.Abs(f[i]) - yieldForce); diff < best {
			yieldIdx, best = i, diff
		}
	}
	yieldDisp := math.Abs(d[yieldIdx])
	maxDisp := math.Abs(d[mathutil.ArgMaxAbs(d)])
	if yieldDisp <= 0 {
		return 1.0
	}
	return maxDisp / yieldDisp
}

// eeepDuctility builds the equivalent elastic-plastic yield displacement
// from the branch energy divided by the peak force.
func eeepDuctility(d, f []float64) float64 {
	energy := mathutil.TrapezoidArea(d, f)
	maxForce := math.Abs(f[mathutil.ArgMaxAbs(f)])
	maxDisp := math.Abs(d[mathutil.ArgMaxAbs(d)])
	if maxForce <= 0 {
		return 1.0
	}
	yieldDisp := energy / maxForce
	if yieldDisp <= 0 {
		return 1.0
	}
	return maxDisp / yieldDisp
}

// elasticYieldDuctility projects the peak force onto the initial secant
// stiffness line to find the yield displacement.
func elasticYieldDuctility(d, f []float64) float64 {
	k0 := initialSecant(d, f)
	if k0 == 0 {
		return 1.0
	}
	maxForce := math.Abs(f[mathutil.ArgMaxAbs(f)])
	maxDisp := math.Abs(d[mathutil.ArgMaxAbs(d)])
	yieldDisp := maxForce / k0
	if yieldDisp <= 0 {
		return 1.0
	}
	return maxDisp / yieldDisp
}

// initialSecant is the steepest origin secant over the first few nonzero
// displacement points.
func initialSecant(d, f []float64) float64 {
	k0 := 0.0
	limit := 5
	if len(d) < limit {
		limit = len(d)
	}
	for i := 1; i < limit; i++ {
		if math.Abs(d[i]) <= 1e-6 {
			continue
		}
		if k := math.Abs(f[i] / d[i]); k > k0 {
			k0 = k
		}
	}
	return k0
}
