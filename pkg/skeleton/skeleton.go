// Package skeleton derives backbone (skeleton) curves from cyclic test
// series, by outer-envelope tracing or peak-point linking.
package skeleton

import (
	"fmt"
	"math"
	"sort"

	"github.com/structlab/hysteresis/pkg/constants"
	"github.com/structlab/hysteresis/pkg/loops"
	"github.com/structlab/hysteresis/pkg/mathutil"
)

// Method selects the extraction algorithm.
type Method int

const (
	// OuterEnvelope walks the series once per direction, accepting samples
	// that push the running displacement extreme outward.
	OuterEnvelope Method = iota

	// PeakPoints links the displacement peaks of each direction, anchored
	// at a common origin on the force axis.
	PeakPoints
)

// ParseMethod maps a configuration string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "outer_envelope":
		return OuterEnvelope, nil
	case "peak_points":
		return PeakPoints, nil
	}
	return OuterEnvelope, fmt.Errorf("unknown skeleton method %q, expected outer_envelope or peak_points", s)
}

// String returns the configuration name of the method.
func (m Method) String() string {
	if m == PeakPoints {
		return "peak_points"
	}
	return "outer_envelope"
}

// Branch is an ordered sequence of control points starting at displacement
// zero and strictly increasing in displacement magnitude.
type Branch struct {
	Displacement []float64
	Force        []float64
}

// Len returns the number of control points.
func (b Branch) Len() int {
	return len(b.Displacement)
}

// Empty reports whether the branch has too few points for downstream
// consumers.
func (b Branch) Empty() bool {
	return b.Len() < 2
}

// Curve is the pair of directional skeleton branches.
type Curve struct {
	Positive Branch
	Negative Branch
}

// Extract derives the skeleton curve from the series using the selected
// method. Both branches begin at displacement zero.
func Extract(displacement, force []float64, method Method) Curve {
	if method == PeakPoints {
		return peakPoints(displacement, force)
	}
	return outerEnvelope(displacement, force)
}

func outerEnvelope(displacement, force []float64) Curve {
	dispTh := math.Max(constants.MinEnvelopeThreshold,
		mathutil.MaxAbs(displacement)*constants.EnvelopeDispFraction)
	forceTh := math.Max(constants.MinEnvelopeThreshold,
		mathutil.MaxAbs(force)*constants.EnvelopeForceFraction)

	pos := Branch{Displacement: []float64{0}, Force: []float64{0}}
	maxDisp := 0.0
	for i := range displacement {
		if displacement[i] > dispTh &&
			displacement[i] > maxDisp+dispTh*constants.EnvelopeMargin &&
			math.Abs(force[i]) > forceTh {
			maxDisp = displacement[i]
			pos.Displacement = append(pos.Displacement, displacement[i])
			pos.Force = append(pos.Force, force[i])
		}
	}

	neg := Branch{Displacement: []float64{0}, Force: []float64{0}}
	minDisp := 0.0
	for i := range displacement {
		if displacement[i] < -dispTh &&
			displacement[i] < minDisp-dispTh*constants.EnvelopeMargin &&
			math.Abs(force[i]) > forceTh {
			minDisp = displacement[i]
			neg.Displacement = append(neg.Displacement, displacement[i])
			neg.Force = append(neg.Force, force[i])
		}
	}

	return Curve{Positive: pos, Negative: neg}
}

func peakPoints(displacement, force []float64) Curve {
	deadBand := math.Max(constants.MinEnvelopeThreshold,
		mathutil.MaxAbs(displacement)*constants.PeakDeadBandFraction)

	var allPeaks []loops.Peak
	for i := 1; i+1 < len(displacement); i++ {
		switch {
		case displacement[i] > displacement[i-1] && displacement[i] > displacement[i+1] &&
			displacement[i] > deadBand:
			allPeaks = append(allPeaks, loops.Peak{Index: i, Kind: loops.Positive, Displacement: displacement[i], Force: force[i]})
		case displacement[i] < displacement[i-1] && displacement[i] < displacement[i+1] &&
			displacement[i] < -deadBand:
			allPeaks = append(allPeaks, loops.Peak{Index: i, Kind: loops.Negative, Displacement: displacement[i], Force: force[i]})
		}
	}

	origin := commonOrigin(displacement, force, allPeaks)

	pos := Branch{Displacement: []float64{0}, Force: []float64{origin}}
	neg := Branch{Displacement: []float64{0}, Force: []float64{origin}}

	var posPeaks, negPeaks []loops.Peak
	for _, p := range allPeaks {
		if p.Kind == loops.Positive {
			posPeaks = append(posPeaks, p)
		} else {
			negPeaks = append(negPeaks, p)
		}
	}

	sort.SliceStable(posPeaks, func(i, j int) bool {
		return posPeaks[i].Displacement < posPeaks[j].Displacement
	})
	maxPos := 0.0
	for _, p := range posPeaks {
		if p.Displacement > maxPos+deadBand*constants.EnvelopeMargin {
			maxPos = p.Displacement
			pos.Displacement = append(pos.Displacement, p.Displacement)
			pos.Force = append(pos.Force, p.Force)
		}
	}

	sort.SliceStable(negPeaks, func(i, j int) bool {
		return math.Abs(negPeaks[i].Displacement) < math.Abs(negPeaks[j].Displacement)
	})
	maxNeg := 0.0
	for _, p := range negPeaks {
		if math.Abs(p.Displacement) > math.Abs(maxNeg)+deadBand*constants.EnvelopeMargin {
			maxNeg = p.Displacement
			neg.Displacement = append(neg.Displacement, p.Displacement)
			neg.Force = append(neg.Force, p.Force)
		}
	}

	return Curve{Positive: pos, Negative: neg}
}

// commonOrigin locates the shared force-axis intercept of both branches:
// the displacement zero crossing between the first negative peak and the
// second positive peak, linearly interpolated. Returns 0 when the series
// has no such pair of peaks or no crossing between them.
func commonOrigin(displacement, force []float64, peaks []loops.Peak) float64 {
	firstNeg := -1
	for _, p := range peaks {
		if p.Kind == loops.Negative {
			firstNeg = p.Index
			break
		}
	}
	secondPos := -1
	posCount := 0
	for _, p := range peaks {
		if p.Kind == loops.Positive {
			posCount++
			if posCount == 2 {
				secondPos = p.Index
				break
			}
		}
	}
	if firstNeg < 0 || secondPos < 0 {
		return 0
	}

	for j := firstNeg; j < secondPos && j+1 < len(displacement); j++ {
		if displacement[j] <= 0 && displacement[j+1] > 0 {
			if displacement[j+1] != displacement[j] {
				t := -displacement[j] / (displacement[j+1] - displacement[j])
				return force[j] + t*(force[j+1]-force[j])
			}
		}
	}
	return 0
}
