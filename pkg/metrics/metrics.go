// Package metrics computes scalar performance measures from a processed
// test: peak response, dissipated energy, stiffness, equivalent viscous
// damping, and strength and stiffness degradation across repeated cycles.
package metrics

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/structlab/hysteresis/pkg/constants"
	"github.com/structlab/hysteresis/pkg/loops"
	"github.com/structlab/hysteresis/pkg/mathutil"
	"github.com/structlab/hysteresis/pkg/skeleton"
)

// Pair holds one value per loading direction.
type Pair struct {
	Positive float64
	Negative float64
}

// Set collects the computed metrics. Pointer fields are nil when the
// series does not carry enough information to compute them; they never
// hold a guessed value.
type Set struct {
	PeakDisplacement     Pair
	PeakForce            Pair
	ResidualDisplacement float64

	// TotalArea is the summed enclosed area of all loops, equal to the
	// cumulative dissipated energy.
	TotalArea float64

	SecantStiffness   *float64
	InitialStiffness  *float64
	EquivalentDamping *float64

	AverageLoopEnergy *float64
	MaxLoopEnergy     *float64

	// Strength degradation compares the first and last loop peak of each
	// direction, as a percentage drop. Requires at least two loops in the
	// direction.
	PositiveStrengthDegradation *float64
	NegativeStrengthDegradation *float64

	// StiffnessDegradation is the percentage drop from initial to secant
	// stiffness.
	StiffnessDegradation *float64
}

// Compute derives the metric set from the working series, its segmented
// loops, and the extracted skeleton. The series is the one the loops were
// cut from, so first-loop filtering has already been applied when enabled.
func Compute(logger *zap.Logger, displacement, force []float64, lps []loops.Loop, curve *skeleton.Curve) Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	var set Set
	if len(displacement) == 0 || len(force) == 0 {
		return set
	}

	set.PeakDisplacement = Pair{
		Positive: displacement[mathutil.ArgMax(displacement)],
		Negative: displacement[mathutil.ArgMin(displacement)],
	}
	set.PeakForce = Pair{
		Positive: force[mathutil.ArgMax(force)],
		Negative: force[mathutil.ArgMin(force)],
	}
	set.ResidualDisplacement = displacement[len(displacement)-1]

	for _, l := range lps {
		set.TotalArea += l.Area
	}

	if curve != nil && !curve.Positive.Empty() {
		pos := curve.Positive
		n := pos.Len()
		if pos.Displacement[n-1] != 0 {
			k := pos.Force[n-1] / pos.Displacement[n-1]
			set.SecantStiffness = &k
		}
	}

	set.InitialStiffness = initialStiffness(displacement, force)

	if set.TotalArea > 0 && curve != nil && !curve.Positive.Empty() {
		pos := curve.Positive
		n := pos.Len()
		elastic := math.Abs(pos.Displacement[n-1] * pos.Force[n-1])
		if elastic > 0 {
			he := set.TotalArea / (2 * math.Pi * elastic)
			set.EquivalentDamping = &he
		}
	}

	var areas []float64
	for _, l := range lps {
		if l.Area > 0 {
			areas = append(areas, l.Area)
		}
	}
	if len(areas) > 0 {
		avg := stat.Mean(areas, nil)
		max := areas[mathutil.ArgMax(areas)]
		set.AverageLoopEnergy = &avg
		set.MaxLoopEnergy = &max
	}

	computeDegradation(&set, lps)

	logger.Debug("metrics computed",
		zap.String("op", "metrics.Compute"),
		zap.Int("loops", len(lps)),
		zap.Float64("totalArea", set.TotalArea),
	)
	return set
}

// initialStiffness fits a line to the early loading segment, from the
// first sample where both channels exceed their noise thresholds. Short
// series and flat segments yield nil.
func initialStiffness(displacement, force []float64) *float64 {
	if len(displacement) <= 10 {
		return nil
	}
	dispTh := math.Max(constants.MinDisplacementThreshold,
		mathutil.MaxAbs(displacement)*constants.ThresholdRangeFraction)
	forceTh := math.Max(constants.MinForceThreshold,
		mathutil.MaxAbs(force)*constants.ThresholdRangeFraction)

	start := 0
	for i := range force {
		if math.Abs(force[i]) > forceTh && math.Abs(displacement[i]) > dispTh {
			start = i
			break
		}
	}

	n := len(displacement) / 10
	if n < 5 {
		n = 5
	}
	if n > 20 {
		n = 20
	}
	end := start + n
	if end > len(displacement) {
		end = len(displacement)
	}
	if end <= start+2 {
		return nil
	}

	d := displacement[start:end]
	f := force[start:end]
	if mathutil.Ptp(d) <= dispTh {
		return nil
	}
	_, slope := stat.LinearRegression(d, f, nil, false)
	return &slope
}

// computeDegradation fills the degradation fields. All of them require
// repeated cycling, so a test with fewer than two loops leaves them nil.
func computeDegradation(set *Set, lps []loops.Loop) {
	if len(lps) < 2 {
		return
	}

	var pos, neg []loops.Loop
	for _, l := range lps {
		if l.Kind == loops.Positive {
			pos = append(pos, l)
		} else {
			neg = append(neg, l)
		}
	}

	if deg := strengthDegradation(pos); deg != nil {
		set.PositiveStrengthDegradation = deg
	}
	if deg := strengthDegradation(neg); deg != nil {
		set.NegativeStrengthDegradation = deg
	}

	if set.InitialStiffness != nil && set.SecantStiffness != nil && *set.InitialStiffness != 0 {
		deg := (*set.InitialStiffness - *set.SecantStiffness) / *set.InitialStiffness * 100
		set.StiffnessDegradation = &deg
	}
}

func strengthDegradation(lps []loops.Loop) *float64 {
	if len(lps) < 2 {
		return nil
	}
	first := math.Abs(lps[0].PeakForce)
	last := math.Abs(lps[len(lps)-1].PeakForce)
	if first == 0 {
		return nil
	}
	deg := (first - last) / first * 100
	return &deg
}
