// Package series defines the raw force-displacement record and implements
// its cleaning: zero snapping, same-displacement deduplication, and
// re-zeroing at the start of real loading.
package series

import (
	"math"
	"sort"

	"github.com/structlab/hysteresis/pkg/constants"
	"github.com/structlab/hysteresis/pkg/mathutil"
)

// Series holds two index-aligned channels of a cyclic test record, in time
// order, plus a label naming the source file.
type Series struct {
	Name         string
	Displacement []float64
	Force        []float64
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.Displacement)
}

// Thresholds holds the direction-specific dead-bands derived from a record.
type Thresholds struct {
	Displacement float64
	Force        float64
}

// ComputeThresholds derives the dead-bands from the absolute-value range of
// each channel, with fixed floors.
func ComputeThresholds(displacement, force []float64) Thresholds {
	return Thresholds{
		Displacement: math.Max(constants.MinDisplacementThreshold,
			mathutil.RangeAbs(displacement)*constants.ThresholdRangeFraction),
		Force: math.Max(constants.MinForceThreshold,
			mathutil.RangeAbs(force)*constants.ThresholdRangeFraction),
	}
}

// Preprocess cleans a raw record: snaps near-zero values to exactly zero,
// keeps only the max-|force| sample among those sharing a displacement
// value (within half the displacement dead-band), and shifts displacement
// so that the first sample of real loading sits at zero offset. Surviving
// samples keep their original time order. Always returns a series, however
// degenerate the input.
func Preprocess(displacement, force []float64) ([]float64, []float64) {
	n := len(displacement)
	if len(force) < n {
		n = len(force)
	}
	if n == 0 {
		return []float64{}, []float64{}
	}

	th := ComputeThresholds(displacement[:n], force[:n])

	d := make([]float64, n)
	f := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = displacement[i]
		f[i] = force[i]
		if mathutil.NearZero(d[i], th.Displacement) {
			d[i] = 0
		}
		if mathutil.NearZero(f[i], th.Force) {
			f[i] = 0
		}
	}

	// Deduplicate by displacement: each group keeps the sample with the
	// largest absolute force, first-found on ties. A winning sample takes
	// over its group's key and moves the group to the back of the match
	// order, so a later sample within tolerance of two groups matches the
	// longer-untouched one first.
	type group struct {
		key   float64
		index int
	}
	tolerance := th.Displacement * constants.DedupToleranceFraction
	var groups []group
	for i := 0; i < n; i++ {
		found := false
		for gi := range groups {
			if math.Abs(d[i]-groups[gi].key) <= tolerance {
				found = true
				if math.Abs(f[i]) > math.Abs(f[groups[gi].index]) {
					groups = append(groups[:gi], groups[gi+1:]...)
					groups = append(groups, group{key: d[i], index: i})
				}
				break
			}
		}
		if !found {
			groups = append(groups, group{key: d[i], index: i})
		}
	}

	keep := make([]int, len(groups))
	for i, g := range groups {
		keep[i] = g.index
	}
	sort.Ints(keep)

	dOut := make([]float64, len(keep))
	fOut := make([]float64, len(keep))
	for i, idx := range keep {
		dOut[i] = d[idx]
		fOut[i] = f[idx]
	}

	// Re-zero displacement at the first sample of real loading.
	start := 0
	for i := range dOut {
		if math.Abs(dOut[i]) > th.Displacement*constants.LoadingStartFactor ||
			math.Abs(fOut[i]) > th.Force*constants.LoadingStartFactor {
			start = i
			break
		}
	}
	if start > 0 {
		offset := dOut[start]
		for i := range dOut {
			dOut[i] -= offset
		}
	}

	return dOut, fOut
}
