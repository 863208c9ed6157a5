// Package loops segments a cleaned force-displacement series into
// consecutive positive and negative hysteresis loops bounded by
// displacement peaks, and implements the first-loop cycle filter.
package loops

import (
	"math"

	"github.com/structlab/hysteresis/pkg/constants"
	"github.com/structlab/hysteresis/pkg/mathutil"
)

// Kind labels the loading direction of a peak or loop.
type Kind int

const (
	Positive Kind = iota
	Negative
)

// String returns the report label for the kind.
func (k Kind) String() string {
	if k == Negative {
		return "Negative"
	}
	return "Positive"
}

// Peak is a direction-signed strict local extremum of displacement.
type Peak struct {
	Index        int
	Kind         Kind
	Displacement float64
	Force        float64
}

// Loop is the sub-series between two consecutive peaks. Area is the
// absolute trapezoidal integral of force over displacement, a proxy for
// the energy dissipated in the cycle.
type Loop struct {
	Displacement     []float64
	Force            []float64
	PeakDisplacement float64
	PeakForce        float64
	Area             float64
	Kind             Kind
}

// Peaks returns the strict local displacement extrema, positive maxima and
// negative minima, in index order.
func Peaks(displacement, force []float64) []Peak {
	var peaks []Peak
	for i := 1; i+1 < len(displacement); i++ {
		switch {
		case displacement[i] > displacement[i-1] && displacement[i] > displacement[i+1]:
			if displacement[i] > 0 {
				peaks = append(peaks, Peak{Index: i, Kind: Positive, Displacement: displacement[i], Force: force[i]})
			}
		case displacement[i] < displacement[i-1] && displacement[i] < displacement[i+1]:
			if displacement[i] < 0 {
				peaks = append(peaks, Peak{Index: i, Kind: Negative, Displacement: displacement[i], Force: force[i]})
			}
		}
	}
	return peaks
}

// Segment partitions the series into loops spanning consecutive peaks,
// inclusive of both peak samples. Loops shorter than three samples are
// discarded. When filterFirstLoop is set the series is first reduced to the
// first loop of each displacement level; the returned slices are the series
// the loops were cut from, so downstream stages consume the same data.
func Segment(displacement, force []float64, filterFirstLoop bool) ([]Loop, []float64, []float64) {
	d, f := displacement, force
	if filterFirstLoop {
		d, f = FilterFirstLoops(d, f)
	}

	peaks := Peaks(d, f)
	var result []Loop
	for i := 0; i+1 < len(peaks); i++ {
		start, end := peaks[i].Index, peaks[i+1].Index
		if end+1-start < constants.MinLoopSamples {
			continue
		}
		segD := append([]float64(nil), d[start:end+1]...)
		segF := append([]float64(nil), f[start:end+1]...)
		result = append(result, Loop{
			Displacement:     segD,
			Force:            segF,
			PeakDisplacement: peaks[i].Displacement,
			PeakForce:        peaks[i].Force,
			Area:             mathutil.TrapezoidArea(segD, segF),
			Kind:             peaks[i].Kind,
		})
	}
	return result, d, f
}

// FilterFirstLoops keeps, for each displacement level, only the sample
// window around the first peak of that level. Levels group local maxima of
// |displacement| whose amplitudes lie within 8% of the group's first peak;
// kept windows span 50 samples on each side of that peak, clipped to the
// series bounds. Windows can overlap or clip real data at the boundaries;
// this is a heuristic filter, not an exact cycle splitter.
func FilterFirstLoops(displacement, force []float64) ([]float64, []float64) {
	absD := make([]float64, len(displacement))
	for i, v := range displacement {
		absD[i] = math.Abs(v)
	}

	var peakIdx []int
	for i := 1; i+1 < len(absD); i++ {
		if absD[i] > absD[i-1] && absD[i] > absD[i+1] {
			peakIdx = append(peakIdx, i)
		}
	}
	if len(peakIdx) == 0 {
		return displacement, force
	}

	used := make([]bool, len(peakIdx))
	keep := make([]bool, len(displacement))
	kept := false
	for i, pi := range peakIdx {
		if used[i] {
			continue
		}
		first := pi
		level := absD[pi]
		for j := i + 1; j < len(peakIdx); j++ {
			if used[j] {
				continue
			}
			if math.Abs(absD[peakIdx[j]]-level) <= constants.CycleGroupTolerance*level {
				used[j] = true
				if peakIdx[j] < first {
					first = peakIdx[j]
				}
			}
		}
		start := first - constants.FilterWindowHalfWidth
		if start < 0 {
			start = 0
		}
		end := first + constants.FilterWindowHalfWidth
		if end > len(displacement) {
			end = len(displacement)
		}
		for k := start; k < end; k++ {
			keep[k] = true
			kept = true
		}
	}
	if !kept {
		return displacement, force
	}

	var dOut, fOut []float64
	for i, k := range keep {
		if k {
			dOut = append(dOut, displacement[i])
			fOut = append(fOut, force[i])
		}
	}
	return dOut, fOut
}
