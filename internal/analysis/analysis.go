// Package analysis runs the full processing pipeline over one test series
// and returns an immutable snapshot of everything it derived.
package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/structlab/hysteresis/pkg/ductility"
	"github.com/structlab/hysteresis/pkg/loops"
	"github.com/structlab/hysteresis/pkg/metrics"
	"github.com/structlab/hysteresis/pkg/series"
	"github.com/structlab/hysteresis/pkg/skeleton"
	"github.com/structlab/hysteresis/pkg/smoothing"
)

// SmoothingParams configures the optional skeleton smoothing stage.
type SmoothingParams struct {
	Enabled   bool
	Algorithm smoothing.Algorithm
	Param     float64
	Points    int
}

// Params configures one analysis run.
type Params struct {
	SkeletonMethod  skeleton.Method
	FilterFirstLoop bool
	DuctilityMethod ductility.Method
	Direction       ductility.Direction
	Smoothing       SmoothingParams
}

// Result is the outcome of one run. It is built once by Analyze and never
// mutated afterwards; callers may share it freely.
type Result struct {
	Name string

	// Displacement and Force are the preprocessed series.
	Displacement []float64
	Force        []float64

	// WorkingDisplacement and WorkingForce are the series the loops were
	// cut from. They differ from the preprocessed series only when
	// first-loop filtering was applied.
	WorkingDisplacement []float64
	WorkingForce        []float64
	FilterApplied       bool

	Loops     []loops.Loop
	Skeleton  skeleton.Curve
	Metrics   metrics.Set
	Ductility ductility.Result

	// Smoothed branches, present only when smoothing was enabled and the
	// matching branch had enough points.
	SmoothedPositive *smoothing.Result
	SmoothedNegative *smoothing.Result
}

// Analyze preprocesses the series, segments its loops, extracts the
// skeleton, and computes metrics and ductility. Series too short to form a
// single loop still produce a result; the dependent fields stay empty.
func Analyze(logger *zap.Logger, s *series.Series, params Params) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("series %q has no samples", nameOf(s))
	}
	if len(s.Displacement) != len(s.Force) {
		return nil, fmt.Errorf("series %q has %d displacement samples but %d force samples",
			s.Name, len(s.Displacement), len(s.Force))
	}

	d, f := series.Preprocess(s.Displacement, s.Force)
	if len(d) == 0 {
		return nil, fmt.Errorf("series %q is empty after preprocessing", s.Name)
	}

	lps, workD, workF := loops.Segment(d, f, params.FilterFirstLoop)
	curve := skeleton.Extract(workD, workF, params.SkeletonMethod)

	res := &Result{
		Name:                s.Name,
		Displacement:        d,
		Force:               f,
		WorkingDisplacement: workD,
		WorkingForce:        workF,
		FilterApplied:       params.FilterFirstLoop,
		Loops:               lps,
		Skeleton:            curve,
		Metrics:             metrics.Compute(logger, workD, workF, lps, &curve),
		Ductility:           ductility.Compute(logger, &curve, params.DuctilityMethod, params.Direction),
	}

	if params.Smoothing.Enabled {
		sm := smoothing.New(logger)
		if !curve.Positive.Empty() {
			r := sm.Smooth(curve.Positive.Displacement, curve.Positive.Force,
				params.Smoothing.Algorithm, params.Smoothing.Param, params.Smoothing.Points)
			res.SmoothedPositive = &r
		}
		if !curve.Negative.Empty() {
			r := sm.Smooth(curve.Negative.Displacement, curve.Negative.Force,
				params.Smoothing.Algorithm, params.Smoothing.Param, params.Smoothing.Points)
			res.SmoothedNegative = &r
		}
	}

	logger.Info("analysis complete",
		zap.String("op", "analysis.Analyze"),
		zap.String("series", s.Name),
		zap.Int("samples", len(d)),
		zap.Int("loops", len(lps)),
		zap.Bool("filterFirstLoop", params.FilterFirstLoop),
	)
	return res, nil
}

func nameOf(s *series.Series) string {
	if s == nil {
		return ""
	}
	return s.Name
}
