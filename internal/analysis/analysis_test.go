package analysis

import (
	"math"
	"testing"

	"github.com/structlab/hysteresis/pkg/ductility"
	"github.com/structlab/hysteresis/pkg/series"
	"github.com/structlab/hysteresis/pkg/skeleton"
	"github.com/structlab/hysteresis/pkg/smoothing"
)

// syntheticTest builds a growing-amplitude cyclic record with elliptical
// loops: a linear spring plus a damping term that opens each cycle.
func syntheticTest() *series.Series {
	n := 200
	d := make([]float64, n)
	f := make([]float64, n)
	for i := 0; i < n; i++ {
		phase := float64(i) * 2 * math.Pi / 40
		amp := 5 + float64(i)*0.05
		d[i] = amp * math.Sin(phase)
		f[i] = 3*d[i] + 2*amp*math.Cos(phase)
	}
	return &series.Series{Name: "synthetic", Displacement: d, Force: f}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	res, err := Analyze(nil, syntheticTest(), Params{
		SkeletonMethod:  skeleton.OuterEnvelope,
		DuctilityMethod: ductility.Geometric,
		Direction:       ductility.Both,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Name != "synthetic" {
		t.Errorf("name = %q", res.Name)
	}
	if len(res.Displacement) == 0 || len(res.Displacement) != len(res.Force) {
		t.Fatalf("preprocessed series is malformed: %d vs %d", len(res.Displacement), len(res.Force))
	}
	if res.FilterApplied {
		t.Error("filter reported applied without being requested")
	}
	if len(res.Loops) < 2 {
		t.Fatalf("expected several loops, got %d", len(res.Loops))
	}
	for i, loop := range res.Loops {
		if loop.Area < 0 {
			t.Errorf("loop %d has negative area %v", i, loop.Area)
		}
	}

	if res.Skeleton.Positive.Empty() || res.Skeleton.Negative.Empty() {
		t.Fatal("skeleton branches missing")
	}
	if res.Metrics.TotalArea <= 0 {
		t.Errorf("total area = %v, want > 0", res.Metrics.TotalArea)
	}
	if res.Metrics.EquivalentDamping == nil {
		t.Error("equivalent damping missing")
	}
	if res.Ductility.Positive == nil || res.Ductility.Negative == nil {
		t.Error("ductility coefficients missing")
	}

	if res.SmoothedPositive != nil || res.SmoothedNegative != nil {
		t.Error("smoothing ran without being enabled")
	}
}

func TestAnalyzeWithSmoothing(t *testing.T) {
	res, err := Analyze(nil, syntheticTest(), Params{
		Smoothing: SmoothingParams{
			Enabled:   true,
			Algorithm: smoothing.CubicSpline,
			Points:    120,
		},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.SmoothedPositive == nil || res.SmoothedNegative == nil {
		t.Fatal("smoothed branches missing")
	}
	if len(res.SmoothedPositive.X) != 120 {
		t.Errorf("smoothed grid has %d points, want 120", len(res.SmoothedPositive.X))
	}
	if res.SmoothedPositive.Fallback != smoothing.FallbackNone {
		t.Errorf("unexpected fallback %v", res.SmoothedPositive.Fallback)
	}
}

func TestAnalyzeWithFirstLoopFilter(t *testing.T) {
	res, err := Analyze(nil, syntheticTest(), Params{FilterFirstLoop: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.FilterApplied {
		t.Error("filter not reported applied")
	}
	if len(res.WorkingDisplacement) > len(res.Displacement) {
		t.Errorf("filtered series longer than its source: %d > %d",
			len(res.WorkingDisplacement), len(res.Displacement))
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		s    *series.Series
	}{
		{name: "Nil series", s: nil},
		{name: "Empty series", s: &series.Series{Name: "empty"}},
		{
			name: "Mismatched channels",
			s: &series.Series{
				Name:         "skewed",
				Displacement: []float64{0, 1, 2},
				Force:        []float64{0, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(nil, tt.s, Params{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAnalyzeDegenerateSeriesStillReturns(t *testing.T) {
	s := &series.Series{
		Name:         "monotone",
		Displacement: []float64{0, 1, 2, 3},
		Force:        []float64{0, 3, 6, 9},
	}
	res, err := Analyze(nil, s, Params{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Loops) != 0 {
		t.Errorf("monotone push-over produced %d loops", len(res.Loops))
	}
	if res.Ductility.Positive != nil && math.IsNaN(*res.Ductility.Positive) {
		t.Error("ductility is NaN")
	}
}
