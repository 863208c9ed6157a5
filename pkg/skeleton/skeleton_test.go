package skeleton

import (
	"math"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input     string
		expected  Method
		expectErr bool
	}{
		{input: "outer_envelope", expected: OuterEnvelope},
		{input: "peak_points", expected: PeakPoints},
		{input: "envelope", expectErr: true},
		{input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseMethod(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractOuterEnvelope(t *testing.T) {
	d := []float64{0, 2, 4, 2, 0, -2, -4, -2, 0}
	f := []float64{0, 10, 20, 15, 0, -10, -20, -15, 0}

	curve := Extract(d, f, OuterEnvelope)

	wantPosD := []float64{0, 2, 4}
	wantPosF := []float64{0, 10, 20}
	if !branchEquals(curve.Positive, wantPosD, wantPosF) {
		t.Errorf("positive branch = %+v, want disp %v force %v", curve.Positive, wantPosD, wantPosF)
	}

	wantNegD := []float64{0, -2, -4}
	wantNegF := []float64{0, -10, -20}
	if !branchEquals(curve.Negative, wantNegD, wantNegF) {
		t.Errorf("negative branch = %+v, want disp %v force %v", curve.Negative, wantNegD, wantNegF)
	}
}

func TestExtractOuterEnvelopeIgnoresInnerCycles(t *testing.T) {
	// A second, smaller cycle must not push the envelope inward.
	d := []float64{0, 2, 4, 2, 0, -2, -4, -2, 0, 1, 3, 1, 0}
	f := []float64{0, 10, 20, 15, 0, -10, -20, -15, 0, 6, 14, 5, 0}

	curve := Extract(d, f, OuterEnvelope)
	for _, v := range curve.Positive.Displacement[1:] {
		if v < 2 {
			t.Errorf("envelope admitted inner point %v", v)
		}
	}
	last := curve.Positive.Displacement[curve.Positive.Len()-1]
	if last != 4 {
		t.Errorf("envelope ends at %v, want 4", last)
	}
}

func TestExtractPeakPoints(t *testing.T) {
	// Two displacement levels per direction with increasing amplitude.
	d := []float64{0, 2, 0, -2, 0, 4, 0, -4, 0}
	f := []float64{0, 10, 1, -10, -1, 18, 1, -18, 0}

	curve := Extract(d, f, PeakPoints)

	if curve.Positive.Len() != 3 {
		t.Fatalf("positive branch has %d points, want 3", curve.Positive.Len())
	}
	if curve.Positive.Displacement[1] != 2 || curve.Positive.Displacement[2] != 4 {
		t.Errorf("positive peaks = %v", curve.Positive.Displacement)
	}
	if curve.Negative.Len() != 3 {
		t.Fatalf("negative branch has %d points, want 3", curve.Negative.Len())
	}
	if curve.Negative.Displacement[1] != -2 || curve.Negative.Displacement[2] != -4 {
		t.Errorf("negative peaks = %v", curve.Negative.Displacement)
	}

	// Both branches share the force-axis intercept found between the
	// first negative and second positive peak.
	if curve.Positive.Force[0] != curve.Negative.Force[0] {
		t.Errorf("branch origins differ: %v vs %v", curve.Positive.Force[0], curve.Negative.Force[0])
	}
	if curve.Positive.Displacement[0] != 0 || curve.Negative.Displacement[0] != 0 {
		t.Errorf("branches must start at displacement zero")
	}
}

func TestCommonOriginInterpolation(t *testing.T) {
	// Zero crossing between the first negative peak (index 3) and the
	// second positive peak (index 7): between d=-1 (f=-4) and d=1 (f=6)
	// the interpolated intercept is f=1.
	d := []float64{0, 2, 0.5, -2, -1, 1, 2.5, 3, 0}
	f := []float64{0, 10, 2, -10, -4, 6, 12, 14, 0}

	curve := Extract(d, f, PeakPoints)
	if math.Abs(curve.Positive.Force[0]-1) > 1e-12 {
		t.Errorf("common origin = %v, want 1", curve.Positive.Force[0])
	}
}

func TestExtractDegenerateSeries(t *testing.T) {
	curve := Extract([]float64{0, 0.001, 0}, []float64{0, 0.001, 0}, OuterEnvelope)
	if !curve.Positive.Empty() || !curve.Negative.Empty() {
		t.Errorf("noise-level series should give empty branches, got %+v", curve)
	}
}

func branchEquals(b Branch, disp, force []float64) bool {
	if b.Len() != len(disp) {
		return false
	}
	for i := range disp {
		if math.Abs(b.Displacement[i]-disp[i]) > 1e-12 ||
			math.Abs(b.Force[i]-force[i]) > 1e-12 {
			return false
		}
	}
	return true
}
