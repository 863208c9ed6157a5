package smoothing

import (
	"math"
	"testing"
)

var (
	lineX = []float64{0, 1, 2, 3, 4, 5}
	lineY = []float64{0, 2, 4, 6, 8, 10}
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input     string
		expected  Algorithm
		expectErr bool
	}{
		{input: "pchip", expected: ShapePreserving},
		{input: "akima", expected: Akima},
		{input: "bezier", expected: Bezier},
		{input: "bspline", expected: BSpline},
		{input: "savgol", expected: SavitzkyGolay},
		{input: "spline", expected: GeneralSpline},
		{input: "cubic", expected: CubicSpline},
		{input: "lowess", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseAlgorithm(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAlgorithm(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

// Every algorithm must reproduce linear data over the grid; none of them
// should bend a straight line.
func TestSmoothReproducesLinearData(t *testing.T) {
	tests := []struct {
		name  string
		algo  Algorithm
		param float64
		tol   float64
	}{
		{name: "ShapePreserving", algo: ShapePreserving, tol: 1e-9},
		{name: "Akima", algo: Akima, tol: 1e-9},
		{name: "CubicSpline", algo: CubicSpline, tol: 1e-9},
		{name: "GeneralSplineExact", algo: GeneralSpline, param: 0, tol: 1e-9},
		{name: "SavitzkyGolay", algo: SavitzkyGolay, param: 7, tol: 1e-6},
		{name: "Bezier", algo: Bezier, param: 0.5, tol: 1e-6},
	}

	s := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Smooth(lineX, lineY, tt.algo, tt.param, 101)
			if res.Fallback != FallbackNone {
				t.Fatalf("unexpected fallback %v", res.Fallback)
			}
			if len(res.X) != 101 || len(res.Y) != 101 {
				t.Fatalf("grid size = (%d, %d), want 101", len(res.X), len(res.Y))
			}
			for i := range res.X {
				want := 2 * res.X[i]
				if math.Abs(res.Y[i]-want) > tt.tol {
					t.Fatalf("y(%v) = %v, want %v", res.X[i], res.Y[i], want)
				}
			}
		})
	}
}

func TestSmoothGridSpansInput(t *testing.T) {
	s := New(nil)
	res := s.Smooth(lineX, lineY, CubicSpline, 0, 50)
	if res.X[0] != 0 || res.X[len(res.X)-1] != 5 {
		t.Errorf("grid spans [%v, %v], want [0, 5]", res.X[0], res.X[len(res.X)-1])
	}
}

func TestSmoothTinyGridRequest(t *testing.T) {
	s := New(nil)
	for _, numPoints := range []int{-1, 0, 1} {
		res := s.Smooth(lineX, lineY, CubicSpline, 0, numPoints)
		if res.Fallback != FallbackNone {
			t.Errorf("numPoints %d: fallback = %v, want none", numPoints, res.Fallback)
		}
		if len(res.X) != 300 {
			t.Errorf("numPoints %d: grid size = %d, want the 300-point default", numPoints, len(res.X))
		}
	}
}

func TestSmoothTooFewPoints(t *testing.T) {
	s := New(nil)
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 4}
	res := s.Smooth(x, y, CubicSpline, 0, 100)
	if res.Fallback != FallbackNone {
		t.Errorf("fallback = %v, want none", res.Fallback)
	}
	if len(res.X) != 3 {
		t.Errorf("short input must pass through unchanged, got %d points", len(res.X))
	}
}

func TestSmoothDeduplicatesX(t *testing.T) {
	s := New(nil)
	x := []float64{0, 1, 1, 2, 3, 4}
	y := []float64{0, 2, 99, 4, 6, 8}
	res := s.Smooth(x, y, CubicSpline, 0, 50)
	if res.Fallback != FallbackNone {
		t.Fatalf("unexpected fallback %v", res.Fallback)
	}
	// The first occurrence of x=1 wins, leaving collinear points, so the
	// whole curve stays on y=2x.
	for i := range res.X {
		if math.Abs(res.Y[i]-2*res.X[i]) > 1e-9 {
			t.Errorf("curve at x=%v is %v, want %v", res.X[i], res.Y[i], 2*res.X[i])
		}
	}
}

func TestSmoothBSplineMatchesCubicAtZeroPenalty(t *testing.T) {
	s := New(nil)
	a := s.Smooth(lineX, lineY, BSpline, 0, 60)
	b := s.Smooth(lineX, lineY, CubicSpline, 0, 60)
	if a.Fallback != FallbackNone || b.Fallback != FallbackNone {
		t.Fatalf("unexpected fallbacks %v %v", a.Fallback, b.Fallback)
	}
	for i := range a.Y {
		if math.Abs(a.Y[i]-b.Y[i]) > 1e-9 {
			t.Fatalf("zero-penalty smoothing spline differs from cubic at %d: %v vs %v", i, a.Y[i], b.Y[i])
		}
	}
}

func TestSmoothBSplineFlattensNoise(t *testing.T) {
	n := 40
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = 2*x[i] + 3*math.Pow(-1, float64(i))
	}

	s := New(nil)
	res := s.Smooth(x, y, BSpline, 10, 200)
	if res.Fallback != FallbackNone {
		t.Fatalf("unexpected fallback %v", res.Fallback)
	}

	// Away from the ends, the heavily penalized fit should sit far closer
	// to the underlying line than the +/-3 oscillation.
	for i := 40; i < 160; i++ {
		if math.Abs(res.Y[i]-2*res.X[i]) > 2 {
			t.Fatalf("smoothed value %v at x=%v strays from the trend", res.Y[i], res.X[i])
		}
	}
}

func TestSavgolWindow(t *testing.T) {
	tests := []struct {
		name       string
		param      float64
		n          int
		wantWindow int
		wantOrder  int
	}{
		{name: "Even window forced odd", param: 6, n: 300, wantWindow: 7, wantOrder: 3},
		{name: "Window clipped to series", param: 11, n: 8, wantWindow: 7, wantOrder: 3},
		{name: "Small window keeps small order", param: 2, n: 300, wantWindow: 3, wantOrder: 2},
		{name: "Floor at minimum window", param: 0, n: 300, wantWindow: 3, wantOrder: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, order := savgolWindow(tt.param, tt.n)
			if window != tt.wantWindow || order != tt.wantOrder {
				t.Errorf("savgolWindow(%v, %d) = (%d, %d), want (%d, %d)",
					tt.param, tt.n, window, order, tt.wantWindow, tt.wantOrder)
			}
		})
	}
}

func TestSavgolFilterPreservesPolynomial(t *testing.T) {
	// A cubic filter reproduces any cubic exactly, including at the edges.
	n := 25
	y := make([]float64, n)
	for i := range y {
		x := float64(i)
		y[i] = 0.5*x*x*x - 2*x*x + x - 7
	}
	out, err := savgolFilter(y, 7, 3)
	if err != nil {
		t.Fatalf("savgolFilter: %v", err)
	}
	for i := range y {
		if math.Abs(out[i]-y[i]) > 1e-6 {
			t.Fatalf("filter changed cubic at %d: %v vs %v", i, out[i], y[i])
		}
	}
}

func TestWhittakerZeroPenalty(t *testing.T) {
	y := []float64{1, 4, 2, 8, 5}
	out, err := whittaker(y, 0)
	if err != nil {
		t.Fatalf("whittaker: %v", err)
	}
	for i := range y {
		if out[i] != y[i] {
			t.Fatalf("zero penalty changed data at %d", i)
		}
	}
}

func TestFallbackString(t *testing.T) {
	if FallbackNone.String() != "none" {
		t.Errorf("FallbackNone = %q", FallbackNone.String())
	}
	if FallbackOriginal.String() != "original points" {
		t.Errorf("FallbackOriginal = %q", FallbackOriginal.String())
	}
}
