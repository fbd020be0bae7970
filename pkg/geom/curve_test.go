package geom

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestProjectCurveScenario(t *testing.T) {
	center := Point{300, 250}
	pts, err := ProjectCurve([]float64{50, 100}, 2, 100, center, 80)
	if err != nil {
		t.Fatalf("ProjectCurve failed: %v", err)
	}

	if !near(pts[0].X, 300) || !near(pts[0].Y, 210) {
		t.Errorf("Point 0 expected (300, 210), got (%.2f, %.2f)", pts[0].X, pts[0].Y)
	}
	if !near(pts[1].X, 300) || !near(pts[1].Y, 330) {
		t.Errorf("Point 1 expected (300, 330), got (%.2f, %.2f)", pts[1].X, pts[1].Y)
	}
}

func TestProjectCurveMismatch(t *testing.T) {
	_, err := ProjectCurve([]float64{1, 2}, 3, 100, Point{}, 80)
	if !errors.Is(err, ErrPointCountMismatch) {
		t.Errorf("Expected ErrPointCountMismatch, got %v", err)
	}
}

func TestPointRadiusClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"zero", 0, 0},
		{"half", 50, 40},
		{"max", 100, 80},
		{"double max saturates", 200, 80},
		{"negative sits at center", -30, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PointRadius(tc.value, 100, 80)
			if math.Abs(got-tc.expected) > eps {
				t.Errorf("Expected radius %.2f, got %.2f", tc.expected, got)
			}
		})
	}
}

func TestSmoothClosedPathShape(t *testing.T) {
	for n := 1; n <= 8; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(10 * (i + 1))
		}
		pts, err := ProjectCurve(values, n, 100, Point{100, 100}, 80)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		path := SmoothClosedPath(pts)
		if len(path.Segments) != n {
			t.Errorf("n=%d: expected %d segments, got %d", n, n, len(path.Segments))
		}
		if path.Start != pts[0] {
			t.Errorf("n=%d: path should start at point 0", n)
		}
		last := path.Segments[len(path.Segments)-1].To
		if last != pts[0] {
			t.Errorf("n=%d: path should end at point 0, got (%.2f, %.2f)", n, last.X, last.Y)
		}

		d := path.SVG()
		if !strings.HasPrefix(d, "M ") || !strings.HasSuffix(d, " Z") {
			t.Errorf("n=%d: unexpected path data %q", n, d)
		}
		if strings.Count(d, "M") != 1 || strings.Count(d, "C") != n {
			t.Errorf("n=%d: expected one subpath with %d cubics, got %q", n, n, d)
		}
	}
}

func TestSmoothClosedPathControlPoints(t *testing.T) {
	// Square of equal values: point 0 up, point 1 right.
	pts, _ := ProjectCurve([]float64{100, 100, 100, 100}, 4, 100, Point{0, 0}, 10)
	path := SmoothClosedPath(pts)

	seg := path.Segments[0]
	arm := Distance(pts[0], pts[1]) * CurveFactor

	// Leaving axis 0 (-90°) at +90° gives angle 0: straight right.
	if !near(seg.C1.X, pts[0].X+arm) || !near(seg.C1.Y, pts[0].Y) {
		t.Errorf("C1 expected (%.3f, %.3f), got (%.3f, %.3f)", pts[0].X+arm, pts[0].Y, seg.C1.X, seg.C1.Y)
	}
	// Arriving at axis 1 (0°) at -90° gives straight up.
	if !near(seg.C2.X, pts[1].X) || !near(seg.C2.Y, pts[1].Y-arm) {
		t.Errorf("C2 expected (%.3f, %.3f), got (%.3f, %.3f)", pts[1].X, pts[1].Y-arm, seg.C2.X, seg.C2.Y)
	}
}

func TestPathSVGFormat(t *testing.T) {
	path := Path{
		Start:    Point{1, 2},
		Segments: []Segment{{C1: Point{3.5, 4}, C2: Point{5, 6.25}, To: Point{1, 2}}},
	}
	want := "M 1,2 C 3.5,4 5,6.25 1,2 Z"
	if got := path.SVG(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if (Path{}).SVG() != "" {
		t.Error("Empty path should render empty data")
	}
}

func TestPathFlatten(t *testing.T) {
	pts, _ := ProjectCurve([]float64{80, 60, 90}, 3, 100, Point{50, 50}, 40)
	path := SmoothClosedPath(pts)

	poly := path.Flatten(8)
	if len(poly) != 24 {
		t.Fatalf("Expected 24 samples, got %d", len(poly))
	}
	for i, p := range pts {
		if poly[i*8] != p {
			t.Errorf("Sample %d should coincide with data point %d", i*8, i)
		}
	}

	b := path.Bounds()
	b = Rect{X: b.X - 1e-9, Y: b.Y - 1e-9, W: b.W + 2e-9, H: b.H + 2e-9}
	for _, p := range poly {
		if !b.Contains(p) {
			t.Errorf("Sample (%.2f, %.2f) outside control bounds", p.X, p.Y)
		}
	}
}

func TestHitTarget(t *testing.T) {
	h := NewHitTarget(Point{100, 100})
	if h.Marker != 4 || h.Radius != 10 {
		t.Errorf("Expected marker 4 and hit radius 10, got %.0f/%.0f", h.Marker, h.Radius)
	}
	if !h.Contains(Point{106, 108}) {
		t.Error("Point at distance 10 should hit")
	}
	if h.Contains(Point{111, 100}) {
		t.Error("Point at distance 11 should miss")
	}
}
