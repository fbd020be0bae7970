package geom

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPolarToCartesianCardinal(t *testing.T) {
	cx, cy := 300.0, 250.0
	tests := []struct {
		name   string
		angle  float64
		dx, dy float64
	}{
		{"right", 0, 1, 0},
		{"up", -math.Pi / 2, 0, -1},
		{"left", math.Pi, -1, 0},
		{"down", math.Pi / 2, 0, 1},
	}

	for _, r := range []float64{0, 1, 40, 200} {
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				p := PolarToCartesian(r, tc.angle, cx, cy)
				if !near(p.X, cx+r*tc.dx) || !near(p.Y, cy+r*tc.dy) {
					t.Errorf("r=%.0f: expected (%.2f, %.2f), got (%.2f, %.2f)",
						r, cx+r*tc.dx, cy+r*tc.dy, p.X, p.Y)
				}
			})
		}
	}
}

func TestAxisAngleEvenSpacing(t *testing.T) {
	for n := 1; n <= 12; n++ {
		if math.Abs(AxisAngle(0, n)+math.Pi/2) > eps {
			t.Errorf("n=%d: first axis expected at -90°, got %.4f rad", n, AxisAngle(0, n))
		}
		step := 2 * math.Pi / float64(n)
		for i := 1; i < n; i++ {
			got := AxisAngle(i, n) - AxisAngle(i-1, n)
			if math.Abs(got-step) > eps {
				t.Errorf("n=%d i=%d: expected step %.4f, got %.4f", n, i, step, got)
			}
		}
	}
}

func TestBuildGrid(t *testing.T) {
	center := Point{100, 100}
	rings := BuildGrid(center, 80, 100, DefaultGridLevels)

	if len(rings) != 5 {
		t.Fatalf("Expected 5 rings, got %d", len(rings))
	}
	for i, ring := range rings {
		k := float64(i + 1)
		if ring.Level != i+1 {
			t.Errorf("Ring %d: expected level %d, got %d", i, i+1, ring.Level)
		}
		if !near(ring.Radius, 80*k/5) {
			t.Errorf("Ring %d: expected radius %.1f, got %.1f", i, 80*k/5, ring.Radius)
		}
		if !near(ring.Value, 100*k/5) {
			t.Errorf("Ring %d: expected value %.1f, got %.1f", i, 100*k/5, ring.Value)
		}
		if !near(ring.LabelAt.X, 100) || !near(ring.LabelAt.Y, 100-ring.Radius) {
			t.Errorf("Ring %d: label should sit at top of ring, got (%.2f, %.2f)", i, ring.LabelAt.X, ring.LabelAt.Y)
		}
	}

	if got := BuildGrid(center, 80, 100, 0); len(got) != 0 {
		t.Errorf("Expected no rings for zero levels, got %d", len(got))
	}
}

func TestBuildAxes(t *testing.T) {
	center := Point{200, 200}
	axes, err := BuildAxes([]string{"N", "E", "S", "W"}, center, 100)
	if err != nil {
		t.Fatalf("BuildAxes failed: %v", err)
	}

	tests := []struct {
		anchor TextAnchor
		band   Band
		dy     string
	}{
		{AnchorMiddle, BandAbove, "-0.5em"},
		{AnchorStart, BandCenter, "0.3em"},
		{AnchorMiddle, BandBelow, "1em"},
		{AnchorEnd, BandCenter, "0.3em"},
	}

	for i, tc := range tests {
		a := axes[i]
		if a.Anchor != tc.anchor {
			t.Errorf("Axis %s: expected anchor %s, got %s", a.Label, tc.anchor, a.Anchor)
		}
		if a.Band != tc.band || a.Band.DY() != tc.dy {
			t.Errorf("Axis %s: expected dy %s, got %s", a.Label, tc.dy, a.Band.DY())
		}
		if !near(Distance(center, a.End), 100) {
			t.Errorf("Axis %s: spoke should end at radius 100", a.Label)
		}
		if !near(Distance(center, a.LabelPos), 110) {
			t.Errorf("Axis %s: label should sit at radius 110, got %.2f", a.Label, Distance(center, a.LabelPos))
		}
	}

	if _, err := BuildAxes(nil, center, 100); !errors.Is(err, ErrNoAxes) {
		t.Errorf("Expected ErrNoAxes, got %v", err)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 15, H: 15}
	if !r.Contains(Point{10, 10}) || !r.Contains(Point{25, 25}) {
		t.Error("Edges should be inside")
	}
	if r.Contains(Point{26, 12}) {
		t.Error("Point right of rect should be outside")
	}
	c := r.Center()
	if c.X != 17.5 || c.Y != 17.5 {
		t.Errorf("Expected center (17.5, 17.5), got (%.1f, %.1f)", c.X, c.Y)
	}
}
