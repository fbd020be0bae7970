package geom

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrPointCountMismatch is returned when a curve's value count differs from
// the axis count.
var ErrPointCountMismatch = errors.New("geom: point count does not match axis count")

const (
	// CurveFactor scales the chord length into the control point distance.
	CurveFactor = 0.3
	// MarkerRadius is the radius of the visible data point marker.
	MarkerRadius = 4.0
	// HitRadius is the radius of the invisible pointer target.
	HitRadius = 10.0
)

// PointRadius maps a raw value onto [0, radius], clamping out-of-range values.
func PointRadius(value, maxValue, radius float64) float64 {
	if maxValue <= 0 || math.IsNaN(value) {
		return 0
	}
	ratio := value / maxValue
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return radius * ratio
}

// ProjectCurve places one screen point per value, value i on axis i.
func ProjectCurve(values []float64, axisCount int, maxValue float64, center Point, radius float64) ([]Point, error) {
	if len(values) != axisCount {
		return nil, fmt.Errorf("%w: got %d values for %d axes", ErrPointCountMismatch, len(values), axisCount)
	}

	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = PolarToCartesian(PointRadius(v, maxValue, radius), AxisAngle(i, axisCount), center.X, center.Y)
	}
	return points, nil
}

// Segment is one cubic Bézier piece of a path; it starts where the previous
// one ended.
type Segment struct {
	C1, C2, To Point
}

// Path is a closed sequence of cubic segments starting at Start.
type Path struct {
	Start    Point
	Segments []Segment
}

// SmoothClosedPath threads a closed cubic curve through points, which must
// be ordered by axis. Each segment leaves point i perpendicular to axis i
// (clockwise) and arrives at point i+1 perpendicular to axis i+1, with
// control arms of CurveFactor times the chord.
func SmoothClosedPath(points []Point) Path {
	n := len(points)
	if n == 0 {
		return Path{}
	}

	path := Path{Start: points[0], Segments: make([]Segment, 0, n)}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		from, to := points[i], points[next]
		arm := Distance(from, to) * CurveFactor

		a1 := math.Mod(AxisAngle(i, n), 2*math.Pi) + math.Pi/2
		a2 := math.Mod(AxisAngle(next, n), 2*math.Pi) - math.Pi/2

		path.Segments = append(path.Segments, Segment{
			C1: Point{from.X + arm*math.Cos(a1), from.Y + arm*math.Sin(a1)},
			C2: Point{to.X + arm*math.Cos(a2), to.Y + arm*math.Sin(a2)},
			To: to,
		})
	}
	return path
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool {
	return len(p.Segments) == 0
}

// SVG returns the path in SVG path-data syntax: "M x,y C ... Z".
func (p Path) SVG() string {
	if p.Empty() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "M %s,%s", num(p.Start.X), num(p.Start.Y))
	for _, s := range p.Segments {
		fmt.Fprintf(&sb, " C %s,%s %s,%s %s,%s",
			num(s.C1.X), num(s.C1.Y), num(s.C2.X), num(s.C2.Y), num(s.To.X), num(s.To.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

// Spline returns the path as a flat control point list
// [P0, C1, C2, P1, C3, C4, P2, ...] for use with EvaluateSpline.
func (p Path) Spline() []Point {
	if p.Empty() {
		return nil
	}
	pts := make([]Point, 0, 1+3*len(p.Segments))
	pts = append(pts, p.Start)
	for _, s := range p.Segments {
		pts = append(pts, s.C1, s.C2, s.To)
	}
	return pts
}

// Flatten approximates the path with a polyline, sampling each segment
// `steps` times. The first point is not repeated at the end.
func (p Path) Flatten(steps int) []Point {
	if p.Empty() {
		return nil
	}
	if steps < 1 {
		steps = 1
	}

	out := make([]Point, 0, steps*len(p.Segments))
	from := p.Start
	for _, s := range p.Segments {
		for k := 0; k < steps; k++ {
			out = append(out, cubicAt(from, s.C1, s.C2, s.To, float64(k)/float64(steps)))
		}
		from = s.To
	}
	return out
}

// Bounds returns the box covering all control points, which contains the
// whole curve.
func (p Path) Bounds() Rect {
	return Bounds(p.Spline())
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
