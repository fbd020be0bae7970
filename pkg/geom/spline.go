// Cubic Bézier evaluation over flat control point lists.

package geom

import "math"

// cubicAt evaluates one cubic Bézier segment at t ∈ [0,1].
func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*p0.X + 3*mt2*t*p1.X + 3*mt*t2*p2.X + t2*t*p3.X,
		Y: mt2*mt*p0.Y + 3*mt2*t*p1.Y + 3*mt*t2*p2.Y + t2*t*p3.Y,
	}
}

// locate maps a global t to a segment start index and local parameter.
func locate(spline []Point, t float64) (int, float64) {
	segments := (len(spline) - 1) / 3
	if segments < 1 {
		segments = 1
	}
	seg := int(t * float64(segments))
	if seg >= segments {
		seg = segments - 1
	}
	if seg < 0 {
		seg = 0
	}
	local := t*float64(segments) - float64(seg)
	return seg * 3, math.Max(0, math.Min(1, local))
}

// EvaluateSpline computes the point on a spline at parameter t ∈ [0,1].
// Spline format: [P0, C1, C2, P1, C3, C4, P2, ...]. Lists shorter than four
// points are treated as polylines.
func EvaluateSpline(spline []Point, t float64) Point {
	switch {
	case len(spline) == 0:
		return Point{}
	case len(spline) == 1:
		return spline[0]
	case len(spline) < 4:
		idx := int(t * float64(len(spline)-1))
		if idx >= len(spline)-1 {
			return spline[len(spline)-1]
		}
		lt := t*float64(len(spline)-1) - float64(idx)
		a, b := spline[idx], spline[idx+1]
		return Point{a.X*(1-lt) + b.X*lt, a.Y*(1-lt) + b.Y*lt}
	}

	i, lt := locate(spline, t)
	if i+3 >= len(spline) {
		return spline[len(spline)-1]
	}
	return cubicAt(spline[i], spline[i+1], spline[i+2], spline[i+3], lt)
}

// EvaluateSplineTangent computes the tangent vector at parameter t.
func EvaluateSplineTangent(spline []Point, t float64) Point {
	if len(spline) < 4 {
		if len(spline) >= 2 {
			last := spline[len(spline)-1]
			return Point{last.X - spline[0].X, last.Y - spline[0].Y}
		}
		return Point{1, 0}
	}

	i, lt := locate(spline, t)
	if i+3 >= len(spline) {
		return Point{1, 0}
	}
	p0, p1, p2, p3 := spline[i], spline[i+1], spline[i+2], spline[i+3]

	mt := 1 - lt
	return Point{
		X: 3*mt*mt*(p1.X-p0.X) + 6*mt*lt*(p2.X-p1.X) + 3*lt*lt*(p3.X-p2.X),
		Y: 3*mt*mt*(p1.Y-p0.Y) + 6*mt*lt*(p2.Y-p1.Y) + 3*lt*lt*(p3.Y-p2.Y),
	}
}

// SplineLength approximates the length of a spline by sampling.
func SplineLength(spline []Point) float64 {
	if len(spline) < 2 {
		return 0
	}

	const samples = 100
	length := 0.0
	prev := EvaluateSpline(spline, 0)
	for k := 1; k <= samples; k++ {
		cur := EvaluateSpline(spline, float64(k)/samples)
		length += Distance(prev, cur)
		prev = cur
	}
	return length
}
