// Geometric primitives for radar chart rendering.
// Every trigonometric projection in the module goes through PolarToCartesian.

package geom

import "math"

// Point represents a 2D coordinate in screen space (y grows downward).
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PolarToCartesian maps a radius and angle (radians) around center (cx, cy)
// to screen coordinates.
func PolarToCartesian(radius, angle, cx, cy float64) Point {
	return Point{
		X: cx + radius*math.Cos(angle),
		Y: cy + radius*math.Sin(angle),
	}
}

// AxisAngle returns the angle of axis i out of n. Axis 0 points straight up
// and the rest follow clockwise in screen coordinates.
func AxisAngle(i, n int) float64 {
	if n <= 0 {
		return -math.Pi / 2
	}
	return -math.Pi/2 + float64(i)*2*math.Pi/float64(n)
}

// Rect represents an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Bounds returns the bounding box of a set of points.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y

	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
