package geom

// HitTarget is the pointer-sensitive area around a data point. Marker is the
// drawn radius; Radius is the larger invisible capture radius.
type HitTarget struct {
	Center Point
	Marker float64
	Radius float64
}

// NewHitTarget returns a target with the standard marker and capture radii.
func NewHitTarget(center Point) HitTarget {
	return HitTarget{Center: center, Marker: MarkerRadius, Radius: HitRadius}
}

// Contains reports whether p falls within the capture radius.
func (h HitTarget) Contains(p Point) bool {
	return Distance(h.Center, p) <= h.Radius
}
