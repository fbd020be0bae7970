package geom

// DefaultGridLevels is the number of concentric reference rings.
const DefaultGridLevels = 5

// GridRing is one concentric reference ring with its value label.
type GridRing struct {
	Level   int     // 1-based
	Radius  float64 // radius·level/levels
	Value   float64 // maxValue·level/levels
	LabelAt Point   // top of the ring
}

// BuildGrid computes the reference rings for a chart of the given radius.
// levels <= 0 yields no rings.
func BuildGrid(center Point, radius, maxValue float64, levels int) []GridRing {
	if levels <= 0 {
		return nil
	}

	rings := make([]GridRing, 0, levels)
	for k := 1; k <= levels; k++ {
		frac := float64(k) / float64(levels)
		r := radius * frac
		rings = append(rings, GridRing{
			Level:   k,
			Radius:  r,
			Value:   maxValue * frac,
			LabelAt: PolarToCartesian(r, AxisAngle(0, 1), center.X, center.Y),
		})
	}
	return rings
}
