package radar

import (
	"fmt"

	"github.com/ha1tch/radar-toolkit/pkg/geom"
)

// Scene layout constants.
const (
	RadiusFactor  = 0.8  // outer radius relative to the smaller half-dimension
	TooltipOffset = 15.0 // tooltip anchor distance above the point
	TooltipWidth  = 120.0
	TooltipHeight = 20.0
	PinRadius     = 2.0
)

// Scene is the declarative description of one chart frame. Hosts draw it
// and route pointer events back through Chart.
type Scene struct {
	Width, Height float64
	Center        geom.Point
	Radius        float64
	MaxValue      float64
	Grid          []geom.GridRing
	Axes          []geom.Axis
	Curves        []CurveScene    // visible curves, in config order
	Tooltip       *TooltipOverlay // nil when hidden
}

// CurveScene is one visible curve. When Err is set the curve has no path or
// points and hosts draw Diagnostic instead.
type CurveScene struct {
	Index  int
	Name   string
	Color  string
	Path   geom.Path
	Points []PointScene
	Err    error
}

// Diagnostic returns the marker title for a malformed curve.
func (c CurveScene) Diagnostic() string {
	if c.Err == nil {
		return ""
	}
	return fmt.Sprintf("Error: Curve '%s' has incorrect number of data points", c.Name)
}

// PointScene is one data point marker with its pointer target.
type PointScene struct {
	Ref    PointRef
	Label  string
	Value  float64
	Target geom.HitTarget
}

// TooltipOverlay positions the active tooltip.
type TooltipOverlay struct {
	Tooltip
	Anchor  geom.Point // centre of the text
	Box     geom.Rect
	Pin     geom.Point
	ShowPin bool   // pinned and not editing
	Input   string // edit buffer while editing
}

// Text returns what the overlay shows: the full label, or the name prefix
// in front of the input while editing.
func (o TooltipOverlay) Text() string {
	if o.Editing {
		return o.Name() + ":"
	}
	return o.Label
}

func newOverlay(t Tooltip, buffer string) *TooltipOverlay {
	ty := t.Y - TooltipOffset
	o := &TooltipOverlay{
		Tooltip: t,
		Anchor:  geom.Point{X: t.X, Y: ty - 25 + TooltipHeight/2},
		Box:     geom.Rect{X: t.X - TooltipWidth/2, Y: ty - 25, W: TooltipWidth, H: TooltipHeight},
		Pin:     geom.Point{X: t.X + 45, Y: ty - 20},
		ShowPin: t.Pinned && !t.Editing,
	}
	if t.Editing {
		o.Input = buffer
	}
	return o
}
