package radar

import "github.com/ha1tch/radar-toolkit/pkg/geom"

// LegendLayout arranges legend items.
type LegendLayout int

const (
	LegendVertical LegendLayout = iota
	LegendHorizontal
)

// ParseLegendLayout accepts "vertical" and "horizontal"; anything else is vertical.
func ParseLegendLayout(s string) LegendLayout {
	if s == "horizontal" {
		return LegendHorizontal
	}
	return LegendVertical
}

// Legend geometry.
const (
	LegendRowHeight   = 20.0
	LegendColumnWidth = 120.0
	LegendPanelWidth  = 150.0
	LegendSwatchSize  = 15.0
)

// LegendItem is one curve entry. Swatch and TextPos are relative to Offset.
type LegendItem struct {
	Name    string
	Color   string
	Visible bool
	Offset  geom.Point
	Swatch  geom.Rect
	TextPos geom.Point
}

// LegendView is the laid-out legend.
type LegendView struct {
	Layout        LegendLayout
	Items         []LegendItem
	Width, Height float64
}

// BuildLegend lays out one item per curve, in config order, hidden ones
// included so they can be toggled back on.
func BuildLegend(curves []Curve, vis *Visibility, layout LegendLayout) LegendView {
	lv := LegendView{Layout: layout, Items: make([]LegendItem, len(curves))}
	for i, c := range curves {
		off := geom.Point{X: 0, Y: LegendRowHeight * float64(i)}
		if layout == LegendHorizontal {
			off = geom.Point{X: LegendColumnWidth * float64(i), Y: 0}
		}
		lv.Items[i] = LegendItem{
			Name:    c.Name,
			Color:   c.Color,
			Visible: vis == nil || vis.Visible(c.Name),
			Offset:  off,
			Swatch:  geom.Rect{W: LegendSwatchSize, H: LegendSwatchSize},
			TextPos: geom.Point{X: 20, Y: 12},
		}
	}

	if layout == LegendHorizontal {
		lv.Width = LegendColumnWidth * float64(len(curves))
		lv.Height = 30
	} else {
		lv.Width = LegendPanelWidth
		lv.Height = LegendRowHeight*float64(len(curves)) + 10
	}
	return lv
}

// ItemAt returns the curve name under p, in legend coordinates.
func (l LegendView) ItemAt(p geom.Point) (string, bool) {
	for _, it := range l.Items {
		box := geom.Rect{X: it.Offset.X, Y: it.Offset.Y, W: LegendPanelWidth, H: LegendRowHeight}
		if l.Layout == LegendHorizontal {
			box.W = LegendColumnWidth
		}
		if p.X >= box.X && p.X < box.X+box.W && p.Y >= box.Y && p.Y < box.Y+box.H {
			return it.Name, true
		}
	}
	return "", false
}
