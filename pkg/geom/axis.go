package geom

import "errors"

// ErrNoAxes is returned when an axis set is empty.
var ErrNoAxes = errors.New("geom: no axes")

const (
	// LabelRadiusFactor places axis labels just outside the outer ring.
	LabelRadiusFactor = 1.1
	// AnchorDeadZone is the distance from the center line inside which a
	// label counts as centered.
	AnchorDeadZone = 5.0
)

// TextAnchor is the horizontal alignment of an axis label.
type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// Band is the vertical position of an axis label relative to the center.
type Band int

const (
	BandCenter Band = iota
	BandAbove
	BandBelow
)

// DY returns the baseline shift for the band in em units.
func (b Band) DY() string {
	switch b {
	case BandAbove:
		return "-0.5em"
	case BandBelow:
		return "1em"
	}
	return "0.3em"
}

// DYEm returns the baseline shift as a fraction of the font size.
func (b Band) DYEm() float64 {
	switch b {
	case BandAbove:
		return -0.5
	case BandBelow:
		return 1
	}
	return 0.3
}

// Axis is one spoke of the chart with its label placement.
type Axis struct {
	Index    int
	Label    string
	Angle    float64
	End      Point
	LabelPos Point
	Anchor   TextAnchor
	Band     Band
}

// BuildAxes lays out one spoke per label.
func BuildAxes(labels []string, center Point, radius float64) ([]Axis, error) {
	if len(labels) == 0 {
		return nil, ErrNoAxes
	}

	axes := make([]Axis, len(labels))
	for i, label := range labels {
		angle := AxisAngle(i, len(labels))
		pos := PolarToCartesian(radius*LabelRadiusFactor, angle, center.X, center.Y)
		axes[i] = Axis{
			Index:    i,
			Label:    label,
			Angle:    angle,
			End:      PolarToCartesian(radius, angle, center.X, center.Y),
			LabelPos: pos,
			Anchor:   anchorFor(pos.X, center.X),
			Band:     bandFor(pos.Y, center.Y),
		}
	}
	return axes, nil
}

func anchorFor(x, cx float64) TextAnchor {
	switch {
	case x < cx-AnchorDeadZone:
		return AnchorEnd
	case x > cx+AnchorDeadZone:
		return AnchorStart
	}
	return AnchorMiddle
}

func bandFor(y, cy float64) Band {
	switch {
	case y < cy-AnchorDeadZone:
		return BandAbove
	case y > cy+AnchorDeadZone:
		return BandBelow
	}
	return BandCenter
}
