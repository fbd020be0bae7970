// Package radar provides the radar chart data model, the visibility and
// tooltip state machines, and the orchestrator that turns them into a scene.
package radar

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Defaults applied by NewConfig.
const (
	DefaultMaxValue   = 100.0
	DefaultWidth      = 600
	DefaultHeight     = 500
	DefaultGridLevels = 5
)

// DataPoint is one value on one axis. ID is an optional stable identity.
type DataPoint struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	ID    string  `json:"id,omitempty"`
}

// Curve is a named series with one data point per axis.
type Curve struct {
	Name       string      `json:"name"`
	DataPoints []DataPoint `json:"data_points"`
	Color      string      `json:"color"`
}

// Values returns the raw values of c in axis order.
func (c Curve) Values() []float64 {
	vals := make([]float64, len(c.DataPoints))
	for i, dp := range c.DataPoints {
		vals[i] = dp.Value
	}
	return vals
}

// Config is the complete input of a chart.
type Config struct {
	Axes       []string `json:"axes"`
	Curves     []Curve  `json:"curves"`
	MaxValue   float64  `json:"max_value"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	GridLevels int      `json:"grid_levels"`
}

// Option adjusts a Config under construction.
type Option func(*Config)

// WithMaxValue sets the value that maps to the outer ring.
func WithMaxValue(v float64) Option {
	return func(c *Config) { c.MaxValue = v }
}

// WithSize sets the canvas size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithWidth sets the canvas width only.
func WithWidth(width int) Option {
	return func(c *Config) { c.Width = width }
}

// WithHeight sets the canvas height only.
func WithHeight(height int) Option {
	return func(c *Config) { c.Height = height }
}

// WithGridLevels sets the number of reference rings. Zero draws none.
func WithGridLevels(n int) Option {
	return func(c *Config) { c.GridLevels = n }
}

// NewConfig builds a validated Config. The slices are copied.
func NewConfig(axes []string, curves []Curve, opts ...Option) (*Config, error) {
	c := &Config{
		Axes:       cloneAxes(axes),
		Curves:     cloneCurves(curves),
		MaxValue:   DefaultMaxValue,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		GridLevels: DefaultGridLevels,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the shape of a data set: at least one axis, at least one
// curve, and one data point per axis in every curve.
func Validate(axes []string, curves []Curve) error {
	if len(axes) == 0 {
		return ErrNoAxesProvided
	}
	if len(curves) == 0 {
		return ErrNoCurvesProvided
	}
	for _, c := range curves {
		if len(c.DataPoints) != len(axes) {
			return &DataPointCountMismatchError{
				CurveName: c.Name,
				Expected:  len(axes),
				Actual:    len(c.DataPoints),
			}
		}
	}
	return nil
}

// Check validates the data shape and then the chart settings.
func (c *Config) Check() error {
	if err := Validate(c.Axes, c.Curves); err != nil {
		return err
	}
	if !(c.MaxValue > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMaxValue, c.MaxValue)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	seen := make(map[string]bool, len(c.Curves))
	for _, cv := range c.Curves {
		if seen[cv.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateCurveName, cv.Name)
		}
		seen[cv.Name] = true
	}
	return nil
}

// SetData replaces axes and curves. Nothing changes unless the new data
// passes Check.
func (c *Config) SetData(axes []string, curves []Curve) error {
	next := *c
	next.Axes = cloneAxes(axes)
	next.Curves = cloneCurves(curves)
	if err := next.Check(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Axes = cloneAxes(c.Axes)
	out.Curves = cloneCurves(c.Curves)
	return &out
}

// CurveNames returns curve names in order.
func (c *Config) CurveNames() []string {
	names := make([]string, len(c.Curves))
	for i, cv := range c.Curves {
		names[i] = cv.Name
	}
	return names
}

// Point returns the data point at (curve, point), if both indices are valid.
func (c *Config) Point(curve, point int) (*DataPoint, bool) {
	if curve < 0 || curve >= len(c.Curves) {
		return nil, false
	}
	dps := c.Curves[curve].DataPoints
	if point < 0 || point >= len(dps) {
		return nil, false
	}
	return &dps[point], true
}

// EnsurePointIDs gives every data point without an ID a fresh UUID and
// returns how many were assigned.
func (c *Config) EnsurePointIDs() int {
	n := 0
	for ci := range c.Curves {
		for pi := range c.Curves[ci].DataPoints {
			dp := &c.Curves[ci].DataPoints[pi]
			if dp.ID == "" {
				dp.ID = uuid.NewString()
				n++
			}
		}
	}
	return n
}

// FormatValue renders a value the way tooltips and labels show it: the
// shortest decimal that round-trips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cloneAxes(axes []string) []string {
	if axes == nil {
		return nil
	}
	return append([]string(nil), axes...)
}

func cloneCurves(curves []Curve) []Curve {
	if curves == nil {
		return nil
	}
	out := make([]Curve, len(curves))
	for i, cv := range curves {
		out[i] = cv
		out[i].DataPoints = append([]DataPoint(nil), cv.DataPoints...)
	}
	return out
}
