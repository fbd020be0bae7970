package radar

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/ha1tch/radar-toolkit/pkg/geom"
)

// ValueChangeFunc is notified after a data point value changes.
type ValueChangeFunc func(curveIndex, pointIndex int, value float64)

// LegendClickFunc is notified when a legend entry is clicked.
type LegendClickFunc func(curveName string)

// Chart owns a chart's data, curve visibility and tooltip, and is the only
// place they change. Hosts call its event methods and draw Scene.
type Chart struct {
	cfg        *Config
	visibility *Visibility
	tooltips   *Tooltips
	legend     LegendLayout

	onValueChange ValueChangeFunc
	onLegendClick LegendClickFunc

	log zerolog.Logger
}

// ChartOption configures a Chart.
type ChartOption func(*Chart)

// WithLogger sets the logger for state transitions.
func WithLogger(l zerolog.Logger) ChartOption {
	return func(c *Chart) { c.log = l }
}

// OnValueChange registers the value change callback.
func OnValueChange(fn ValueChangeFunc) ChartOption {
	return func(c *Chart) { c.onValueChange = fn }
}

// OnLegendClick registers the legend click callback.
func OnLegendClick(fn LegendClickFunc) ChartOption {
	return func(c *Chart) { c.onLegendClick = fn }
}

// WithLegendLayout sets the legend arrangement.
func WithLegendLayout(l LegendLayout) ChartOption {
	return func(c *Chart) { c.legend = l }
}

// NewChart validates cfg and returns a chart holding a private copy of it.
func NewChart(cfg *Config, opts ...ChartOption) (*Chart, error) {
	if cfg == nil {
		return nil, fmt.Errorf("radar: nil config")
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	c := &Chart{
		cfg: cfg.Clone(),
		log: zerolog.Nop(),
	}
	c.visibility = NewVisibility(c.cfg.CurveNames())
	c.tooltips = NewTooltips(c.commitEdit)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the current data.
func (c *Chart) Config() *Config {
	return c.cfg.Clone()
}

// Layout returns the chart center and outer radius.
func (c *Chart) Layout() (geom.Point, float64) {
	cx := float64(c.cfg.Width) / 2
	cy := float64(c.cfg.Height) / 2
	return geom.Point{X: cx, Y: cy}, math.Min(cx, cy) * RadiusFactor
}

// Visible reports whether the named curve is shown.
func (c *Chart) Visible(name string) bool {
	return c.visibility.Visible(name)
}

// VisibleCurves returns the shown curves with their config indices.
func (c *Chart) VisibleCurves() []IndexedCurve {
	return c.visibility.Filter(c.cfg.Curves)
}

// SetData replaces axes and curves after validation. On success visibility
// is reconciled by curve name and the tooltip is hidden.
func (c *Chart) SetData(axes []string, curves []Curve) error {
	if err := c.cfg.SetData(axes, curves); err != nil {
		c.log.Warn().Err(err).Msg("rejected chart data")
		return err
	}
	if c.visibility.Reconcile(c.cfg.CurveNames()) {
		c.log.Debug().Strs("curves", c.cfg.CurveNames()).Msg("visibility reconciled")
	}
	c.tooltips.Hide()
	c.log.Info().Int("axes", len(axes)).Int("curves", len(curves)).Msg("chart data replaced")
	return nil
}

// SetDataPointValue overwrites one value in place. Out-of-range indices are
// ignored. It reports whether a value was written.
func (c *Chart) SetDataPointValue(curveIndex, pointIndex int, value float64) bool {
	dp, ok := c.cfg.Point(curveIndex, pointIndex)
	if !ok {
		c.log.Debug().Int("curve", curveIndex).Int("point", pointIndex).Msg("value change ignored: index out of range")
		return false
	}

	dp.Value = value
	if t, ok := c.tooltipFor(PointRef{Curve: curveIndex, Point: pointIndex}); ok {
		c.tooltips.Refresh(t)
	}
	c.log.Debug().Int("curve", curveIndex).Int("point", pointIndex).Float64("value", value).Msg("value changed")
	if c.onValueChange != nil {
		c.onValueChange(curveIndex, pointIndex, value)
	}
	return true
}

// LegendClick toggles the named curve and forwards the click. Hiding the
// curve that owns the tooltip also hides the tooltip.
func (c *Chart) LegendClick(name string) {
	visible, ok := c.visibility.Toggle(name)
	if ok {
		c.log.Debug().Str("curve", name).Bool("visible", visible).Msg("curve toggled")
		if t, shown := c.tooltips.Active(); shown && !visible && c.curveName(t.CurveIndex) == name {
			c.tooltips.Hide()
		}
	}
	if c.onLegendClick != nil {
		c.onLegendClick(name)
	}
}

// Legend lays out the legend for all curves.
func (c *Chart) Legend() LegendView {
	return BuildLegend(c.cfg.Curves, c.visibility, c.legend)
}

// TooltipState returns the tooltip phase.
func (c *Chart) TooltipState() TooltipState {
	return c.tooltips.State()
}

// Tooltip returns the active tooltip.
func (c *Chart) Tooltip() (Tooltip, bool) {
	return c.tooltips.Active()
}

// InputBuffer returns the tooltip edit text.
func (c *Chart) InputBuffer() string {
	return c.tooltips.Buffer()
}

// PointerEnter handles the pointer moving onto a data point.
func (c *Chart) PointerEnter(ref PointRef) {
	t, ok := c.tooltipFor(ref)
	if !ok {
		return
	}
	if c.tooltips.Enter(t) {
		c.log.Trace().Int("curve", ref.Curve).Int("point", ref.Point).Msg("hover")
	}
}

// PointerLeave handles the pointer leaving a data point.
func (c *Chart) PointerLeave(ref PointRef) {
	c.tooltips.Leave(ref)
}

// Click handles a click on a data point.
func (c *Chart) Click(ref PointRef) {
	t, ok := c.tooltipFor(ref)
	if !ok {
		return
	}
	c.tooltips.Click(t)
	c.log.Debug().Int("curve", ref.Curve).Int("point", ref.Point).Stringer("state", c.tooltips.State()).Msg("tooltip click")
}

// StartEdit opens the edit input on the pinned tooltip.
func (c *Chart) StartEdit() bool {
	return c.tooltips.StartEdit()
}

// Input replaces the edit text.
func (c *Chart) Input(text string) {
	c.tooltips.SetInput(text)
}

// Key forwards Enter and Escape to the tooltip editor.
func (c *Chart) Key(k Key) bool {
	return c.tooltips.Key(k)
}

// Blur commits the edit as the input loses focus.
func (c *Chart) Blur() bool {
	return c.tooltips.Blur()
}

// PointAt returns the visible data point whose hit target contains p,
// nearest first.
func (c *Chart) PointAt(p geom.Point) (PointRef, bool) {
	var (
		best  PointRef
		found bool
		dist  = math.Inf(1)
	)
	for _, cs := range c.Scene().Curves {
		for _, ps := range cs.Points {
			if !ps.Target.Contains(p) {
				continue
			}
			if d := geom.Distance(ps.Target.Center, p); d <= dist {
				best, dist, found = ps.Ref, d, true
			}
		}
	}
	return best, found
}

// Scene renders the current state.
func (c *Chart) Scene() Scene {
	center, radius := c.Layout()
	axes, err := geom.BuildAxes(c.cfg.Axes, center, radius)
	if err != nil {
		c.log.Error().Err(err).Msg("cannot lay out axes")
	}

	s := Scene{
		Width:    float64(c.cfg.Width),
		Height:   float64(c.cfg.Height),
		Center:   center,
		Radius:   radius,
		MaxValue: c.cfg.MaxValue,
		Grid:     geom.BuildGrid(center, radius, c.cfg.MaxValue, c.cfg.GridLevels),
		Axes:     axes,
	}

	for _, ic := range c.VisibleCurves() {
		s.Curves = append(s.Curves, c.curveScene(ic, center, radius))
	}

	if t, ok := c.tooltips.Active(); ok {
		if fresh, ok := c.tooltipFor(t.Ref()); ok {
			t.X, t.Y = fresh.X, fresh.Y
			t.Value, t.Label = fresh.Value, fresh.Label
		}
		s.Tooltip = newOverlay(t, c.tooltips.Buffer())
	}
	return s
}

func (c *Chart) curveScene(ic IndexedCurve, center geom.Point, radius float64) CurveScene {
	cs := CurveScene{Index: ic.Index, Name: ic.Name, Color: ic.Color}

	pts, err := geom.ProjectCurve(ic.Values(), len(c.cfg.Axes), c.cfg.MaxValue, center, radius)
	if err != nil {
		c.log.Warn().Err(err).Str("curve", ic.Name).Msg("curve not drawn")
		cs.Err = err
		return cs
	}

	cs.Path = geom.SmoothClosedPath(pts)
	cs.Points = make([]PointScene, len(pts))
	for i, p := range pts {
		dp := ic.DataPoints[i]
		cs.Points[i] = PointScene{
			Ref:    PointRef{Curve: ic.Index, Point: i},
			Label:  dp.Label,
			Value:  dp.Value,
			Target: geom.NewHitTarget(p),
		}
	}
	return cs
}

// tooltipFor builds the tooltip record for a visible, well-formed point.
func (c *Chart) tooltipFor(ref PointRef) (Tooltip, bool) {
	dp, ok := c.cfg.Point(ref.Curve, ref.Point)
	if !ok {
		return Tooltip{}, false
	}
	cv := c.cfg.Curves[ref.Curve]
	if !c.visibility.Visible(cv.Name) || len(cv.DataPoints) != len(c.cfg.Axes) {
		return Tooltip{}, false
	}

	center, radius := c.Layout()
	pos := geom.PolarToCartesian(
		geom.PointRadius(dp.Value, c.cfg.MaxValue, radius),
		geom.AxisAngle(ref.Point, len(c.cfg.Axes)),
		center.X, center.Y)

	return Tooltip{
		CurveIndex: ref.Curve,
		PointIndex: ref.Point,
		ID:         dp.ID,
		Label:      dp.Label + ": " + FormatValue(dp.Value),
		Value:      dp.Value,
		X:          pos.X,
		Y:          pos.Y,
		Color:      cv.Color,
	}, true
}

// commitEdit writes an accepted edit back, refusing it when the point at
// that index is no longer the one the tooltip was opened on.
func (c *Chart) commitEdit(t Tooltip, value float64) bool {
	dp, ok := c.cfg.Point(t.CurveIndex, t.PointIndex)
	if !ok {
		return false
	}
	if t.ID != "" && dp.ID != t.ID {
		c.log.Warn().Str("want", t.ID).Str("have", dp.ID).Msg("edit discarded: point changed")
		return false
	}
	return c.SetDataPointValue(t.CurveIndex, t.PointIndex, value)
}

func (c *Chart) curveName(index int) string {
	if index < 0 || index >= len(c.cfg.Curves) {
		return ""
	}
	return c.cfg.Curves[index].Name
}
