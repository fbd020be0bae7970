package radarfile

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// SVGOptions controls SVG rendering.
type SVGOptions struct {
	Theme       radar.Theme // light, system or dark
	PrefersDark bool        // how system resolves
	Title       string      // optional caption above the chart
	FontFamily  string
	HitTargets  bool // emit invisible pointer targets for hosts that wire events
	LegendGap   int  // space between chart and legend
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Theme:      radar.ThemeLight,
		FontFamily: "sans-serif",
		HitTargets: true,
		LegendGap:  10,
	}
}

// GenerateSVG renders a scene, and the legend when non-nil, as a standalone
// SVG document.
func GenerateSVG(s radar.Scene, legend *radar.LegendView, opts SVGOptions) string {
	if opts.FontFamily == "" {
		opts.FontFamily = "sans-serif"
	}
	pal := radar.PaletteFor(opts.Theme, opts.PrefersDark)

	fr := computeFrame(s, legend, opts.Title, opts.LegendGap)
	width, height, top := fr.width, fr.height, fr.top

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">
<style>
  text { font-family: %s; }
  .grid { fill: none; stroke: %s; }
  .grid-label { font-size: 10px; fill: %s; text-anchor: middle; }
  .axis { stroke: %s; stroke-width: 1; }
  .axis-label { font-size: 12px; fill: %s; }
  .curve { fill-opacity: 0.3; stroke-width: 2; stroke-linejoin: round; pointer-events: none; }
  .hit-target { fill: transparent; stroke: none; pointer-events: all; cursor: pointer; }
  .tooltip-box { fill: %s; opacity: 0.8; }
  .tooltip-text { font-size: 12px; fill: %s; text-anchor: middle; dominant-baseline: middle; }
  .tooltip-input { font-size: 10px; fill: %s; }
  .legend-text { font-size: 12px; fill: %s; cursor: pointer; }
  .legend-hidden { text-decoration: line-through; opacity: 0.7; }
  .title { font-size: 16px; font-weight: bold; text-anchor: middle; fill: %s; }
</style>
<rect width="%s" height="%s" fill="%s"/>
`, f1(width), f1(height), f1(width), f1(height),
		html.EscapeString(opts.FontFamily),
		pal.Grid, pal.GridLabel, pal.Axis, pal.AxisLabel,
		pal.TooltipFill, pal.TooltipText, pal.TooltipText, pal.LegendText, pal.AxisLabel,
		f1(width), f1(height), pal.Background))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="20" class="title">%s</text>
`, f1(s.Width/2), html.EscapeString(opts.Title)))
	}

	if top > 0 {
		sb.WriteString(fmt.Sprintf(`<g transform="translate(0, %s)">
`, f1(top)))
	}
	writeChart(&sb, s, opts)
	if top > 0 {
		sb.WriteString("</g>\n")
	}

	if legend != nil {
		sb.WriteString(fmt.Sprintf(`<g class="legend" transform="translate(%s, %s)">
`, f1(fr.legendX), f1(fr.legendY)))
		writeLegend(&sb, *legend)
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeChart(sb *strings.Builder, s radar.Scene, opts SVGOptions) {
	cx, cy := s.Center.X, s.Center.Y

	// Rings first, then spokes, so labels stay readable.
	for _, ring := range s.Grid {
		sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" class="grid"/>
`, f1(cx), f1(cy), f1(ring.Radius)))
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="grid-label">%s</text>
`, f1(ring.LabelAt.X), f1(ring.LabelAt.Y), html.EscapeString(gridValue(ring.Value))))
	}

	for _, a := range s.Axes {
		sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" class="axis"/>
`, f1(cx), f1(cy), f1(a.End.X), f1(a.End.Y)))
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="%s" dy="%s" class="axis-label">%s</text>
`, f1(a.LabelPos.X), f1(a.LabelPos.Y), a.Anchor, a.Band.DY(), html.EscapeString(a.Label)))
	}

	for _, c := range s.Curves {
		color := html.EscapeString(c.Color)
		if c.Err != nil {
			sb.WriteString(fmt.Sprintf(`<g class="curve-error" data-curve="%d"><circle cx="%s" cy="%s" r="6" fill="red"/><title>%s</title></g>
`, c.Index, f1(cx), f1(cy), html.EscapeString(c.Diagnostic())))
			continue
		}

		sb.WriteString(fmt.Sprintf(`<g class="radar-curve" data-curve="%d">
<path d="%s" fill="%s" stroke="%s" class="curve"/>
`, c.Index, c.Path.SVG(), color, color))
		for _, p := range c.Points {
			t := p.Target
			sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>
`, f1(t.Center.X), f1(t.Center.Y), f1(t.Marker), color))
			if opts.HitTargets {
				sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" class="hit-target" data-curve="%d" data-point="%d"><title>%s</title></circle>
`, f1(t.Center.X), f1(t.Center.Y), f1(t.Radius), p.Ref.Curve, p.Ref.Point,
					html.EscapeString(p.Label+": "+radar.FormatValue(p.Value))))
			}
		}
		sb.WriteString("</g>\n")
	}

	if s.Tooltip != nil {
		writeTooltip(sb, *s.Tooltip)
	}
}

func writeTooltip(sb *strings.Builder, o radar.TooltipOverlay) {
	class := "tooltip"
	if o.Pinned {
		class += " tooltip-pinned"
	}
	sb.WriteString(fmt.Sprintf(`<g class="%s">
<rect x="%s" y="%s" width="%s" height="%s" rx="3" ry="3" class="tooltip-box"/>
`, class, f1(o.Box.X), f1(o.Box.Y), f1(o.Box.W), f1(o.Box.H)))

	if o.Editing {
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="tooltip-input" dominant-baseline="middle">%s</text>
<rect x="%s" y="%s" width="%s" height="%s" rx="2" fill="none" stroke="#6b7280"/>
<text x="%s" y="%s" class="tooltip-input" text-anchor="middle" dominant-baseline="middle">%s</text>
`,
			f1(o.Box.X+6), f1(o.Anchor.Y), html.EscapeString(o.Text()),
			f1(o.Anchor.X-10), f1(o.Box.Y+3), f1(o.Box.W/2+4), f1(o.Box.H-6),
			f1(o.Anchor.X+16), f1(o.Anchor.Y), html.EscapeString(o.Input)))
	} else {
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="tooltip-text">%s</text>
`, f1(o.Anchor.X), f1(o.Anchor.Y), html.EscapeString(o.Text())))
	}

	if o.ShowPin {
		sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" class="tooltip-pin-indicator"/>
`, f1(o.Pin.X), f1(o.Pin.Y), f1(radar.PinRadius), html.EscapeString(o.Color)))
	}
	sb.WriteString("</g>\n")
}

func writeLegend(sb *strings.Builder, l radar.LegendView) {
	for _, it := range l.Items {
		swatchOpacity, textClass := "", "legend-text"
		if !it.Visible {
			swatchOpacity = ` opacity="0.3"`
			textClass += " legend-hidden"
		}
		sb.WriteString(fmt.Sprintf(`<g transform="translate(%s, %s)" data-curve-name="%s">
<rect width="%s" height="%s" fill="%s"%s/>
<text x="%s" y="%s" class="%s">%s</text>
</g>
`, f1(it.Offset.X), f1(it.Offset.Y), html.EscapeString(it.Name),
			f1(it.Swatch.W), f1(it.Swatch.H), html.EscapeString(it.Color), swatchOpacity,
			f1(it.TextPos.X), f1(it.TextPos.Y), textClass, html.EscapeString(it.Name)))
	}
}

// GenerateLegendSVG renders the legend on its own.
func GenerateLegendSVG(l radar.LegendView, opts SVGOptions) string {
	pal := radar.PaletteFor(opts.Theme, opts.PrefersDark)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">
<style>
  .legend-text { font-family: sans-serif; font-size: 12px; fill: %s; cursor: pointer; }
  .legend-hidden { text-decoration: line-through; opacity: 0.7; }
</style>
`, f1(l.Width), f1(l.Height), pal.LegendText))
	writeLegend(&sb, l)
	sb.WriteString("</svg>\n")
	return sb.String()
}

// f1 formats a coordinate with one decimal, dropping a trailing ".0".
func f1(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0"
	}
	return s
}

func gridValue(v float64) string {
	return radar.FormatValue(math.Round(v*100) / 100)
}
