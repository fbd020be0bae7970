// Native PNG rendering for radar charts.
// Mirrors the SVG renderer output using Go's image packages.

package radarfile

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/radar-toolkit/pkg/geom"
	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Theme       radar.Theme
	PrefersDark bool
	Title       string
	Supersample int // render scale before downsampling
	LegendGap   int
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Theme:       radar.ThemeLight,
		Supersample: 4,
		LegendGap:   10,
	}
}

// fallbackColor is used for curve colours go-colorful cannot parse.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// renderContext holds rendering parameters including scale
type renderContext struct {
	img   *image.RGBA
	scale float64
	faces map[float64]font.Face // by unscaled pixel size
	font  *opentype.Font
}

func newRenderContext(img *image.RGBA, scale int) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &renderContext{
		img:   img,
		scale: float64(scale),
		faces: make(map[float64]font.Face),
		font:  fnt,
	}, nil
}

func (ctx *renderContext) face(size float64) font.Face {
	if f, ok := ctx.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(ctx.font, &opentype.FaceOptions{
		Size:    size * ctx.scale,
		DPI:     72,
		Hinting: font.HintingNone, // supersampling smooths instead
	})
	if err != nil {
		return nil
	}
	ctx.faces[size] = f
	return f
}

func (ctx *renderContext) close() {
	for _, f := range ctx.faces {
		f.Close()
	}
}

// pt scales a scene point into image space, offset by (dx, dy) scene units.
func (ctx *renderContext) pt(p geom.Point, dx, dy float64) geom.Point {
	return geom.Point{X: (p.X + dx) * ctx.scale, Y: (p.Y + dy) * ctx.scale}
}

// RenderPNG renders a scene, and the legend when non-nil, as PNG.
func RenderPNG(s radar.Scene, legend *radar.LegendView, w io.Writer, opts PNGOptions) error {
	img, err := RenderImage(s, legend, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderImage rasterizes a scene at its natural size. It draws at
// opts.Supersample times the size and downsamples for anti-aliasing.
func RenderImage(s radar.Scene, legend *radar.LegendView, opts PNGOptions) (*image.RGBA, error) {
	scale := opts.Supersample
	if scale < 1 {
		scale = 4
	}
	fr := computeFrame(s, legend, opts.Title, opts.LegendGap)
	width, height := int(math.Ceil(fr.width)), int(math.Ceil(fr.height))

	large := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	ctx, err := newRenderContext(large, scale)
	if err != nil {
		return nil, err
	}
	defer ctx.close()

	pal := radar.PaletteFor(opts.Theme, opts.PrefersDark)
	draw.Draw(large, large.Bounds(), image.NewUniform(parseColor(pal.Background)), image.Point{}, draw.Src)

	if opts.Title != "" {
		drawText(ctx, ctx.pt(geom.Point{X: s.Width / 2, Y: 20}, 0, 0), opts.Title, 16, geom.AnchorMiddle, 0, parseColor(pal.AxisLabel))
	}
	drawScene(ctx, s, fr.top, pal)
	if legend != nil {
		drawLegend(ctx, *legend, fr.legendX, fr.legendY, pal)
	}

	final := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return final, nil
}

func drawScene(ctx *renderContext, s radar.Scene, top float64, pal radar.Palette) {
	center := ctx.pt(s.Center, 0, top)
	gridColor := parseColor(pal.Grid)
	for _, ring := range s.Grid {
		drawCircle(ctx, center, ring.Radius*ctx.scale, 1, gridColor)
	}
	for _, ring := range s.Grid {
		drawText(ctx, ctx.pt(ring.LabelAt, 0, top), gridValue(ring.Value), 10, geom.AnchorMiddle, 0, parseColor(pal.GridLabel))
	}

	axisColor, labelColor := parseColor(pal.Axis), parseColor(pal.AxisLabel)
	for _, a := range s.Axes {
		drawLine(ctx, center, ctx.pt(a.End, 0, top), 1, axisColor)
		drawText(ctx, ctx.pt(a.LabelPos, 0, top), a.Label, 12, a.Anchor, a.Band.DYEm(), labelColor)
	}

	for _, c := range s.Curves {
		if c.Err != nil {
			drawDisc(ctx, center, 6*ctx.scale, colorful.Color{R: 1}, 1)
			continue
		}
		col := parseColor(c.Color)
		poly := c.Path.Flatten(24)
		for i := range poly {
			poly[i] = ctx.pt(poly[i], 0, top)
		}
		fillPolygon(ctx, poly, col, 0.3)
		for i := range poly {
			drawLine(ctx, poly[i], poly[(i+1)%len(poly)], 2, col)
		}
		for _, p := range c.Points {
			drawDisc(ctx, ctx.pt(p.Target.Center, 0, top), p.Target.Marker*ctx.scale, col, 1)
		}
	}

	if o := s.Tooltip; o != nil {
		box := geom.Rect{
			X: o.Box.X * ctx.scale, Y: (o.Box.Y + top) * ctx.scale,
			W: o.Box.W * ctx.scale, H: o.Box.H * ctx.scale,
		}
		fillRect(ctx, box, parseColor(pal.TooltipFill), 0.8)
		text := o.Text()
		if o.Editing {
			text += " " + o.Input + "_"
		}
		drawText(ctx, ctx.pt(o.Anchor, 0, top), text, 12, geom.AnchorMiddle, 0.3, parseColor(pal.TooltipText))
		if o.ShowPin {
			drawDisc(ctx, ctx.pt(o.Pin, 0, top), radar.PinRadius*ctx.scale, parseColor(o.Color), 1)
		}
	}
}

func drawLegend(ctx *renderContext, l radar.LegendView, ox, oy float64, pal radar.Palette) {
	textColor := parseColor(pal.LegendText)
	for _, it := range l.Items {
		swatchAlpha, textAlpha := 1.0, 1.0
		if !it.Visible {
			swatchAlpha, textAlpha = 0.3, 0.7
		}
		x, y := ox+it.Offset.X, oy+it.Offset.Y
		fillRect(ctx, geom.Rect{
			X: (x + it.Swatch.X) * ctx.scale, Y: (y + it.Swatch.Y) * ctx.scale,
			W: it.Swatch.W * ctx.scale, H: it.Swatch.H * ctx.scale,
		}, parseColor(it.Color), swatchAlpha)

		tc := textColor
		if textAlpha < 1 {
			tc = parseColor(pal.Background).BlendRgb(textColor, textAlpha)
		}
		pos := ctx.pt(it.TextPos, x, y)
		w := drawText(ctx, pos, it.Name, 12, geom.AnchorStart, 0, tc)
		if !it.Visible {
			strike := pos.Y - 4*ctx.scale
			drawLine(ctx, geom.Point{X: pos.X, Y: strike}, geom.Point{X: pos.X + w, Y: strike}, 1, tc)
		}
	}
}

// parseColor accepts #rgb and #rrggbb; anything else falls back to grey.
func parseColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallbackColor
	}
	return c
}

// blend composites c over the existing pixel with the given opacity.
func blend(img *image.RGBA, x, y int, c colorful.Color, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	if alpha < 1 {
		under, _ := colorful.MakeColor(img.RGBAAt(x, y))
		c = under.BlendRgb(c, alpha)
	}
	r, g, b := c.Clamped().RGB255()
	img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
}

// drawLine draws a line of the given unscaled width.
func drawLine(ctx *renderContext, a, b geom.Point, width float64, c colorful.Color) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	half := width * ctx.scale / 2

	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		drawDisc(ctx, a, half, c, 1)
		return
	}
	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		px := a.X + dx*t
		py := a.Y + dy*t
		for off := -half; off <= half; off += 0.5 {
			blend(ctx.img, int(px+perpX*off), int(py+perpY*off), c, 1)
		}
	}
}

// drawCircle draws a circle outline of the given unscaled stroke width.
func drawCircle(ctx *renderContext, center geom.Point, r, width float64, c colorful.Color) {
	half := width * ctx.scale / 2
	step := 0.5 / math.Max(r, 1)
	for angle := 0.0; angle < 2*math.Pi; angle += step {
		cos, sin := math.Cos(angle), math.Sin(angle)
		for t := -half; t <= half; t += 0.5 {
			blend(ctx.img, int(center.X+(r+t)*cos), int(center.Y+(r+t)*sin), c, 1)
		}
	}
}

// drawDisc fills a circle.
func drawDisc(ctx *renderContext, center geom.Point, r float64, c colorful.Color, alpha float64) {
	for y := int(center.Y - r); y <= int(center.Y+r); y++ {
		dy := float64(y) + 0.5 - center.Y
		if dy*dy > r*r {
			continue
		}
		ext := math.Sqrt(r*r - dy*dy)
		for x := int(center.X - ext); x <= int(center.X+ext); x++ {
			blend(ctx.img, x, y, c, alpha)
		}
	}
}

func fillRect(ctx *renderContext, r geom.Rect, c colorful.Color, alpha float64) {
	for y := int(r.Y); y < int(r.Y+r.H); y++ {
		for x := int(r.X); x < int(r.X+r.W); x++ {
			blend(ctx.img, x, y, c, alpha)
		}
	}
}

// fillPolygon fills a closed polygon with the even-odd rule, one scanline
// per pixel row.
func fillPolygon(ctx *renderContext, poly []geom.Point, c colorful.Color, alpha float64) {
	if len(poly) < 3 {
		return
	}
	b := geom.Bounds(poly)
	xs := make([]float64, 0, 8)
	for y := int(b.Y); y <= int(b.Y+b.H); y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := range poly {
			p, q := poly[i], poly[(i+1)%len(poly)]
			if (p.Y <= fy && q.Y > fy) || (q.Y <= fy && p.Y > fy) {
				xs = append(xs, p.X+(fy-p.Y)/(q.Y-p.Y)*(q.X-p.X))
			}
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			for x := int(math.Ceil(xs[k] - 0.5)); float64(x)+0.5 <= xs[k+1]; x++ {
				blend(ctx.img, x, y, c, alpha)
			}
		}
	}
}

// drawText draws text at an SVG-style anchor point and baseline shift (in
// em) and returns the drawn width in image pixels.
func drawText(ctx *renderContext, at geom.Point, text string, size float64, anchor geom.TextAnchor, dyEm float64, c colorful.Color) float64 {
	face := ctx.face(size)
	if face == nil || text == "" {
		return 0
	}
	width := float64(font.MeasureString(face, text).Ceil())

	x := at.X
	switch anchor {
	case geom.AnchorMiddle:
		x -= width / 2
	case geom.AnchorEnd:
		x -= width
	}
	y := at.Y + dyEm*size*ctx.scale

	r, g, b := c.Clamped().RGB255()
	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(int(x)), Y: fixed.I(int(y))},
	}
	d.DrawString(text)
	return width
}
