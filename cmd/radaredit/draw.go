package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/radar-toolkit/pkg/geom"
	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleSidebarH = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSidebar  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput    = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// flashDuration is how long status messages flash, in milliseconds.
const flashDuration = 500

// flashInverted reports whether a flashing message is drawn inverted after
// elapsed milliseconds: normal, inverted, normal, inverted, then normal.
func flashInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= flashDuration {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

func flashes(t MessageType) bool {
	return t != MsgInfo
}

// viewport maps chart coordinates onto terminal cells. Cells are about twice
// as tall as wide, so the vertical scale is halved.
type viewport struct {
	ox, oy float64
	sx, sy float64
}

func (v viewport) toCell(p geom.Point) (int, int) {
	return int(math.Floor(v.ox + p.X*v.sx)), int(math.Floor(v.oy + p.Y*v.sy))
}

func (v viewport) toChart(col, row int) geom.Point {
	return geom.Point{
		X: (float64(col) + 0.5 - v.ox) / v.sx,
		Y: (float64(row) + 0.5 - v.oy) / v.sy,
	}
}

func (ed *Editor) viewport() viewport {
	w, h := ed.screen.Size()
	canvasW := float64(w - ed.sidebarWidth)
	canvasH := float64(h - 2)
	cfg := ed.chart.Config()
	cw, ch := float64(cfg.Width), float64(cfg.Height)

	s := math.Min(canvasW/cw, 2*canvasH/ch)
	if s <= 0 {
		s = 0.01
	}
	return viewport{
		ox: (canvasW - cw*s) / 2,
		oy: (canvasH - ch*s/2) / 2,
		sx: s,
		sy: s / 2,
	}
}

// pointAtCell finds the data point under a cell. Cells are coarse, so a
// point drawn in or next to the cell also counts.
func (ed *Editor) pointAtCell(x, y int) (radar.PointRef, bool) {
	vp := ed.viewport()
	probe := vp.toChart(x, y)
	if ref, ok := ed.chart.PointAt(probe); ok {
		return ref, true
	}

	var (
		best  radar.PointRef
		found bool
		dist  = math.Inf(1)
	)
	for _, c := range ed.chart.Scene().Curves {
		for _, p := range c.Points {
			px, py := vp.toCell(p.Target.Center)
			if abs(px-x) > 1 || abs(py-y) > 1 {
				continue
			}
			if d := geom.Distance(p.Target.Center, probe); d < dist {
				best, dist, found = p.Ref, d, true
			}
		}
	}
	return best, found
}

// legendAt returns the curve listed on sidebar row y.
func (ed *Editor) legendAt(x, y int) (string, bool) {
	items := ed.chart.Legend().Items
	i := y - legendTop
	if i < 0 || i >= len(items) {
		return "", false
	}
	return items[i].Name, true
}

const legendTop = 2

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// tcellColor converts a CSS colour. Hex goes through go-colorful, names
// through tcell; anything else is grey.
func tcellColor(s string) tcell.Color {
	if c, err := colorful.Hex(s); err == nil {
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorGray
}

// dimmed blends a colour towards the background.
func dimmed(s, bg string) tcell.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorGray
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return tcellColor(s)
	}
	r, g, bl := c.BlendLab(b, 0.6).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func (ed *Editor) palette() radar.Palette {
	return radar.PaletteFor(ed.theme, false)
}

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()

	pal := ed.palette()
	bg := tcell.StyleDefault.Background(tcellColor(pal.Background))
	for y := 0; y < h-2; y++ {
		for x := 0; x < w-ed.sidebarWidth; x++ {
			ed.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	ed.drawChart(w, h, pal)
	ed.drawSidebar(w, h)

	switch ed.mode {
	case ModeInput:
		ed.drawInputBox(w, h)
	case ModeHelp:
		ed.drawHelp(w, h)
	}

	ed.drawStatusBar(w, h)
}

func (ed *Editor) drawChart(w, h int, pal radar.Palette) {
	scene := ed.chart.Scene()
	vp := ed.viewport()
	canvasW, canvasH := w-ed.sidebarWidth, h-2
	bg := tcellColor(pal.Background)

	plot := func(p geom.Point, r rune, style tcell.Style) {
		x, y := vp.toCell(p)
		if x >= 0 && x < canvasW && y >= 0 && y < canvasH {
			ed.screen.SetContent(x, y, r, nil, style)
		}
	}
	text := func(p geom.Point, s string, anchor geom.TextAnchor, style tcell.Style) {
		x, y := vp.toCell(p)
		switch anchor {
		case geom.AnchorEnd:
			x -= len([]rune(s))
		case geom.AnchorMiddle:
			x -= len([]rune(s)) / 2
		}
		for i, r := range []rune(s) {
			if x+i >= 0 && x+i < canvasW && y >= 0 && y < canvasH {
				ed.screen.SetContent(x+i, y, r, nil, style)
			}
		}
	}

	gridStyle := tcell.StyleDefault.Foreground(tcellColor(pal.Grid)).Background(bg)
	for _, ring := range scene.Grid {
		steps := int(2*math.Pi*ring.Radius*vp.sx) * 2
		if steps < 16 {
			steps = 16
		}
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			plot(geom.PolarToCartesian(ring.Radius, a, scene.Center.X, scene.Center.Y), '·', gridStyle)
		}
	}

	axisStyle := tcell.StyleDefault.Foreground(tcellColor(pal.Axis)).Background(bg)
	for _, a := range scene.Axes {
		ed.drawSegment(vp, scene.Center, a.End, '+', axisStyle, plot)
	}

	labelStyle := tcell.StyleDefault.Foreground(tcellColor(pal.GridLabel)).Background(bg)
	for _, ring := range scene.Grid {
		text(ring.LabelAt, radar.FormatValue(ring.Value), geom.AnchorMiddle, labelStyle)
	}
	axisLabel := tcell.StyleDefault.Foreground(tcellColor(pal.AxisLabel)).Background(bg)
	for _, a := range scene.Axes {
		text(a.LabelPos, a.Label, a.Anchor, axisLabel)
	}

	var active *radar.PointRef
	if t, ok := ed.chart.Tooltip(); ok {
		ref := t.Ref()
		active = &ref
	}

	for _, c := range scene.Curves {
		style := tcell.StyleDefault.Foreground(tcellColor(c.Color)).Background(bg)
		if c.Err != nil {
			text(scene.Center, "!", geom.AnchorMiddle, style.Bold(true))
			continue
		}
		pts := c.Path.Flatten(12)
		for i := 1; i < len(pts); i++ {
			ed.drawSegment(vp, pts[i-1], pts[i], '•', style, plot)
		}
		for _, p := range c.Points {
			r := 'o'
			if active != nil && *active == p.Ref {
				r = '◉'
			}
			plot(p.Target.Center, r, style.Bold(true))
		}
	}

	if scene.Tooltip != nil {
		ed.drawTooltip(vp, *scene.Tooltip, pal, canvasW, canvasH)
	}
}

// drawSegment plots a line at half-cell steps.
func (ed *Editor) drawSegment(vp viewport, a, b geom.Point, r rune, style tcell.Style, plot func(geom.Point, rune, tcell.Style)) {
	dx := (b.X - a.X) * vp.sx
	dy := (b.Y - a.Y) * vp.sy
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))*2) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		plot(geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, r, style)
	}
}

func (ed *Editor) drawTooltip(vp viewport, o radar.TooltipOverlay, pal radar.Palette, canvasW, canvasH int) {
	label := o.Text()
	if o.Editing {
		label += " " + o.Input + "_"
	}

	boxW := len([]rune(label)) + 4
	if o.ShowPin {
		boxW += 2
	}
	cx, _ := vp.toCell(o.Anchor)
	_, top := vp.toCell(geom.Point{X: o.Box.X, Y: o.Box.Y})
	x := cx - boxW/2
	y := top - 1
	if x < 0 {
		x = 0
	}
	if x+boxW > canvasW {
		x = canvasW - boxW
	}
	if y < 0 {
		y = 0
	}
	if y+3 > canvasH {
		y = canvasH - 3
	}

	fill := tcell.StyleDefault.Background(tcellColor(pal.TooltipFill)).Foreground(tcellColor(pal.TooltipText))
	ed.drawBox(x, y, boxW, 3, fill)
	ed.drawString(x+2, y+1, label, fill)
	if o.ShowPin {
		ed.screen.SetContent(x+boxW-2, y+1, '●', nil, fill.Foreground(tcellColor(o.Color)))
	}
}

func (ed *Editor) drawSidebar(w, h int) {
	x := w - ed.sidebarWidth + 2
	y := 0
	width := ed.sidebarWidth - 4
	pal := ed.palette()

	for row := 0; row < h-2; row++ {
		ed.screen.SetContent(w-ed.sidebarWidth, row, '│', nil, styleBorder)
	}

	ed.drawString(x, y, "Curves:", styleSidebarH)
	y = legendTop
	for i, it := range ed.chart.Legend().Items {
		swatch := tcell.StyleDefault.Foreground(tcellColor(it.Color))
		style := styleSidebar
		name := it.Name
		if !it.Visible {
			swatch = tcell.StyleDefault.Foreground(dimmed(it.Color, pal.Background))
			style = style.Dim(true).StrikeThrough(true)
		}
		ed.screen.SetContent(x, y, '■', nil, swatch)
		ed.drawString(x+2, y, truncate(fmt.Sprintf("%d %s", i+1, name), width-2), style)
		y++
	}
	y++

	ed.drawString(x, y, "Tooltip:", styleSidebarH)
	y++
	ed.drawString(x, y, "  "+ed.chart.TooltipState().String(), styleSidebar)
	y++

	t, ok := ed.chart.Tooltip()
	if !ok {
		return
	}
	cfg := ed.chart.Config()
	if t.CurveIndex < 0 || t.CurveIndex >= len(cfg.Curves) {
		return
	}
	cv := cfg.Curves[t.CurveIndex]
	y++
	ed.drawString(x, y, truncate(cv.Name+":", width), styleSidebarH)
	y++
	for i, dp := range cv.DataPoints {
		if y >= h-3 {
			ed.drawString(x, y, "  ...", styleSidebar)
			return
		}
		style := styleSidebar
		if i == t.PointIndex {
			style = style.Reverse(true)
		}
		ed.drawString(x, y, truncate(fmt.Sprintf("  %s: %s", dp.Label, radar.FormatValue(dp.Value)), width), style)
		y++
	}
}

func (ed *Editor) drawStatusBar(w, h int) {
	y := h - 1

	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	fileInfo := ed.filename
	if len(fileInfo) > 30 {
		fileInfo = filepath.Base(fileInfo)
	}
	if ed.modified {
		fileInfo += " *"
	}
	ed.drawString(1, y, fileInfo, styleStatus)

	modeStr := ed.modeString()
	ed.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)

	if ed.message != "" {
		style := styleMsgInfo
		if ed.messageType == MsgError {
			style = styleMsgError
		}
		if flashes(ed.messageType) && ed.messageFlashStart > 0 &&
			flashInverted(time.Now().UnixMilli()-ed.messageFlashStart) {
			style = style.Reverse(true)
		}
		ed.drawString(w-len([]rune(ed.message))-2, y, ed.message, style)
	}

	y = h - 2
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	ed.drawString(1, y, ed.helpString(), styleHelp)
}

func (ed *Editor) drawInputBox(w, h int) {
	boxW := 50
	boxH := 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	ed.drawBox(boxX, boxY, boxW, boxH, styleInput)
	ed.drawString(boxX+2, boxY+1, ed.inputPrompt, styleInput)
	ed.drawString(boxX+2+len(ed.inputPrompt), boxY+1, ed.inputBuffer+"_", styleInput)
}

var helpLines = []string{
	"Mouse      hover a point, click to pin",
	"Tab        pin next point",
	"e, Enter   edit pinned value",
	"Esc        unpin / cancel edit",
	"1-9        show or hide curve",
	"t          cycle theme",
	"f          toggle export type",
	"x          export",
	"s, a       save, save as",
	"q          quit",
}

func (ed *Editor) drawHelp(w, h int) {
	boxW := 44
	boxH := len(helpLines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	ed.drawBox(boxX, boxY, boxW, boxH, styleInput)
	ed.drawString(boxX+2, boxY+1, "Keys", styleInput.Bold(true))
	for i, l := range helpLines {
		ed.drawString(boxX+2, boxY+3+i, l, styleInput)
	}
}

func (ed *Editor) drawBox(x, y, w, h int, style tcell.Style) {
	ed.screen.SetContent(x, y, '┌', nil, styleBorder)
	ed.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	ed.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	ed.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)

	for i := x + 1; i < x+w-1; i++ {
		ed.screen.SetContent(i, y, '─', nil, styleBorder)
		ed.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		ed.screen.SetContent(x, i, '│', nil, styleBorder)
		ed.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}

	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			ed.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		ed.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (ed *Editor) modeString() string {
	switch ed.mode {
	case ModeInput:
		return "INPUT"
	case ModeHelp:
		return "HELP"
	}
	if ed.chart.TooltipState() == radar.TooltipEditing {
		return "EDIT"
	}
	return strings.ToUpper(string(ed.theme))
}

func (ed *Editor) helpString() string {
	switch ed.mode {
	case ModeInput:
		return "Type path  Enter:Confirm  Esc:Cancel"
	case ModeHelp:
		return "Any key:Close"
	}
	switch ed.chart.TooltipState() {
	case radar.TooltipEditing:
		return "Type value  Enter:Commit  Esc:Cancel  Click:Commit"
	case radar.TooltipPinned:
		return "E:Edit  Tab:Next  Esc:Unpin  1-9:Curves  ?:Help"
	}
	return "Click/Tab:Pin  1-9:Curves  T:Theme  X:Export  S:Save  ?:Help  Q:Quit"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
