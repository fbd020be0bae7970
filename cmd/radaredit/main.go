// Command radaredit is a terminal radar chart viewer and editor.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ha1tch/radar-toolkit/internal/config"
	"github.com/ha1tch/radar-toolkit/internal/logging"
	"github.com/ha1tch/radar-toolkit/pkg/radar"
	"github.com/ha1tch/radar-toolkit/pkg/radarfile"
)

// Editor holds the terminal session state around one chart.
type Editor struct {
	screen      tcell.Screen
	chart       *radar.Chart
	filename    string
	modified    bool
	mode        Mode
	message     string
	messageType MessageType
	settings    config.Settings
	v           *viper.Viper // nil disables settings persistence
	theme       radar.Theme
	log         zerolog.Logger

	sidebarWidth int

	// Pointer state
	hover         *radar.PointRef
	leftMouseDown bool

	// Path prompt
	inputPrompt string
	inputBuffer string
	inputAction func(string)

	messageFlashStart int64 // Unix milliseconds when message was shown

	// flashUntil is the only field the redraw ticker reads.
	flashUntil atomic.Int64
}

// Mode represents editor mode
type Mode int

const (
	ModeChart Mode = iota
	ModeInput      // path prompt
	ModeHelp
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // State changes, flash
	MsgWarning                    // Warnings, flash
)

const defaultSidebarWidth = 30

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	v := config.New()

	cmd := &cobra.Command{
		Use:          "radaredit <file>",
		Short:        "Terminal radar chart editor",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			log, closer, err := logging.NewFile(settings.LogFile, settings.LogLevel)
			if err != nil {
				return fmt.Errorf("error opening log file: %w", err)
			}
			defer closer.Close()

			ed, err := NewEditor(args[0], settings, log)
			if err != nil {
				return err
			}
			ed.v = v

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("error creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("error initializing screen: %w", err)
			}
			screen.EnableMouse()
			screen.Clear()
			ed.screen = screen

			ed.run()
			screen.Fini()
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default radar.yaml)")
	cmd.Flags().String("theme", "", "colour theme (light, system, dark)")
	_ = v.BindPFlag("theme", cmd.Flags().Lookup("theme"))
	return cmd
}

// NewEditor loads path and prepares an editor without a screen.
func NewEditor(path string, settings config.Settings, log zerolog.Logger) (*Editor, error) {
	cfg, err := radarfile.ReadFile(path, settings.ChartOptions()...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	cfg.EnsurePointIDs()

	ed := &Editor{
		filename:     path,
		settings:     settings,
		log:          log,
		sidebarWidth: defaultSidebarWidth,
	}
	ed.theme, err = radar.ParseTheme(settings.Theme)
	if err != nil {
		return nil, err
	}

	ed.chart, err = radar.NewChart(cfg,
		radar.WithLogger(log),
		radar.OnValueChange(func(ci, pi int, v float64) {
			ed.modified = true
			ed.showMessage(fmt.Sprintf("Set %s = %s", ed.pointName(ci, pi), radar.FormatValue(v)), MsgSuccess)
		}),
		radar.OnLegendClick(func(name string) {
			state := "shown"
			if !ed.chart.Visible(name) {
				state = "hidden"
			}
			ed.showMessage(fmt.Sprintf("%s %s", name, state), MsgInfo)
		}))
	if err != nil {
		return nil, err
	}
	return ed, nil
}

// SetTheme switches the colour scheme and remembers it.
func (ed *Editor) SetTheme(t radar.Theme) {
	ed.theme = t
	ed.settings.Theme = string(t)
	ed.saveSettings()
}

var _ radar.ThemeSwitcher = (*Editor)(nil)

func (ed *Editor) run() {
	done := make(chan struct{})
	defer close(done)
	go ed.pulse(done, 50*time.Millisecond)

	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventInterrupt:
			// redraw
		}
	}
}

// handleKey processes a key press and reports whether to quit.
func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	switch ed.mode {
	case ModeInput:
		return ed.handleInputKey(ev)
	case ModeHelp:
		ed.mode = ModeChart
		return false
	}

	if ed.chart.TooltipState() == radar.TooltipEditing {
		ed.handleEditKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlS:
		ed.save()
		return false
	case tcell.KeyTab:
		ed.cyclePin(1)
		return false
	case tcell.KeyBacktab:
		ed.cyclePin(-1)
		return false
	case tcell.KeyEnter:
		ed.startEdit()
		return false
	case tcell.KeyEscape:
		if t, ok := ed.chart.Tooltip(); ok && t.Pinned {
			ed.chart.Click(t.Ref())
		}
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	switch {
	case r == 'q':
		return true
	case r == 'e':
		ed.startEdit()
	case r == 't':
		ed.SetTheme(ed.theme.Next())
		ed.showMessage("Theme: "+string(ed.theme), MsgInfo)
	case r == 's':
		ed.save()
	case r == 'a':
		ed.prompt("Save as: ", ed.filename, ed.saveAs)
	case r == 'x':
		ed.export(ed.exportPath())
	case r == 'f':
		ed.toggleFileType()
	case r == '?':
		ed.mode = ModeHelp
	case r >= '1' && r <= '9':
		idx := int(r - '1')
		if names := ed.chart.Config().CurveNames(); idx < len(names) {
			ed.chart.LegendClick(names[idx])
		}
	}
	return false
}

// handleEditKey feeds the tooltip edit input.
func (ed *Editor) handleEditKey(ev *tcell.EventKey) {
	buf := ed.chart.InputBuffer()
	switch ev.Key() {
	case tcell.KeyEnter:
		if !ed.chart.Key(radar.KeyEnter) {
			ed.showMessage("Invalid value: "+buf, MsgError)
		}
	case tcell.KeyEscape:
		ed.chart.Key(radar.KeyEscape)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(buf) > 0 {
			ed.chart.Input(buf[:len(buf)-1])
		}
	case tcell.KeyCtrlU:
		ed.chart.Input("")
	case tcell.KeyRune:
		ed.chart.Input(buf + string(ev.Rune()))
	}
}

func (ed *Editor) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		ed.mode = ModeChart
		if ed.inputAction != nil && ed.inputBuffer != "" {
			ed.inputAction(ed.inputBuffer)
		}
	case tcell.KeyEscape:
		ed.mode = ModeChart
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(ed.inputBuffer) > 0 {
			ed.inputBuffer = ed.inputBuffer[:len(ed.inputBuffer)-1]
		}
	case tcell.KeyRune:
		ed.inputBuffer += string(ev.Rune())
	}
	return false
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && !ed.leftMouseDown
	ed.leftMouseDown = buttons&tcell.Button1 != 0

	if ed.mode != ModeChart {
		return
	}

	w, _ := ed.screen.Size()
	if x >= w-ed.sidebarWidth {
		ed.updateHover(nil)
		if pressed {
			if name, ok := ed.legendAt(x, y); ok {
				ed.chart.LegendClick(name)
			}
		}
		return
	}

	ref, ok := ed.pointAtCell(x, y)
	if ok {
		ed.updateHover(&ref)
	} else {
		ed.updateHover(nil)
	}

	if !pressed {
		return
	}
	switch {
	case ok:
		ed.chart.Click(ref)
	case ed.chart.TooltipState() == radar.TooltipEditing:
		ed.chart.Blur()
	}
}

// updateHover turns pointer movement into enter and leave events.
func (ed *Editor) updateHover(ref *radar.PointRef) {
	if ed.hover != nil && (ref == nil || *ed.hover != *ref) {
		ed.chart.PointerLeave(*ed.hover)
		ed.hover = nil
	}
	if ref != nil && ed.hover == nil {
		r := *ref
		ed.hover = &r
		ed.chart.PointerEnter(r)
	}
}

func (ed *Editor) startEdit() {
	if !ed.chart.StartEdit() {
		ed.showMessage("Pin a point first (click or Tab)", MsgWarning)
	}
}

// cyclePin moves the pin through visible points in drawing order.
func (ed *Editor) cyclePin(step int) {
	var refs []radar.PointRef
	for _, c := range ed.chart.Scene().Curves {
		for _, p := range c.Points {
			refs = append(refs, p.Ref)
		}
	}
	if len(refs) == 0 {
		return
	}

	next := 0
	if step < 0 {
		next = len(refs) - 1
	}
	if t, ok := ed.chart.Tooltip(); ok && t.Pinned {
		for i, r := range refs {
			if r == t.Ref() {
				next = (i + step + len(refs)) % len(refs)
				break
			}
		}
	}
	ed.chart.Click(refs[next])
}

func (ed *Editor) pointName(ci, pi int) string {
	cfg := ed.chart.Config()
	if ci < 0 || ci >= len(cfg.Curves) || pi < 0 || pi >= len(cfg.Axes) {
		return fmt.Sprintf("%d:%d", ci, pi)
	}
	return cfg.Curves[ci].Name + "/" + cfg.Axes[pi]
}

func (ed *Editor) prompt(label, initial string, action func(string)) {
	ed.mode = ModeInput
	ed.inputPrompt = label
	ed.inputBuffer = initial
	ed.inputAction = action
}

func (ed *Editor) toggleFileType() {
	if ed.settings.FileType == "svg" {
		ed.settings.FileType = "png"
	} else {
		ed.settings.FileType = "svg"
	}
	ed.saveSettings()
	ed.showMessage("Export as "+strings.ToUpper(ed.settings.FileType), MsgInfo)
}

func (ed *Editor) saveSettings() {
	if ed.v == nil {
		return
	}
	if err := config.Save(ed.v, ed.settings); err != nil {
		ed.log.Warn().Err(err).Msg("settings not saved")
	}
}

// pulse requests redraws while a message is flashing, until done closes.
func (ed *Editor) pulse(done <-chan struct{}, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			if now.UnixMilli() < ed.flashUntil.Load() {
				ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
	ed.messageFlashStart = time.Now().UnixMilli()
	if flashes(msgType) {
		ed.flashUntil.Store(ed.messageFlashStart + flashDuration)
	} else {
		ed.flashUntil.Store(0)
	}
	if ed.screen != nil {
		ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// File operations

func (ed *Editor) save() {
	if err := radarfile.WriteFile(ed.filename, ed.chart.Config()); err != nil {
		ed.showMessage("Save failed: "+err.Error(), MsgError)
		return
	}
	ed.modified = false
	ed.log.Info().Str("file", ed.filename).Msg("chart saved")
	ed.showMessage("Saved "+filepath.Base(ed.filename), MsgSuccess)
}

func (ed *Editor) saveAs(path string) {
	if _, err := radarfile.FormatFromPath(path); err != nil {
		ed.showMessage(err.Error(), MsgError)
		return
	}
	ed.filename = path
	ed.settings.LastDir = filepath.Dir(path)
	ed.saveSettings()
	ed.save()
}

func (ed *Editor) exportPath() string {
	ext := filepath.Ext(ed.filename)
	return strings.TrimSuffix(ed.filename, ext) + "." + ed.settings.FileType
}

// export renders the chart as currently shown, tooltip included.
func (ed *Editor) export(path string) {
	var legend *radar.LegendView
	if ed.settings.Legend != "none" {
		l := ed.chart.Legend()
		legend = &l
	}
	scene := ed.chart.Scene()

	var err error
	switch ed.settings.FileType {
	case "svg":
		opts := radarfile.DefaultSVGOptions()
		opts.Theme = ed.theme
		err = os.WriteFile(path, []byte(radarfile.GenerateSVG(scene, legend, opts)), 0644)
	default:
		var f *os.File
		f, err = os.Create(path)
		if err == nil {
			opts := radarfile.DefaultPNGOptions()
			opts.Theme = ed.theme
			err = radarfile.RenderPNG(scene, legend, f, opts)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	}
	if err != nil {
		ed.showMessage("Export failed: "+err.Error(), MsgError)
		return
	}
	ed.log.Info().Str("file", path).Msg("chart exported")
	ed.showMessage("Exported "+filepath.Base(path), MsgSuccess)
}
