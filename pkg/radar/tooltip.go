package radar

import (
	"math"
	"strconv"
	"strings"
)

// TooltipState is the phase of the single chart tooltip.
type TooltipState int

const (
	TooltipHidden TooltipState = iota
	TooltipHovering
	TooltipPinned
	TooltipEditing
)

func (s TooltipState) String() string {
	switch s {
	case TooltipHovering:
		return "hovering"
	case TooltipPinned:
		return "pinned"
	case TooltipEditing:
		return "editing"
	}
	return "hidden"
}

// Key is a keyboard event the tooltip reacts to while editing.
type Key int

const (
	KeyEnter Key = iota
	KeyEscape
)

// PointRef addresses a data point by curve and point index.
type PointRef struct {
	Curve int
	Point int
}

// Tooltip is the record shown for one data point.
type Tooltip struct {
	CurveIndex int
	PointIndex int
	ID         string // point ID when the tooltip opened, if any
	Label      string // "<name>: <value>"
	Value      float64
	X, Y       float64
	Color      string
	Pinned     bool
	Editing    bool
}

// Ref returns the point the tooltip belongs to.
func (t Tooltip) Ref() PointRef {
	return PointRef{Curve: t.CurveIndex, Point: t.PointIndex}
}

// Name returns the label text before the first colon.
func (t Tooltip) Name() string {
	name, _, _ := strings.Cut(t.Label, ":")
	return strings.TrimSpace(name)
}

// CommitFunc writes an edited value back. Returning false rejects the edit,
// which then behaves like a cancel.
type CommitFunc func(t Tooltip, value float64) bool

// Tooltips is the hover/pin/edit state machine. At most one tooltip exists.
// A pinned tooltip ignores hover events until it is clicked away.
type Tooltips struct {
	active    *Tooltip
	buffer    string
	bufferRef PointRef
	hasBuffer bool
	commit    CommitFunc
}

// NewTooltips returns a hidden machine that reports commits to commit.
// A nil commit accepts every edit.
func NewTooltips(commit CommitFunc) *Tooltips {
	return &Tooltips{commit: commit}
}

// State returns the current phase.
func (m *Tooltips) State() TooltipState {
	switch {
	case m.active == nil:
		return TooltipHidden
	case m.active.Editing:
		return TooltipEditing
	case m.active.Pinned:
		return TooltipPinned
	}
	return TooltipHovering
}

// Active returns the visible tooltip, if any.
func (m *Tooltips) Active() (Tooltip, bool) {
	if m.active == nil {
		return Tooltip{}, false
	}
	return *m.active, true
}

// Buffer returns the text of the edit input.
func (m *Tooltips) Buffer() string {
	return m.buffer
}

// Enter shows t on hover unless a tooltip is pinned.
func (m *Tooltips) Enter(t Tooltip) bool {
	if m.pinned() {
		return false
	}
	t.Pinned, t.Editing = false, false
	m.set(&t)
	return true
}

// Leave hides a hovering tooltip for ref. Pinned tooltips stay.
func (m *Tooltips) Leave(ref PointRef) bool {
	if m.active == nil || m.pinned() || m.active.Ref() != ref {
		return false
	}
	m.active = nil
	return true
}

// Click pins t, unpins it when it is already the pinned point, or moves the
// pin to t from another point. An open edit is resolved as a blur first.
func (m *Tooltips) Click(t Tooltip) {
	if m.State() == TooltipEditing {
		m.Blur()
	}
	if m.pinned() && m.active.Ref() == t.Ref() {
		m.active = nil
		return
	}
	t.Pinned, t.Editing = true, false
	m.set(&t)
}

// StartEdit opens the edit input on the pinned tooltip.
func (m *Tooltips) StartEdit() bool {
	if m.State() != TooltipPinned {
		return false
	}
	m.active.Editing = true
	m.buffer = FormatValue(m.active.Value)
	return true
}

// SetInput replaces the edit input text.
func (m *Tooltips) SetInput(text string) {
	if m.State() == TooltipEditing {
		m.buffer = text
	}
}

// Commit parses the edit input and writes it back. Input that is not a
// finite number reverts the buffer and cancels. It reports whether a value
// was written.
func (m *Tooltips) Commit() bool {
	if m.State() != TooltipEditing {
		return false
	}

	v, err := parseValue(m.buffer)
	if err != nil || (m.commit != nil && !m.commit(*m.active, v)) {
		m.Cancel()
		return false
	}

	name := m.active.Name()
	m.active.Value = v
	m.active.Label = name + ": " + FormatValue(v)
	m.active.Editing = false
	m.buffer = FormatValue(v)
	return true
}

// Cancel closes the edit input without writing, restoring the buffer.
func (m *Tooltips) Cancel() {
	if m.State() != TooltipEditing {
		return
	}
	m.active.Editing = false
	m.buffer = FormatValue(m.active.Value)
}

// Blur is an implicit commit when the edit input loses focus.
func (m *Tooltips) Blur() bool {
	return m.Commit()
}

// Key handles Enter (commit) and Escape (cancel).
func (m *Tooltips) Key(k Key) bool {
	switch k {
	case KeyEnter:
		return m.Commit()
	case KeyEscape:
		m.Cancel()
	}
	return false
}

// Refresh updates the active tooltip after its point changed outside the
// editor. An open edit keeps the user's text; otherwise the buffer follows
// the new value. It reports whether t matched the active tooltip.
func (m *Tooltips) Refresh(t Tooltip) bool {
	if m.active == nil || m.active.Ref() != t.Ref() {
		return false
	}
	m.active.Value = t.Value
	m.active.Label = t.Label
	m.active.X, m.active.Y = t.X, t.Y
	m.active.ID = t.ID
	if !m.active.Editing {
		m.buffer = FormatValue(t.Value)
		m.bufferRef = t.Ref()
		m.hasBuffer = true
	}
	return true
}

// Hide drops the tooltip whatever its state.
func (m *Tooltips) Hide() {
	m.active = nil
}

func (m *Tooltips) pinned() bool {
	return m.active != nil && m.active.Pinned
}

// set makes t active and resets the edit buffer when the point changed.
func (m *Tooltips) set(t *Tooltip) {
	m.active = t
	if !m.hasBuffer || m.bufferRef != t.Ref() {
		m.buffer = FormatValue(t.Value)
		m.bufferRef = t.Ref()
		m.hasBuffer = true
	}
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
