package radar

import "slices"

// VisibilityEntry is one curve's visibility flag.
type VisibilityEntry struct {
	Name    string
	Visible bool
}

// Visibility tracks which curves are shown, in curve order. Curves are
// visible unless toggled off.
type Visibility struct {
	entries []VisibilityEntry
}

// NewVisibility returns a registry with every named curve visible.
func NewVisibility(names []string) *Visibility {
	v := &Visibility{entries: make([]VisibilityEntry, len(names))}
	for i, name := range names {
		v.entries[i] = VisibilityEntry{Name: name, Visible: true}
	}
	return v
}

// Toggle flips the flag for name and returns the new value. ok is false when
// the name is unknown, in which case nothing changes.
func (v *Visibility) Toggle(name string) (visible, ok bool) {
	for i := range v.entries {
		if v.entries[i].Name == name {
			v.entries[i].Visible = !v.entries[i].Visible
			return v.entries[i].Visible, true
		}
	}
	return true, false
}

// Visible reports whether name is shown. Unknown names are visible.
func (v *Visibility) Visible(name string) bool {
	for _, e := range v.entries {
		if e.Name == name {
			return e.Visible
		}
	}
	return true
}

// Names returns the tracked curve names in order.
func (v *Visibility) Names() []string {
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the registry contents.
func (v *Visibility) Entries() []VisibilityEntry {
	return append([]VisibilityEntry(nil), v.entries...)
}

// Reconcile rebuilds the registry for a new curve list, keeping flags of
// curves that survive, showing new ones and dropping removed ones. It does
// nothing and returns false when names equals the current list.
func (v *Visibility) Reconcile(names []string) bool {
	if slices.Equal(v.Names(), names) {
		return false
	}

	next := make([]VisibilityEntry, len(names))
	for i, name := range names {
		next[i] = VisibilityEntry{Name: name, Visible: v.Visible(name)}
	}
	v.entries = next
	return true
}

// Filter returns the visible curves paired with their index in curves.
func (v *Visibility) Filter(curves []Curve) []IndexedCurve {
	out := make([]IndexedCurve, 0, len(curves))
	for i, c := range curves {
		if v.Visible(c.Name) {
			out = append(out, IndexedCurve{Index: i, Curve: c})
		}
	}
	return out
}

// IndexedCurve is a curve together with its position in Config.Curves.
type IndexedCurve struct {
	Index int
	Curve
}

