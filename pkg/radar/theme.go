package radar

import "fmt"

// Theme is the colour scheme command accepted by hosts.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
	ThemeDark   Theme = "dark"
)

// ThemeSwitcher is implemented by hosts that can change the colour scheme.
type ThemeSwitcher interface {
	SetTheme(Theme)
}

// ParseTheme validates a theme name. The empty string means system.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeSystem, ThemeDark:
		return Theme(s), nil
	case "":
		return ThemeSystem, nil
	}
	return "", fmt.Errorf("unknown theme %q (must be light, system or dark)", s)
}

// Next cycles light → system → dark → light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeSystem
	case ThemeSystem:
		return ThemeDark
	}
	return ThemeLight
}

// Resolve turns system into light or dark using the host preference.
func (t Theme) Resolve(prefersDark bool) Theme {
	if t == ThemeSystem {
		if prefersDark {
			return ThemeDark
		}
		return ThemeLight
	}
	if t == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Palette holds the non-curve colours of a chart.
type Palette struct {
	Background  string
	Grid        string
	GridLabel   string
	Axis        string
	AxisLabel   string
	LegendText  string
	TooltipFill string
	TooltipText string
}

var (
	lightPalette = Palette{
		Background:  "#ffffff",
		Grid:        "#dddddd",
		GridLabel:   "#999999",
		Axis:        "#888888",
		AxisLabel:   "#333333",
		LegendText:  "#333333",
		TooltipFill: "#333333",
		TooltipText: "#ffffff",
	}
	darkPalette = Palette{
		Background:  "#1f2937",
		Grid:        "#4b5563",
		GridLabel:   "#9ca3af",
		Axis:        "#6b7280",
		AxisLabel:   "#e5e7eb",
		LegendText:  "#ffffff",
		TooltipFill: "#1f2937",
		TooltipText: "#ffffff",
	}
)

// PaletteFor returns the colours for t.
func PaletteFor(t Theme, prefersDark bool) Palette {
	if t.Resolve(prefersDark) == ThemeDark {
		return darkPalette
	}
	return lightPalette
}
