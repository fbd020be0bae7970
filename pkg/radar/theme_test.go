package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	for _, s := range []string{"light", "system", "dark"} {
		th, err := ParseTheme(s)
		assert.NoError(t, err)
		assert.Equal(t, Theme(s), th)
	}
	th, err := ParseTheme("")
	assert.NoError(t, err)
	assert.Equal(t, ThemeSystem, th)

	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestThemeCycleAndResolve(t *testing.T) {
	assert.Equal(t, ThemeSystem, ThemeLight.Next())
	assert.Equal(t, ThemeDark, ThemeSystem.Next())
	assert.Equal(t, ThemeLight, ThemeDark.Next())

	assert.Equal(t, ThemeDark, ThemeSystem.Resolve(true))
	assert.Equal(t, ThemeLight, ThemeSystem.Resolve(false))
	assert.Equal(t, ThemeLight, ThemeLight.Resolve(true))

	assert.Equal(t, "#dddddd", PaletteFor(ThemeLight, true).Grid)
	assert.Equal(t, "#4b5563", PaletteFor(ThemeSystem, true).Grid)
}
