package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "system", s.Theme)
	assert.Equal(t, "png", s.FileType)
	assert.Equal(t, 600, s.Width)
	assert.Equal(t, 500, s.Height)
	assert.Equal(t, 100.0, s.MaxValue)
	assert.Equal(t, 5, s.GridLevels)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\nwidth: 800\ngrid_levels: 0\nfile_type: svg\n"), 0644))
	t.Setenv("RADAR_HEIGHT", "300")
	t.Setenv("RADAR_LOG_LEVEL", "debug")

	s, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, "svg", s.FileType)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 300, s.Height)
	assert.Equal(t, 0, s.GridLevels)
	assert.Equal(t, "debug", s.LogLevel)

	cfg, err := radar.NewConfig([]string{"a"}, []radar.Curve{{Name: "c", DataPoints: []radar.DataPoint{{Value: 1}}}}, s.ChartOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 0, cfg.GridLevels)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "radar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: sepia\n"), 0644))
	_, err = Load(New(), path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("file_type: gif\n"), 0644))
	_, err = Load(New(), path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 700\n"), 0644))

	v := New()
	s, err := Load(v, path)
	require.NoError(t, err)

	s.Theme = "light"
	s.FileType = "svg"
	s.LastDir = "/tmp/charts"
	require.NoError(t, Save(v, s))

	back, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "light", back.Theme)
	assert.Equal(t, "svg", back.FileType)
	assert.Equal(t, "/tmp/charts", back.LastDir)
	assert.Equal(t, 700, back.Width)
}
