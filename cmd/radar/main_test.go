package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/radar-toolkit/pkg/radarfile"
)

const sampleChart = `{
  "axes": ["Speed", "Power", "Range"],
  "curves": [
    {"name": "A", "color": "#ff0000", "data_points": [50, 80, 30]},
    {"name": "B", "color": "#0000ff", "data_points": [20, 40, 60]}
  ]
}`

// setup writes the sample chart and an empty config into a temp dir.
func setup(t *testing.T) (dir, chart, conf string) {
	t.Helper()
	dir = t.TempDir()
	chart = filepath.Join(dir, "chart.json")
	conf = filepath.Join(dir, "radar.yaml")
	require.NoError(t, os.WriteFile(chart, []byte(sampleChart), 0644))
	require.NoError(t, os.WriteFile(conf, []byte("log_level: error\n"), 0644))
	return dir, chart, conf
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	dir, chart, conf := setup(t)

	out, err := execute(t, "", "validate", chart, "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, "valid chart with 3 axes, 2 curves")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"axes":["a","b"],"curves":[{"name":"x","data_points":[1]}]}`), 0644))
	_, err = execute(t, "", "validate", bad, "--config", conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestInfo(t *testing.T) {
	_, chart, conf := setup(t)

	out, err := execute(t, "", "info", chart, "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, "Axes:        3")
	assert.Contains(t, out, "Size:        600x500")
	assert.Contains(t, out, "Speed, Power, Range")
	assert.Contains(t, out, "50 80 30")
}

func TestConvertRoundTrip(t *testing.T) {
	dir, chart, conf := setup(t)

	_, err := execute(t, "", "convert", chart, "--config", conf)
	require.NoError(t, err)
	xlsx := filepath.Join(dir, "chart.xlsx")
	require.FileExists(t, xlsx)

	back := filepath.Join(dir, "back.json")
	_, err = execute(t, "", "convert", xlsx, "-o", back, "--config", conf)
	require.NoError(t, err)

	cfg, err := radarfile.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, []string{"Speed", "Power", "Range"}, cfg.Axes)
	assert.Equal(t, []float64{20, 40, 60}, cfg.Curves[1].Values())

	withIDs := filepath.Join(dir, "ids.json")
	_, err = execute(t, "", "convert", chart, "-o", withIDs, "--ids", "--config", conf)
	require.NoError(t, err)
	cfg, err = radarfile.ReadFile(withIDs)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Curves[0].DataPoints[0].ID)

	idsXLSX := filepath.Join(dir, "ids.xlsx")
	_, err = execute(t, "", "convert", chart, "-o", idsXLSX, "--ids", "--config", conf)
	require.NoError(t, err)
	cfg, err = radarfile.ReadFile(idsXLSX)
	require.NoError(t, err)
	for _, c := range cfg.Curves {
		for _, dp := range c.DataPoints {
			assert.NotEmpty(t, dp.ID)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	dir, chart, conf := setup(t)
	out := filepath.Join(dir, "chart.svg")

	_, err := execute(t, "", "render", chart, "-o", out, "--config", conf,
		"--hide", "B", "--pin", "0:1", "--title", "Scores", "--theme", "dark")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, "legend-hidden")
	assert.Contains(t, svg, "tooltip-pinned")
	assert.Contains(t, svg, ">Scores<")
	assert.Contains(t, svg, "#1f2937")
	assert.NotContains(t, svg, `data-curve="1"`)
}

func TestRenderOverrides(t *testing.T) {
	dir, chart, conf := setup(t)

	svg, err := execute(t, "", "render", chart, "-o", "-", "--format", "svg",
		"--config", conf, "--legend", "none", "--width", "300", "--grid-levels", "0")
	require.NoError(t, err)
	assert.NotContains(t, svg, `class="legend-text`)
	assert.NotContains(t, svg, `class="grid"`)
	assert.Contains(t, svg, `width="300"`)

	_, err = execute(t, "", "render", chart, "-o", filepath.Join(dir, "x.svg"), "--config", conf, "--pin", "5:0")
	assert.Error(t, err)

	_, err = execute(t, "", "render", chart, "-o", filepath.Join(dir, "x.svg"), "--config", conf, "--hide", "Nope")
	assert.Error(t, err)
}

func TestRenderLayoutPrecedence(t *testing.T) {
	dir, chart, conf := setup(t)
	t.Setenv("RADAR_WIDTH", "900")
	t.Setenv("RADAR_GRID_LEVELS", "2")

	svg, err := execute(t, "", "render", chart, "-o", "-", "--format", "svg", "--config", conf, "--legend", "none")
	require.NoError(t, err)
	assert.Contains(t, svg, `width="900"`)
	assert.Equal(t, 2, strings.Count(svg, `class="grid"`))

	sized := filepath.Join(dir, "sized.json")
	require.NoError(t, os.WriteFile(sized, []byte(`{"axes":["a","b","c"],"width":400,
		"curves":[{"name":"x","data_points":[1,2,3]}]}`), 0644))
	svg, err = execute(t, "", "render", sized, "-o", "-", "--format", "svg", "--config", conf, "--legend", "none")
	require.NoError(t, err)
	assert.Contains(t, svg, `width="400"`)
	assert.NotContains(t, svg, `width="900"`)
	assert.Equal(t, 2, strings.Count(svg, `class="grid"`))

	svg, err = execute(t, "", "render", sized, "-o", "-", "--format", "svg", "--config", conf,
		"--legend", "none", "--width", "300", "--grid-levels", "3")
	require.NoError(t, err)
	assert.Contains(t, svg, `width="300"`)
	assert.Equal(t, 3, strings.Count(svg, `class="grid"`))
}

func TestRenderPNG(t *testing.T) {
	dir, chart, conf := setup(t)

	_, err := execute(t, "", "render", chart, "--config", conf, "--format", "png", "--supersample", "1")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "chart.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestRunSession(t *testing.T) {
	dir, chart, conf := setup(t)
	saved := filepath.Join(dir, "saved.json")

	script := strings.Join([]string{
		"enter 1 0",
		"leave 1 0",
		"click 0 1",
		"edit",
		"type 95",
		"enter",
		"edit",
		"type abc",
		"enter",
		"legend A",
		"status",
		"bogus",
		"save " + saved,
		"quit",
	}, "\n")

	out, err := execute(t, script, "run", chart, "--config", conf)
	require.NoError(t, err)

	assert.Contains(t, out, "Tooltip: hovering [1:0] Speed: 20")
	assert.Contains(t, out, "Tooltip: pinned [0:1] Power: 80")
	assert.Contains(t, out, `input="95"`)
	assert.Contains(t, out, "Changed: curve 0 point 1 = 95")
	assert.Contains(t, out, "Tooltip: pinned [0:1] Power: 95")
	assert.Contains(t, out, "Legend: A")
	assert.Contains(t, out, "Tooltip: hidden")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.NotContains(t, out, "= abc")

	cfg, err := radarfile.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 95, 30}, cfg.Curves[0].Values())
}

func TestParseRef(t *testing.T) {
	ref, err := parseRef(" 2 : 3 ")
	require.NoError(t, err)
	assert.Equal(t, 2, ref.Curve)
	assert.Equal(t, 3, ref.Point)

	for _, bad := range []string{"", "1", "a:1", "1:b"} {
		_, err := parseRef(bad)
		assert.Error(t, err, bad)
	}
}
