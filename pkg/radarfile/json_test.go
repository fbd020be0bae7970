package radarfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

const sampleJSON = `{
  "axes": ["Speed", "Power", "Accuracy", "Range", "Durability"],
  "curves": [
    {"name": "Model A", "color": "#3366CC", "data_points": [70, 85, 65, 90, 75]},
    {"name": "Model B", "color": "#DC3912", "data_points": [
      {"value": 80, "label": "Speed"}, 65, {"value": 90}, 70, {"value": 85, "id": "b-5"}
    ]}
  ]
}`

func TestParseJSON(t *testing.T) {
	cfg, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Len(t, cfg.Axes, 5)
	require.Len(t, cfg.Curves, 2)
	assert.Equal(t, 100.0, cfg.MaxValue)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 5, cfg.GridLevels)

	b := cfg.Curves[1]
	assert.Equal(t, "#DC3912", b.Color)
	assert.Equal(t, radar.DataPoint{Value: 80, Label: "Speed"}, b.DataPoints[0])
	assert.Equal(t, radar.DataPoint{Value: 65, Label: "Power"}, b.DataPoints[1])
	assert.Equal(t, "Accuracy", b.DataPoints[2].Label)
	assert.Equal(t, "b-5", b.DataPoints[4].ID)
}

func TestParseJSONSettings(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"axes":["a"],"curves":[{"name":"c","data_points":[3]}],
		"max_value": 10, "width": 300, "grid_levels": 0}`))
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.MaxValue)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, radar.DefaultHeight, cfg.Height)
	assert.Equal(t, 0, cfg.GridLevels)
}

func TestParseJSONErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"axes": ["a", "b", "c"], "curves": [{"name": "c", "data_points": [1, 2]}]}`))
	assert.ErrorIs(t, err, radar.ErrDataPointCountMismatch)

	_, err = ParseJSON([]byte(`{"axes": [], "curves": []}`))
	assert.ErrorIs(t, err, radar.ErrNoAxesProvided)

	_, err = ParseJSON([]byte(`{"axes": ["a"], "curves": [{"name": "c", "data_points": ["x"]}]}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"axes": ["a"], "curves": [{"name": "c", "data_points": [1]}], "max_value": 0}`))
	assert.ErrorIs(t, err, radar.ErrInvalidMaxValue)

	_, err = ParseJSON([]byte(`{"axes": ["a"], "curves": [{"name": "c", "data_points": [1]}], "width": 0}`))
	assert.ErrorIs(t, err, radar.ErrInvalidSize)
}

func TestParseJSONDefaults(t *testing.T) {
	defaults := []radar.Option{radar.WithMaxValue(50), radar.WithSize(900, 700), radar.WithGridLevels(2)}

	cfg, err := ParseJSON([]byte(`{"axes":["a"],"curves":[{"name":"c","data_points":[3]}]}`), defaults...)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.MaxValue)
	assert.Equal(t, 900, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
	assert.Equal(t, 2, cfg.GridLevels)

	cfg, err = ParseJSON([]byte(`{"axes":["a"],"curves":[{"name":"c","data_points":[3]}],
		"width": 400, "grid_levels": 6}`), defaults...)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.MaxValue)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
	assert.Equal(t, 6, cfg.GridLevels)
}

func TestJSONRoundTrip(t *testing.T) {
	cfg, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)
	cfg.EnsurePointIDs()

	data, err := ToJSON(cfg, true)
	require.NoError(t, err)

	back, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
