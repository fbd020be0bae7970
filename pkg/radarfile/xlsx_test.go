package radarfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

func TestXLSXRoundTrip(t *testing.T) {
	cfg, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)
	cfg.MaxValue = 120
	cfg.GridLevels = 4

	path := filepath.Join(t.TempDir(), "chart.xlsx")
	require.NoError(t, WriteFile(path, cfg))

	back, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Axes, back.Axes)
	assert.Equal(t, 120.0, back.MaxValue)
	assert.Equal(t, 4, back.GridLevels)
	require.Len(t, back.Curves, 2)
	assert.Equal(t, "Model B", back.Curves[1].Name)
	assert.Equal(t, "#DC3912", back.Curves[1].Color)
	assert.Equal(t, cfg.Curves[1].Values(), back.Curves[1].Values())
	assert.Equal(t, "Range", back.Curves[0].DataPoints[3].Label)
}

func TestXLSXStream(t *testing.T) {
	cfg, err := radar.NewConfig([]string{"x", "y", "z"}, []radar.Curve{
		{Name: "only", Color: "#000000", DataPoints: []radar.DataPoint{{Value: 1}, {Value: 2.5}, {Value: 3}}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, cfg))

	back, err := ReadXLSX(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3}, back.Curves[0].Values())
}

func TestXLSXPointLabelsAndIDs(t *testing.T) {
	cfg, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)
	cfg.Curves[0].DataPoints[0].Label = "Top speed"
	cfg.Curves[0].DataPoints[0].ID = "id-1"
	cfg.Curves[1].DataPoints[2].Label = "Peak"
	cfg.Curves[1].DataPoints[3].ID = "id-2"

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, cfg))

	back, err := ReadXLSX(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, cfg.Curves, back.Curves)
}

func TestXLSXDefaults(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Curve", "A", "B", "C"},
		{"first", 10, 20, 30},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	_, err := f.NewSheet(settingsSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(settingsSheet, "A1", &[]interface{}{"width", 400}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	cfg, err := ReadXLSX(&buf, sheet, radar.WithSize(900, 700), radar.WithGridLevels(2))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
	assert.Equal(t, 2, cfg.GridLevels)
}

func TestXLSXHandWrittenSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Curve", "A", "B", "C", "Color"},
		{"first", 10, 20, 30, "#3366CC"},
		{"second", 5, "oops", 7},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ReadXLSX(bytes.NewReader(buf.Bytes()), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C3")

	require.NoError(t, f.SetCellValue(sheet, "C3", 15))
	buf.Reset()
	require.NoError(t, f.Write(&buf))

	cfg, err := ReadXLSX(&buf, sheet)
	require.NoError(t, err)
	require.Len(t, cfg.Curves, 2)
	assert.Equal(t, "", cfg.Curves[1].Color)
	assert.Equal(t, []float64{5, 15, 7}, cfg.Curves[1].Values())
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b/chart.JSON")
	assert.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatFromPath("chart.xlsx")
	assert.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatFromPath("chart.csv")
	assert.Error(t, err)
}
