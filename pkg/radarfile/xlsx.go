package radarfile

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// Workbook layout:
//
//	Chart sheet:    Curve | <axis 1> | ... | <axis N> | Color
//	                <name> | <value>  | ... | <value>  | <css color>
//	Settings sheet: key | value rows for max_value, width, height, grid_levels
//	Points sheet:   Curve | Axis | Label | ID, one row per point whose label
//	                differs from its axis name or that carries an ID
const (
	chartSheet    = "Chart"
	settingsSheet = "Settings"
	pointsSheet   = "Points"
	colorHeader   = "Color"
)

// ReadXLSXFile loads a chart from a workbook. An empty sheet name selects
// the first sheet. Settings stored in the workbook override defaults.
func ReadXLSXFile(path, sheet string, defaults ...radar.Option) (*radar.Config, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet, defaults)
}

// ReadXLSX loads a chart from a workbook stream.
func ReadXLSX(r io.Reader, sheet string, defaults ...radar.Option) (*radar.Config, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet, defaults)
}

func readWorkbook(f *excelize.File, sheet string, defaults []radar.Option) (*radar.Config, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := rows[0]
	colorCol := -1
	var axes []string
	for i, cell := range header {
		if i == 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(cell), colorHeader) {
			colorCol = i
			break
		}
		axes = append(axes, strings.TrimSpace(cell))
	}

	var curves []radar.Curve
	for r, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		c := radar.Curve{Name: strings.TrimSpace(row[0])}
		for i := range axes {
			col := i + 1
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				break
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				return nil, fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
			c.DataPoints = append(c.DataPoints, radar.DataPoint{Value: v, Label: axes[i]})
		}
		if colorCol >= 0 && colorCol < len(row) {
			c.Color = strings.TrimSpace(row[colorCol])
		}
		curves = append(curves, c)
	}

	if err := readPoints(f, axes, curves); err != nil {
		return nil, err
	}
	opts, err := readSettings(f)
	if err != nil {
		return nil, err
	}
	return radar.NewConfig(axes, curves, append(append([]radar.Option{}, defaults...), opts...)...)
}

func hasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// readPoints applies per-point labels and IDs from the Points sheet.
func readPoints(f *excelize.File, axes []string, curves []radar.Curve) error {
	if !hasSheet(f, pointsSheet) {
		return nil
	}
	rows, err := f.GetRows(pointsSheet)
	if err != nil {
		return fmt.Errorf("read points: %w", err)
	}
	for r, row := range rows {
		if r == 0 || len(row) < 2 {
			continue
		}
		name, axis := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		ci := slices.IndexFunc(curves, func(c radar.Curve) bool { return c.Name == name })
		ai := slices.Index(axes, axis)
		if ci < 0 || ai < 0 || ai >= len(curves[ci].DataPoints) {
			return fmt.Errorf("%s row %d: no point for curve %q axis %q", pointsSheet, r+1, name, axis)
		}
		dp := &curves[ci].DataPoints[ai]
		if len(row) > 2 && row[2] != "" {
			dp.Label = row[2]
		}
		if len(row) > 3 {
			dp.ID = strings.TrimSpace(row[3])
		}
	}
	return nil
}

func readSettings(f *excelize.File) ([]radar.Option, error) {
	if !hasSheet(f, settingsSheet) {
		return nil, nil
	}
	rows, err := f.GetRows(settingsSheet)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var opts []radar.Option
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key, val := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		switch key {
		case "max_value":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("settings max_value: %w", err)
			}
			opts = append(opts, radar.WithMaxValue(v))
		case "width", "height", "grid_levels":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("settings %s: %w", key, err)
			}
			switch key {
			case "width":
				opts = append(opts, radar.WithWidth(n))
			case "height":
				opts = append(opts, radar.WithHeight(n))
			default:
				opts = append(opts, radar.WithGridLevels(n))
			}
		}
	}
	return opts, nil
}

// WriteXLSXFile saves a chart as a workbook.
func WriteXLSXFile(path string, cfg *radar.Config) error {
	f, err := buildWorkbook(cfg)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// WriteXLSX writes a chart workbook to w.
func WriteXLSX(w io.Writer, cfg *radar.Config) error {
	f, err := buildWorkbook(cfg)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func buildWorkbook(cfg *radar.Config) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), chartSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := []interface{}{"Curve"}
	for _, a := range cfg.Axes {
		header = append(header, a)
	}
	header = append(header, colorHeader)
	if err := f.SetSheetRow(chartSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(chartSheet, "A1", last, bold)
	}

	for i, c := range cfg.Curves {
		row := []interface{}{c.Name}
		for _, dp := range c.DataPoints {
			row = append(row, dp.Value)
		}
		row = append(row, c.Color)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(chartSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if _, err := f.NewSheet(settingsSheet); err != nil {
		f.Close()
		return nil, err
	}
	settings := [][]interface{}{
		{"max_value", cfg.MaxValue},
		{"width", cfg.Width},
		{"height", cfg.Height},
		{"grid_levels", cfg.GridLevels},
	}
	for i, row := range settings {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(settingsSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writePoints(f, cfg); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writePoints(f *excelize.File, cfg *radar.Config) error {
	var rows [][]interface{}
	for _, c := range cfg.Curves {
		for i, dp := range c.DataPoints {
			if i >= len(cfg.Axes) || (dp.Label == cfg.Axes[i] && dp.ID == "") {
				continue
			}
			rows = append(rows, []interface{}{c.Name, cfg.Axes[i], dp.Label, dp.ID})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := f.NewSheet(pointsSheet); err != nil {
		return err
	}
	header := []interface{}{"Curve", "Axis", "Label", "ID"}
	if err := f.SetSheetRow(pointsSheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(pointsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
