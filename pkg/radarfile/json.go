// Package radarfile reads and writes radar chart data and renders charts to
// SVG and PNG.
package radarfile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// jsonChart is the JSON representation of a chart.
type jsonChart struct {
	Axes       []string    `json:"axes"`
	Curves     []jsonCurve `json:"curves"`
	MaxValue   *float64    `json:"max_value,omitempty"`
	Width      *int        `json:"width,omitempty"`
	Height     *int        `json:"height,omitempty"`
	GridLevels *int        `json:"grid_levels,omitempty"`
}

type jsonCurve struct {
	Name       string            `json:"name"`
	Color      string            `json:"color"`
	DataPoints []json.RawMessage `json:"data_points"` // number or {value, label, id}
}

type jsonPoint struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
	ID    string  `json:"id,omitempty"`
}

// ParseJSON parses and validates a chart. Data points may be bare numbers,
// in which case the label defaults to the axis name. Settings present in the
// document override defaults.
func ParseJSON(data []byte, defaults ...radar.Option) (*radar.Config, error) {
	var j jsonChart
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse chart json: %w", err)
	}

	curves := make([]radar.Curve, 0, len(j.Curves))
	for ci, jc := range j.Curves {
		c := radar.Curve{Name: jc.Name, Color: jc.Color}
		for pi, raw := range jc.DataPoints {
			dp, err := decodePoint(raw)
			if err != nil {
				return nil, fmt.Errorf("curve %d (%s) point %d: %w", ci, jc.Name, pi, err)
			}
			if dp.Label == "" && pi < len(j.Axes) {
				dp.Label = j.Axes[pi]
			}
			c.DataPoints = append(c.DataPoints, dp)
		}
		curves = append(curves, c)
	}

	opts := append([]radar.Option{}, defaults...)
	if j.MaxValue != nil {
		opts = append(opts, radar.WithMaxValue(*j.MaxValue))
	}
	if j.Width != nil {
		opts = append(opts, radar.WithWidth(*j.Width))
	}
	if j.Height != nil {
		opts = append(opts, radar.WithHeight(*j.Height))
	}
	if j.GridLevels != nil {
		opts = append(opts, radar.WithGridLevels(*j.GridLevels))
	}
	return radar.NewConfig(j.Axes, curves, opts...)
}

func decodePoint(raw json.RawMessage) (radar.DataPoint, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] != '{' {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return radar.DataPoint{}, fmt.Errorf("data point must be a number or object: %w", err)
		}
		return radar.DataPoint{Value: v}, nil
	}

	var jp jsonPoint
	if err := json.Unmarshal(raw, &jp); err != nil {
		return radar.DataPoint{}, err
	}
	return radar.DataPoint{Value: jp.Value, Label: jp.Label, ID: jp.ID}, nil
}

// ToJSON converts a chart to JSON.
func ToJSON(cfg *radar.Config, pretty bool) ([]byte, error) {
	maxValue, width, height, levels := cfg.MaxValue, cfg.Width, cfg.Height, cfg.GridLevels
	j := jsonChart{
		Axes:       cfg.Axes,
		MaxValue:   &maxValue,
		Width:      &width,
		Height:     &height,
		GridLevels: &levels,
	}

	for _, c := range cfg.Curves {
		jc := jsonCurve{Name: c.Name, Color: c.Color}
		for _, dp := range c.DataPoints {
			raw, err := json.Marshal(jsonPoint{Value: dp.Value, Label: dp.Label, ID: dp.ID})
			if err != nil {
				return nil, err
			}
			jc.DataPoints = append(jc.DataPoints, raw)
		}
		j.Curves = append(j.Curves, jc)
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}
