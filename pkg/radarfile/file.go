package radarfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// Format is a chart data file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported chart file %q (want .json or .xlsx)", path)
}

// ReadFile loads a chart from a .json or .xlsx file. Settings stored in the
// file override defaults.
func ReadFile(path string, defaults ...radar.Option) (*radar.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return ReadXLSXFile(path, "", defaults...)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg, err := ParseJSON(data, defaults...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}
}

// WriteFile saves a chart as .json or .xlsx, by extension.
func WriteFile(path string, cfg *radar.Config) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return WriteXLSXFile(path, cfg)
	default:
		data, err := ToJSON(cfg, true)
		if err != nil {
			return err
		}
		return os.WriteFile(path, append(data, '\n'), 0644)
	}
}
