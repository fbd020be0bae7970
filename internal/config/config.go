// Package config loads the settings shared by the radar commands from
// defaults, an optional radar.yaml and RADAR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

// EnvPrefix prefixes environment overrides, e.g. RADAR_THEME=dark.
const EnvPrefix = "RADAR"

// Settings holds persistent command settings.
type Settings struct {
	Theme      string  `mapstructure:"theme"`     // light, system or dark
	FileType   string  `mapstructure:"file_type"` // png or svg
	LastDir    string  `mapstructure:"last_dir"`
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	MaxValue   float64 `mapstructure:"max_value"`
	GridLevels int     `mapstructure:"grid_levels"`
	Legend     string  `mapstructure:"legend"` // vertical, horizontal or none
	LogLevel   string  `mapstructure:"log_level"`
	LogFile    string  `mapstructure:"log_file"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	cwd, _ := os.Getwd()
	return Settings{
		Theme:      string(radar.ThemeSystem),
		FileType:   "png",
		LastDir:    cwd,
		Width:      radar.DefaultWidth,
		Height:     radar.DefaultHeight,
		MaxValue:   radar.DefaultMaxValue,
		GridLevels: radar.DefaultGridLevels,
		Legend:     "vertical",
		LogLevel:   "info",
	}
}

// Dir returns the directory searched for radar.yaml after the working
// directory.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "radar-toolkit")
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("file_type", d.FileType)
	v.SetDefault("last_dir", d.LastDir)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("max_value", d.MaxValue)
	v.SetDefault("grid_levels", d.GridLevels)
	v.SetDefault("legend", d.Legend)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the settings. With an empty
// path it looks for radar.yaml in the working directory and Dir(); a
// missing file is not an error.
func Load(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("radar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects values the commands cannot act on.
func (s Settings) Validate() error {
	if _, err := radar.ParseTheme(s.Theme); err != nil {
		return err
	}
	switch s.FileType {
	case "png", "svg":
	default:
		return fmt.Errorf("invalid file_type %q (must be png or svg)", s.FileType)
	}
	switch s.Legend {
	case "vertical", "horizontal", "none":
	default:
		return fmt.Errorf("invalid legend %q (must be vertical, horizontal or none)", s.Legend)
	}
	return nil
}

// ChartOptions converts the chart-related settings.
func (s Settings) ChartOptions() []radar.Option {
	return []radar.Option{
		radar.WithMaxValue(s.MaxValue),
		radar.WithSize(s.Width, s.Height),
		radar.WithGridLevels(s.GridLevels),
	}
}

// Save writes the persistent editor settings back to the file v was loaded
// from, or to Dir()/radar.yaml.
func Save(v *viper.Viper, s Settings) error {
	v.Set("theme", s.Theme)
	v.Set("file_type", s.FileType)
	v.Set("last_dir", s.LastDir)
	v.Set("legend", s.Legend)

	path := v.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(Dir(), "radar.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}
