// Command radar is a CLI tool for working with radar chart files.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ha1tch/radar-toolkit/internal/config"
	"github.com/ha1tch/radar-toolkit/internal/logging"
	"github.com/ha1tch/radar-toolkit/pkg/radar"
	"github.com/ha1tch/radar-toolkit/pkg/radarfile"
)

// app is the state shared by all subcommands.
type app struct {
	v          *viper.Viper
	settings   config.Settings
	log        zerolog.Logger
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "radar",
		Short: "Radar chart toolkit",
		Long: `radar renders, converts and inspects radar (spider) chart files.

Chart files are JSON (.json) or Excel workbooks (.xlsx). Settings are read
from radar.yaml in the working directory or the user config directory, and
from RADAR_* environment variables.`,
		Example: `  radar render scores.json -o scores.svg --theme dark
  radar render scores.xlsx --hide "Model B" --pin 0:2
  radar convert scores.json -o scores.xlsx
  radar info scores.json
  radar run scores.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.settings = s
			a.log = logging.New(cmd.ErrOrStderr(), s.LogLevel, false)
			a.log.Debug().Str("config", a.v.ConfigFileUsed()).Msg("settings loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default radar.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	_ = a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newRenderCmd(a),
		newConvertCmd(a),
		newInfoCmd(a),
		newValidateCmd(a),
		newRunCmd(a),
	)
	return rootCmd
}

// loadChart reads a chart file and logs what was loaded. Layout settings the
// file leaves out come from radar.yaml and the environment.
func (a *app) loadChart(path string) (*radar.Config, error) {
	cfg, err := radarfile.ReadFile(path, a.settings.ChartOptions()...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	a.log.Debug().
		Str("file", path).
		Int("axes", len(cfg.Axes)).
		Int("curves", len(cfg.Curves)).
		Msg("chart loaded")
	return cfg, nil
}

// swapExt replaces the extension of path.
func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
