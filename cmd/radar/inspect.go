package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Show chart information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadChart(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printf(w, "Axes:        %d\n", len(cfg.Axes))
			printf(w, "Curves:      %d\n", len(cfg.Curves))
			printf(w, "Max value:   %s\n", radar.FormatValue(cfg.MaxValue))
			printf(w, "Size:        %dx%d\n", cfg.Width, cfg.Height)
			printf(w, "Grid levels: %d\n", cfg.GridLevels)
			printf(w, "\n")
			printf(w, "Axes:        %s\n", strings.Join(cfg.Axes, ", "))
			for _, c := range cfg.Curves {
				vals := make([]string, len(c.DataPoints))
				for i, dp := range c.DataPoints {
					vals[i] = radar.FormatValue(dp.Value)
				}
				color := c.Color
				if color == "" {
					color = "-"
				}
				printf(w, "  %-12s %-9s %s\n", c.Name, color, strings.Join(vals, " "))
			}
			return nil
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a chart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadChart(args[0])
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			printf(cmd.OutOrStdout(), "%s: valid chart with %d axes, %d curves\n",
				args[0], len(cfg.Axes), len(cfg.Curves))
			return nil
		},
	}
}
