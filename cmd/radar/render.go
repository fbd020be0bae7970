package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
	"github.com/ha1tch/radar-toolkit/pkg/radarfile"
)

type renderOptions struct {
	output      string
	title       string
	hide        []string
	pin         string
	dark        bool
	noTargets   bool
	supersample int
	width       int
	height      int
	maxValue    float64
	gridLevels  int
}

func newRenderCmd(a *app) *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a chart to SVG or PNG",
		Long: `Render a chart file to SVG or PNG.

The output format follows the -o extension, falling back to the file_type
setting. Size, maximum value and grid levels come from the chart file
unless given as flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output file, - for stdout")
	f.StringVarP(&o.title, "title", "t", "", "title above the chart")
	f.StringSliceVar(&o.hide, "hide", nil, "curves to hide (repeatable)")
	f.StringVar(&o.pin, "pin", "", "pin a tooltip at curve:point")
	f.BoolVar(&o.dark, "dark", false, "resolve the system theme as dark")
	f.BoolVar(&o.noTargets, "no-hit-targets", false, "omit SVG pointer targets")
	f.IntVar(&o.supersample, "supersample", 4, "PNG supersampling factor")
	f.IntVar(&o.width, "width", 0, "chart width")
	f.IntVar(&o.height, "height", 0, "chart height")
	f.Float64Var(&o.maxValue, "max", 0, "value at the outer ring")
	f.IntVar(&o.gridLevels, "grid-levels", 0, "number of grid rings")
	f.String("theme", "", "colour theme (light, system, dark)")
	f.String("legend", "", "legend layout (vertical, horizontal, none)")
	f.String("format", "", "output format when -o has no extension (png, svg)")
	_ = a.v.BindPFlag("theme", f.Lookup("theme"))
	_ = a.v.BindPFlag("legend", f.Lookup("legend"))
	_ = a.v.BindPFlag("file_type", f.Lookup("format"))

	return cmd
}

func (a *app) render(cmd *cobra.Command, input string, o renderOptions) error {
	cfg, err := a.loadChart(input)
	if err != nil {
		return err
	}

	if opts := overrides(cmd.Flags(), o); len(opts) > 0 {
		cfg, err = radar.NewConfig(cfg.Axes, cfg.Curves, append([]radar.Option{
			radar.WithMaxValue(cfg.MaxValue),
			radar.WithSize(cfg.Width, cfg.Height),
			radar.WithGridLevels(cfg.GridLevels),
		}, opts...)...)
		if err != nil {
			return err
		}
	}

	chart, err := radar.NewChart(cfg,
		radar.WithLogger(a.log),
		radar.WithLegendLayout(radar.ParseLegendLayout(a.settings.Legend)))
	if err != nil {
		return err
	}

	for _, name := range o.hide {
		if !chart.Visible(name) {
			return fmt.Errorf("no visible curve named %q", name)
		}
		chart.LegendClick(name)
	}
	if o.pin != "" {
		ref, err := parseRef(o.pin)
		if err != nil {
			return err
		}
		chart.Click(ref)
		if chart.TooltipState() != radar.TooltipPinned {
			return fmt.Errorf("cannot pin %s: no visible point there", o.pin)
		}
	}

	theme, err := radar.ParseTheme(a.settings.Theme)
	if err != nil {
		return err
	}

	var legend *radar.LegendView
	if a.settings.Legend != "none" {
		l := chart.Legend()
		legend = &l
	}

	format := a.settings.FileType
	output := o.output
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg", ".png":
		format = ext[1:]
	}
	if output == "" {
		output = swapExt(input, "."+format)
	}

	var buf bytes.Buffer
	switch format {
	case "svg":
		opts := radarfile.DefaultSVGOptions()
		opts.Theme, opts.PrefersDark, opts.Title = theme, o.dark, o.title
		opts.HitTargets = !o.noTargets
		buf.WriteString(radarfile.GenerateSVG(chart.Scene(), legend, opts))
	case "png":
		opts := radarfile.DefaultPNGOptions()
		opts.Theme, opts.PrefersDark, opts.Title = theme, o.dark, o.title
		if o.supersample > 0 {
			opts.Supersample = o.supersample
		}
		if err := radarfile.RenderPNG(chart.Scene(), legend, &buf, opts); err != nil {
			return fmt.Errorf("error rendering png: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", output, err)
	}
	a.log.Info().Str("file", output).Str("format", format).Msg("chart rendered")
	printf(cmd.OutOrStdout(), "Written: %s\n", output)
	return nil
}

// overrides returns chart options for the layout flags set on the command
// line. Unset flags keep the values already in the chart.
func overrides(flags *pflag.FlagSet, o renderOptions) []radar.Option {
	var opts []radar.Option
	if flags.Changed("width") {
		opts = append(opts, radar.WithWidth(o.width))
	}
	if flags.Changed("height") {
		opts = append(opts, radar.WithHeight(o.height))
	}
	if flags.Changed("max") {
		opts = append(opts, radar.WithMaxValue(o.maxValue))
	}
	if flags.Changed("grid-levels") {
		opts = append(opts, radar.WithGridLevels(o.gridLevels))
	}
	return opts
}

// parseRef parses "curve:point" indices.
func parseRef(s string) (radar.PointRef, error) {
	c, p, ok := strings.Cut(s, ":")
	if !ok {
		return radar.PointRef{}, fmt.Errorf("invalid point %q (want curve:point)", s)
	}
	ci, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return radar.PointRef{}, fmt.Errorf("invalid curve index in %q: %w", s, err)
	}
	pi, err := strconv.Atoi(strings.TrimSpace(p))
	if err != nil {
		return radar.PointRef{}, fmt.Errorf("invalid point index in %q: %w", s, err)
	}
	return radar.PointRef{Curve: ci, Point: pi}, nil
}
