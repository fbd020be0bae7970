package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/radar-toolkit/pkg/geom"
	"github.com/ha1tch/radar-toolkit/pkg/radar"
	"github.com/ha1tch/radar-toolkit/pkg/radarfile"
)

const runHelp = `Commands:
  enter <c> <p>   - Pointer enters point p of curve c
  leave <c> <p>   - Pointer leaves point p of curve c
  click <c> <p>   - Click point p of curve c
  at <x> <y>      - Click whatever point is under (x, y)
  edit            - Edit the pinned tooltip
  type <text>     - Replace the edit text
  enter | esc     - Commit or cancel the edit
  blur            - Move focus away from the edit
  legend <name>   - Toggle a curve
  set <c> <p> <v> - Set a value directly
  status          - Show tooltip state
  data            - Show current values
  save [file]     - Save the chart
  quit            - Exit`

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input>",
		Short: "Drive a chart interactively from the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadChart(args[0])
			if err != nil {
				return err
			}
			cfg.EnsurePointIDs()

			out := cmd.OutOrStdout()
			chart, err := radar.NewChart(cfg,
				radar.WithLogger(a.log),
				radar.OnValueChange(func(ci, pi int, v float64) {
					printf(out, "Changed: curve %d point %d = %s\n", ci, pi, radar.FormatValue(v))
				}),
				radar.OnLegendClick(func(name string) {
					printf(out, "Legend: %s\n", name)
				}))
			if err != nil {
				return err
			}

			printf(out, "Chart: %d axes, %d curves\n", len(cfg.Axes), len(cfg.Curves))
			printf(out, "Type \"help\" for commands.\n\n")
			return runLoop(chart, args[0], cmd.InOrStdin(), out)
		},
	}
}

func runLoop(chart *radar.Chart, path string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		printf(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			printf(out, "%s\n", runHelp)
		case "status":
			printStatus(out, chart)
		case "data":
			printData(out, chart)
		case "enter":
			if rest == "" {
				chart.Key(radar.KeyEnter)
				printStatus(out, chart)
				continue
			}
			withRef(out, rest, func(ref radar.PointRef) { chart.PointerEnter(ref) })
			printStatus(out, chart)
		case "leave":
			withRef(out, rest, func(ref radar.PointRef) { chart.PointerLeave(ref) })
			printStatus(out, chart)
		case "click":
			withRef(out, rest, func(ref radar.PointRef) { chart.Click(ref) })
			printStatus(out, chart)
		case "at":
			x, y, err := parsePair(rest)
			if err != nil {
				printf(out, "Error: %v\n", err)
				continue
			}
			ref, ok := chart.PointAt(geom.Point{X: x, Y: y})
			if !ok {
				printf(out, "No point at %s,%s\n", radar.FormatValue(x), radar.FormatValue(y))
				continue
			}
			chart.Click(ref)
			printStatus(out, chart)
		case "edit":
			if !chart.StartEdit() {
				printf(out, "Nothing pinned\n")
				continue
			}
			printStatus(out, chart)
		case "type":
			chart.Input(rest)
			printStatus(out, chart)
		case "esc":
			chart.Key(radar.KeyEscape)
			printStatus(out, chart)
		case "blur":
			chart.Blur()
			printStatus(out, chart)
		case "legend":
			chart.LegendClick(rest)
			printStatus(out, chart)
		case "set":
			f := strings.Fields(rest)
			if len(f) != 3 {
				printf(out, "Usage: set <c> <p> <value>\n")
				continue
			}
			ref, err := parseRef(f[0] + ":" + f[1])
			if err != nil {
				printf(out, "Error: %v\n", err)
				continue
			}
			v, err := strconv.ParseFloat(f[2], 64)
			if err != nil {
				printf(out, "Error: %v\n", err)
				continue
			}
			if !chart.SetDataPointValue(ref.Curve, ref.Point, v) {
				printf(out, "No point %d:%d\n", ref.Curve, ref.Point)
			}
		case "save":
			target := path
			if rest != "" {
				target = rest
			}
			if err := radarfile.WriteFile(target, chart.Config()); err != nil {
				printf(out, "Error: %v\n", err)
				continue
			}
			printf(out, "Written: %s\n", target)
		default:
			printf(out, "Unknown command: %s\n", cmd)
		}
	}
}

func withRef(out io.Writer, s string, fn func(radar.PointRef)) {
	f := strings.Fields(s)
	if len(f) != 2 {
		printf(out, "Usage: <command> <curve> <point>\n")
		return
	}
	ref, err := parseRef(f[0] + ":" + f[1])
	if err != nil {
		printf(out, "Error: %v\n", err)
		return
	}
	fn(ref)
}

func parsePair(s string) (float64, float64, error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("want two numbers, got %q", s)
	}
	x, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func printStatus(out io.Writer, chart *radar.Chart) {
	status := fmt.Sprintf("Tooltip: %s", chart.TooltipState())
	if t, ok := chart.Tooltip(); ok {
		status += fmt.Sprintf(" [%d:%d] %s", t.CurveIndex, t.PointIndex, t.Label)
		if t.Editing {
			status += fmt.Sprintf(" input=%q", chart.InputBuffer())
		}
	}
	printf(out, "%s\n", status)
}

func printData(out io.Writer, chart *radar.Chart) {
	cfg := chart.Config()
	for i, c := range cfg.Curves {
		vals := make([]string, len(c.DataPoints))
		for j, dp := range c.DataPoints {
			vals[j] = radar.FormatValue(dp.Value)
		}
		mark := " "
		if !chart.Visible(c.Name) {
			mark = "-"
		}
		printf(out, "%s%d %-12s %s\n", mark, i, c.Name, strings.Join(vals, " "))
	}
}
