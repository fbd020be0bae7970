package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/radar-toolkit/pkg/radarfile"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		output string
		ids    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert between chart formats (json, xlsx)",
		Long: `Convert a chart between JSON and Excel.

Without -o the extension is swapped: .json becomes .xlsx and the reverse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			cfg, err := a.loadChart(input)
			if err != nil {
				return err
			}

			if output == "" {
				in, err := radarfile.FormatFromPath(input)
				if err != nil {
					return err
				}
				if in == radarfile.FormatJSON {
					output = swapExt(input, ".xlsx")
				} else {
					output = swapExt(input, ".json")
				}
			}

			if ids {
				n := cfg.EnsurePointIDs()
				a.log.Debug().Int("assigned", n).Msg("point ids assigned")
			}

			if err := radarfile.WriteFile(output, cfg); err != nil {
				return fmt.Errorf("error writing %s: %w", output, err)
			}
			printf(cmd.OutOrStdout(), "Written: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .xlsx)")
	cmd.Flags().BoolVar(&ids, "ids", false, "assign IDs to data points that have none")
	return cmd
}
