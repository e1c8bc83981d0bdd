package main

import (
	"github.com/spf13/cobra"

	"github.com/rshade/sustainamine/internal/factors"
)

func newFactorsCmd(a *app) *cobra.Command {
	var (
		format      string
		factorsFile string
	)

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Print the active factor table",
		Long: `Prints the factor table estimates are computed with: the embedded
defaults, overlaid with --factors or SUSTAINAMINE_FACTORS_FILE when set.
The output is itself a valid factor file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			est, err := a.estimator(factorsFile)
			if err != nil {
				return err
			}
			out, err := factors.Marshal(est.Factors(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", factors.FormatYAML, "output format: yaml or json")
	cmd.Flags().StringVar(&factorsFile, "factors", "", "YAML or JSON factor file (overrides SUSTAINAMINE_FACTORS_FILE)")
	return cmd
}
