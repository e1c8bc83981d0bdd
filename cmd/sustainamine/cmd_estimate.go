package main

import (
	"github.com/spf13/cobra"

	"github.com/rshade/sustainamine/internal/lca"
	"github.com/rshade/sustainamine/internal/report"
)

func newEstimateCmd(a *app) *cobra.Command {
	form := lca.DefaultForm()
	var (
		format      string
		factorsFile string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute one estimate and print its summary",
		Long: `Computes CO2e per kg and per tonne (including transport), the metal's
by-product, a circularity score, recycling cost and compliance flags.

Enumerated flags accept machine names (coal_grid) or display labels
("Coal-based grid"), case-insensitively.`,
		Example: `  sustainamine estimate
  sustainamine estimate --metal copper --route mixed --recycled 50 --ore low \
    --energy "Coal-based grid" --distance-km 0 --tonnes 2 --eol recycling --storage untreated
  sustainamine estimate --format json --factors site-factors.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := form.Parse()
			if err != nil {
				return err
			}
			est, err := a.estimator(factorsFile)
			if err != nil {
				return err
			}
			res, err := est.Estimate(in)
			if err != nil {
				return err
			}

			a.logger.Debug().
				Str("metal", in.Metal.String()).
				Str("route", in.Route.String()).
				Float64("co2_per_kg", res.CO2PerKg).
				Msg("estimate computed")

			return report.Write(cmd.OutOrStdout(), format, in, res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Metal, "metal", form.Metal, "metal: Aluminium or Copper")
	f.StringVar(&form.Route, "route", form.Route, "production route: Virgin/Raw, Recycled or Mixed")
	f.IntVar(&form.RecycledPercent, "recycled", form.RecycledPercent, "recycled content in percent (0-100)")
	f.StringVar(&form.OreQuality, "ore", form.OreQuality, "ore quality: High, Medium or Low")
	f.StringVar(&form.EnergySource, "energy", form.EnergySource, "energy source: Coal-based grid, Mixed grid or Renewable-heavy")
	f.Float64Var(&form.TransportDistanceKm, "distance-km", form.TransportDistanceKm, "transport distance in km")
	f.Float64Var(&form.TransportTonnes, "tonnes", form.TransportTonnes, "tonnes produced and transported (>= 1)")
	f.StringVar(&form.EndOfLife, "eol", form.EndOfLife, "end of life: Landfill, Recycling or Reuse")
	f.StringVar(&form.Storage, "storage", form.Storage, "waste storage: Authorized storage, Temporary open storage or Untreated")
	f.StringVarP(&format, "format", "o", report.FormatText, "output format: text, markdown or json")
	f.StringVar(&factorsFile, "factors", "", "YAML or JSON factor file (overrides SUSTAINAMINE_FACTORS_FILE)")
	return cmd
}
