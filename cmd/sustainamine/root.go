package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/sustainamine/internal/config"
	"github.com/rshade/sustainamine/internal/factors"
	"github.com/rshade/sustainamine/internal/lca"
	"github.com/rshade/sustainamine/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries state resolved once per invocation and shared by subcommands.
type app struct {
	logLevel  string
	logFormat string

	cfg    config.Config
	logger zerolog.Logger
	loader *factors.Loader
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "sustainamine",
		Short: "Illustrative life cycle estimates for aluminium and copper",
		Long: "sustainamine estimates CO2e intensity, by-products, circularity and\n" +
			"recycling cost for primary aluminium and copper from a small set of\n" +
			"production parameters. Figures are illustrative, not certified LCA results.",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides SUSTAINAMINE_LOG_LEVEL)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: console or json (overrides SUSTAINAMINE_LOG_FORMAT)")

	cmd.AddCommand(newEstimateCmd(a))
	cmd.AddCommand(newFactorsCmd(a))
	cmd.AddCommand(newServeCmd(a))
	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	bootstrap := logging.New(cmd.ErrOrStderr(), "warn", logging.FormatConsole)
	cfg, err := config.Load(bootstrap)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	a.loader = factors.NewLoader(a.logger)
	return nil
}

// estimator builds an Estimator from the factor file at path, falling back to
// SUSTAINAMINE_FACTORS_FILE and then to the embedded defaults.
func (a *app) estimator(path string) (*lca.Estimator, error) {
	if path == "" {
		path = a.cfg.FactorsFile
	}
	table, err := a.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return lca.NewEstimator(table)
}
