// Package main provides the epsparse CLI: EPS extraction for one filing or a
// directory of filings.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eps_parser/pkg/core/config"
	"eps_parser/pkg/core/logging"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "epsparse",
		Short: "Extract earnings per share from HTML financial filings",
		Long: `epsparse scans the tables of HTML filings for EPS rows and reports
one EPS value per filing.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.yaml, .yml, .hjson or .json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.AddCommand(newExtractCmd(), newBatchCmd())
	return rootCmd
}

// setup loads config and builds the logger shared by every subcommand.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Verbose = true
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
