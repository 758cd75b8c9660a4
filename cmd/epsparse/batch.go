package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eps_parser/pkg/core/batch"
	"eps_parser/pkg/core/config"
	"eps_parser/pkg/core/export"
	"eps_parser/pkg/core/store"
)

var (
	workers   int
	outputDir string
	formats   []string
	saveToDB  bool
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Resolve one EPS per filing in DIR and export the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Export formats: csv, xlsx, json, md")
	cmd.Flags().BoolVar(&saveToDB, "store", false, "Also save results to Postgres (needs DATABASE_URL)")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := applyBatchFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := batch.NewRunner(cfg.Workers, cfg.Extensions, logger)
	report, err := runner.Run(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	written, err := export.WriteAll(cfg.Output, report)
	if err != nil {
		return err
	}
	for _, p := range written {
		logger.Info("[Export] wrote", zap.String("path", p))
	}

	if saveToDB {
		if err := saveReport(ctx, cfg, report); err != nil {
			return err
		}
		logger.Info("[Store] saved run", zap.String("run_id", report.RunID))
	}

	found, missing, failed := report.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "%d filings: %d with EPS, %d without, %d failed (%s)\n",
		len(report.Results), found, missing, failed, report.Duration)
	return nil
}

// applyBatchFlags lets explicitly set flags override the loaded config.
func applyBatchFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("format") {
		cfg.Output.Formats = append([]string(nil), formats...)
	}
	return cfg.Validate()
}

func saveReport(ctx context.Context, cfg *config.Config, report *batch.Report) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--store needs DATABASE_URL or database_url in config")
	}
	if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
		return err
	}
	defer store.Close()

	repo := store.NewEPSRepo()
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.Save(ctx, report)
}
