package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotcommander/bananaq/internal/batch"
	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/discovery"
)

var (
	batchRoot        string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch [patterns...]",
	Short: "Score every record of one or more CSV datasets",
	Long: `Batch finds CSV datasets under the root directory and scores every row.
Columns are size, weight, sweetness, softness, harvest time, ripeness and
acidity after a header line; an optional eighth column holds a Good/Bad label
that the prediction is compared against.

Patterns are doublestar globs relative to the root and default to **/*.csv.

Examples:
  bananaq batch
  bananaq batch --root data 'farm/**/*.csv' --format markdown -o report.md`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBatch(cmd.Context(), args); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchRoot, "root", "r", "", "Directory to search for datasets (default from config, else .)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Datasets scored in parallel (default from config)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(ctx context.Context, patterns []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(batchRoot)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if batchConcurrency > 0 {
		cfg.Concurrency = batchConcurrency
	}

	validator, err := cue.NewLoadedValidator()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}
	engine, err := newEngine(cfg, validator)
	if err != nil {
		return err
	}

	files, err := discovery.NewFileDiscovery(cfg.Root, cfg.FollowSymlinks, cfg.Exclude).DiscoverFiles(patterns)
	if err != nil {
		return fmt.Errorf("error discovering datasets: %w", err)
	}
	logger.Debug("datasets discovered", zap.String("root", cfg.Root), zap.Int("files", len(files)))

	summary, err := batch.NewRunner(engine, logger, cfg.Concurrency).Run(ctx, files)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	if err := newOutputter(cfg).FormatBatch(summary); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d datasets could not be scored", summary.FailedFiles, len(summary.Files))
	}
	return nil
}
