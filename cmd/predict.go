package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/types"
)

var predictInput string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict quality, appearance and yield for one banana",
	Long: `Predict scores one set of measurements and prints the quality label with its
confidence, the expected appearance, recommendations for out-of-range
parameters and the estimated yield.

Values come from the field flags, a record file given with --input, or the
form defaults for anything not set.

Examples:
  bananaq predict --sweetness 3.2 --ripeness 2.5
  bananaq predict --input banana.yaml --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPredict(cmd); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	addRecordFlags(predictCmd, &predictInput)
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	validator, err := cue.NewLoadedValidator()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}

	r, err := readRecord(cmd, predictInput, validator, cfg.Strict)
	if err != nil {
		return err
	}

	return analyze(cfg, validator, r)
}

// analyze runs the engine on r and renders the result.
func analyze(cfg *config.Config, validator *cue.Validator, r types.Record) error {
	engine, err := newEngine(cfg, validator)
	if err != nil {
		return err
	}

	analysis := engine.Analyze(r)
	if err := newOutputter(cfg).FormatAnalysis(&analysis); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
