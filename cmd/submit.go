package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/session"
)

var submitInput string

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Store a record for a later 'results' run",
	Long: `Submit saves one set of measurements in the session directory, replacing any
earlier submission. Run 'bananaq results' to analyze it.

Examples:
  bananaq submit --size -0.9 --acidity 1.5
  bananaq submit --input banana.json`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSubmit(cmd); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	addRecordFlags(submitCmd, &submitInput)
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	validator, err := cue.NewLoadedValidator()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}

	r, err := readRecord(cmd, submitInput, validator, cfg.Strict)
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.SessionDir)
	entry, err := store.Save(r)
	if err != nil {
		return err
	}
	logger.Debug("record submitted", zap.String("id", entry.ID), zap.String("dir", store.Dir()))

	if !cfg.Quiet {
		fmt.Fprintf(stdout, "Record %s saved. Run 'bananaq results' to see the analysis.\n", entry.ID)
	}
	return nil
}
