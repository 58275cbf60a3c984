package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/session"
)

var resultsClear bool

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Analyze the submitted record",
	Long: `Results analyzes the record stored by 'bananaq submit' and prints the same
report as 'bananaq predict'. It fails when nothing has been submitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runResults(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	resultsCmd.Flags().BoolVar(&resultsClear, "clear", false, "Remove the submitted record after showing it")
	rootCmd.AddCommand(resultsCmd)
}

func runResults() error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	store := session.NewStore(cfg.SessionDir)
	entry, err := store.Load()
	if err != nil {
		return err
	}
	logger.Debug("session loaded", zap.String("id", entry.ID), zap.Time("created_at", entry.CreatedAt))

	validator, err := cue.NewLoadedValidator()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}

	if err := analyze(cfg, validator, entry.Record); err != nil {
		return err
	}

	if resultsClear {
		return store.Clear()
	}
	return nil
}
