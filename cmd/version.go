package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bananaq version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "bananaq %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
