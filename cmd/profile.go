package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and check weight profiles",
	Long: `A weight profile holds the optimal range and importance of each field.
The built-in profile is used unless --profile names a YAML or JSON file.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active profile as YAML",
	Long: `Show prints the profile selected by --profile, or the built-in one, as YAML.
The output is a valid profile file and can be edited and passed back with
--profile.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProfileShow(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a profile file against the profile schema",
	Long: `Validate checks that every field has a range with min below max and an
importance between 0 and 1, reporting each violation.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProfileValidate(args[0]); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow() error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	validator, err := cue.NewLoadedValidator()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}

	p, err := loadProfile(cfg, validator)
	if err != nil {
		return err
	}

	out, err := p.Marshal()
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func runProfileValidate(path string) error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	validator, err := cue.NewLoadedValidator()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}

	p, err := profile.Load(path, validator)
	var schemaErr *profile.SchemaError
	if errors.As(err, &schemaErr) {
		fmt.Fprintf(stdout, "✗ %s\n", path)
		for _, issue := range schemaErr.Issues {
			fmt.Fprintf(stdout, "    ✘ %s\n", issue.Error())
		}
		return fmt.Errorf("%s: %d schema %s", path, len(schemaErr.Issues), pluralize("violation", len(schemaErr.Issues)))
	}
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(stdout, "✓ %s (profile %q, total importance %.2f)\n", path, p.Name(), p.TotalImportance())
		if d := p.Description(); d != "" && cfg.Verbose {
			fmt.Fprintf(stdout, "  %s\n", d)
		}
	}
	return nil
}
