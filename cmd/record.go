package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/form"
	"github.com/dotcommander/bananaq/internal/types"
)

// addRecordFlags registers one flag per field, defaulting to the form values,
// plus --input for reading a record file.
func addRecordFlags(cmd *cobra.Command, input *string) {
	defaults := form.Defaults()
	for _, f := range types.Fields {
		cmd.Flags().Float64(string(f), defaults.Value(f), form.FlagUsage(f))
	}
	cmd.Flags().StringVarP(input, "input", "i", "", "Read the record from a YAML or JSON file; field flags override its values")
}

// readRecord builds the record from the input file (or the form defaults)
// and any field flags set on the command line, then checks it against the
// form bounds. Bound issues are printed as warnings; with strict they fail.
func readRecord(cmd *cobra.Command, input string, validator *cue.Validator, strict bool) (types.Record, error) {
	r := form.Defaults()
	if input != "" {
		loaded, err := form.LoadRecord(input)
		if err != nil {
			return types.Record{}, fmt.Errorf("error loading record %s: %w", input, err)
		}
		r = loaded
	}

	for _, f := range types.Fields {
		flag := cmd.Flags().Lookup(string(f))
		if flag == nil || !flag.Changed {
			continue
		}
		v, err := cmd.Flags().GetFloat64(string(f))
		if err != nil {
			return types.Record{}, fmt.Errorf("error reading --%s: %w", f, err)
		}
		r = r.With(f, v)
	}

	issues, err := form.Check(r, validator, strict)
	if err != nil {
		return types.Record{}, err
	}
	for _, issue := range issues {
		fmt.Fprintf(stderr, "%s: %s\n", severityLabel(issue.Severity), issue.Error())
	}
	if form.HasErrors(issues) {
		return types.Record{}, fmt.Errorf("record has %d %s outside the form bounds", len(issues), pluralize("value", len(issues)))
	}

	logger.Debug("record read", zap.String("input", input), zap.Any("record", r))
	return r, nil
}

func severityLabel(severity string) string {
	if severity == types.SeverityError {
		return "Error"
	}
	return "Warning"
}

func pluralize(s string, n int) string {
	if n == 1 {
		return s
	}
	return s + "s"
}
