// Package form is the input side of bananaq: slider bounds, form defaults,
// and turning flags or record files into a types.Record.
package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/types"
)

// Step is the slider increment.
const Step = 0.1

// Bounds are the slider ranges of the input form. They mirror the #Record
// schema and bound what a user can enter, not what the engine accepts.
var Bounds = map[types.Field]types.Range{
	types.FieldSize:        {Min: -3, Max: 3},
	types.FieldWeight:      {Min: 0, Max: 4},
	types.FieldSweetness:   {Min: -3, Max: 5},
	types.FieldSoftness:    {Min: -3, Max: 3},
	types.FieldHarvestTime: {Min: -3, Max: 3},
	types.FieldRipeness:    {Min: 0, Max: 4},
	types.FieldAcidity:     {Min: 0, Max: 5},
}

// Defaults returns the values the form starts with.
func Defaults() types.Record {
	return types.Record{
		Size:        0,
		Weight:      1.5,
		Sweetness:   2.0,
		Softness:    -1.5,
		HarvestTime: -0.5,
		Ripeness:    2.0,
		Acidity:     1.0,
	}
}

// FlagUsage returns the help text for a field's command line flag.
func FlagUsage(f types.Field) string {
	b := Bounds[f]
	return fmt.Sprintf("%s (slider range %g to %g, step %g)", f.Label(), b.Min, b.Max, Step)
}

// LoadRecord reads a YAML or JSON record file. Fields missing from the file
// keep their form default.
func LoadRecord(path string) (types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Record{}, fmt.Errorf("failed to read record file: %w", err)
	}
	return ParseRecord(data)
}

// ParseRecord decodes a YAML or JSON record on top of the form defaults.
// Unknown keys are rejected.
func ParseRecord(data []byte) (types.Record, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return types.Record{}, fmt.Errorf("failed to parse record: %w", err)
	}

	r := Defaults()
	for key, val := range raw {
		f, err := types.ParseField(key)
		if err != nil {
			return types.Record{}, fmt.Errorf("failed to parse record: %w", err)
		}
		v, ok := toFloat(val)
		if !ok {
			return types.Record{}, fmt.Errorf("failed to parse record: %s must be a number, got %v", key, val)
		}
		r = r.With(f, v)
	}
	return r, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Check reports record fields outside the slider bounds. The issues are
// warnings unless strict is set, in which case they are errors.
func Check(r types.Record, v *cue.Validator, strict bool) ([]types.ValidationError, error) {
	var issues []types.ValidationError
	if v != nil {
		found, err := v.ValidateRecord(r.Map())
		if err != nil {
			return nil, fmt.Errorf("failed to validate record: %w", err)
		}
		issues = found
	} else {
		issues = checkBounds(r)
	}

	if strict {
		for i := range issues {
			issues[i].Severity = types.SeverityError
		}
	}
	return issues, nil
}

// checkBounds is the schema-free bound check.
func checkBounds(r types.Record) []types.ValidationError {
	var issues []types.ValidationError
	for _, f := range types.Fields {
		b := Bounds[f]
		if v := r.Value(f); !b.Contains(v) {
			issues = append(issues, types.ValidationError{
				Field:    string(f),
				Message:  fmt.Sprintf("%g is outside the form range [%g, %g]", v, b.Min, b.Max),
				Severity: types.SeverityWarning,
				Source:   types.SourceFormBounds,
			})
		}
	}
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []types.ValidationError) bool {
	for _, issue := range issues {
		if issue.Severity == types.SeverityError {
			return true
		}
	}
	return false
}
