package cue

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/dotcommander/bananaq/internal/types"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Schema names, matching the embedded file base names.
const (
	SchemaProfile = "profile"
	SchemaRecord  = "record"
)

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// NewLoadedValidator creates a Validator with every embedded schema compiled.
func NewLoadedValidator() (*Validator, error) {
	v := NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadSchemas loads all CUE schema files from the embedded filesystem
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}

		// profile.cue -> profile
		schemaName := strings.TrimSuffix(entry.Name(), ".cue")
		v.schemas[schemaName] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}

	return nil
}

// HasSchema reports whether the named schema was loaded.
func (v *Validator) HasSchema(name string) bool {
	_, ok := v.schemas[name]
	return ok
}

// ValidateProfile validates weight profile data against the #Profile definition.
func (v *Validator) ValidateProfile(data map[string]any) ([]types.ValidationError, error) {
	schema, ok := v.schemas[SchemaProfile]
	if !ok {
		return nil, nil
	}
	return v.validateAgainstSchema(schema, data, SchemaProfile, types.SeverityError, types.SourceProfileSchema)
}

// ValidateRecord checks a record against the form slider bounds. Violations
// are warnings: the scoring engine accepts any real value.
func (v *Validator) ValidateRecord(data map[string]any) ([]types.ValidationError, error) {
	schema, ok := v.schemas[SchemaRecord]
	if !ok {
		return nil, nil
	}
	return v.validateAgainstSchema(schema, data, SchemaRecord, types.SeverityWarning, types.SourceFormBounds)
}

// validateAgainstSchema validates data against a CUE schema
func (v *Validator) validateAgainstSchema(schema cue.Value, data map[string]any, schemaType, severity, source string) ([]types.ValidationError, error) {
	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("error encoding data: %w", encErr)
	}

	// profile -> #Profile
	defPath := cue.ParsePath("#" + strings.ToUpper(schemaType[:1]) + schemaType[1:])
	def := schema.LookupPath(defPath)
	if !def.Exists() {
		return nil, fmt.Errorf("schema %s has no definition %s", schemaType, defPath)
	}

	// Validate walks the whole value so every conflict is reported, and
	// concreteness catches missing required fields.
	unified := def.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrors(err, severity, source), nil
	}

	return nil, nil
}

// extractErrors flattens a CUE error into one ValidationError per path.
func extractErrors(err error, severity, source string) []types.ValidationError {
	seen := make(map[string]bool)
	var out []types.ValidationError

	for _, e := range cueerrors.Errors(err) {
		field := fieldPath(e.Path())
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		key := field + "|" + msg
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, types.ValidationError{
			Field:    field,
			Message:  msg,
			Severity: severity,
			Source:   source,
		})
	}

	if len(out) == 0 {
		out = append(out, types.ValidationError{
			Message:  fmt.Sprintf("schema validation failed: %v", err),
			Severity: severity,
			Source:   source,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Field < out[j].Field
	})
	return out
}

// fieldPath joins an error path, dropping definition selectors such as
// #Record so paths name data fields only.
func fieldPath(p []string) string {
	parts := make([]string, 0, len(p))
	for _, elem := range p {
		if strings.HasPrefix(elem, "#") {
			continue
		}
		parts = append(parts, elem)
	}
	return strings.Join(parts, ".")
}
