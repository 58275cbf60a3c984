// Package types provides shared types used across the bananaq codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

import (
	"fmt"
	"strings"
)

// Field names one of the seven normalized banana measurements.
type Field string

// Field constants, named as they appear in record and profile files.
const (
	FieldSize        Field = "size"
	FieldWeight      Field = "weight"
	FieldSweetness   Field = "sweetness"
	FieldSoftness    Field = "softness"
	FieldHarvestTime Field = "harvestTime"
	FieldRipeness    Field = "ripeness"
	FieldAcidity     Field = "acidity"
)

// Fields lists every field in canonical order. Scoring, recommendations and
// dataset columns all follow this order.
var Fields = []Field{
	FieldSize,
	FieldWeight,
	FieldSweetness,
	FieldSoftness,
	FieldHarvestTime,
	FieldRipeness,
	FieldAcidity,
}

// Label returns the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldHarvestTime:
		return "Harvest Time"
	case "":
		return ""
	default:
		s := string(f)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ParseField resolves a field name, accepting the canonical spelling only.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Record is one set of banana measurements. Values are unitless and roughly
// zero-centered; no range is enforced.
type Record struct {
	Size        float64 `json:"size" yaml:"size" mapstructure:"size"`
	Weight      float64 `json:"weight" yaml:"weight" mapstructure:"weight"`
	Sweetness   float64 `json:"sweetness" yaml:"sweetness" mapstructure:"sweetness"`
	Softness    float64 `json:"softness" yaml:"softness" mapstructure:"softness"`
	HarvestTime float64 `json:"harvestTime" yaml:"harvestTime" mapstructure:"harvestTime"`
	Ripeness    float64 `json:"ripeness" yaml:"ripeness" mapstructure:"ripeness"`
	Acidity     float64 `json:"acidity" yaml:"acidity" mapstructure:"acidity"`
}

// Value returns the measurement for f. Unknown fields return 0.
func (r Record) Value(f Field) float64 {
	switch f {
	case FieldSize:
		return r.Size
	case FieldWeight:
		return r.Weight
	case FieldSweetness:
		return r.Sweetness
	case FieldSoftness:
		return r.Softness
	case FieldHarvestTime:
		return r.HarvestTime
	case FieldRipeness:
		return r.Ripeness
	case FieldAcidity:
		return r.Acidity
	}
	return 0
}

// With returns a copy of r with f set to v.
func (r Record) With(f Field, v float64) Record {
	switch f {
	case FieldSize:
		r.Size = v
	case FieldWeight:
		r.Weight = v
	case FieldSweetness:
		r.Sweetness = v
	case FieldSoftness:
		r.Softness = v
	case FieldHarvestTime:
		r.HarvestTime = v
	case FieldRipeness:
		r.Ripeness = v
	case FieldAcidity:
		r.Acidity = v
	}
	return r
}

// Map returns the record keyed by field name, for schema validation.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(Fields))
	for _, f := range Fields {
		m[string(f)] = r.Value(f)
	}
	return m
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies within the interval, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid returns the interval midpoint.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Quality labels.
const (
	QualityGood = "Good"
	QualityBad  = "Bad"
)

// ValidationError represents a validation error or warning.
type ValidationError struct {
	Field    string
	Message  string
	Severity string // error, warning
	Source   string // profile-schema, form-bounds
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation source constants.
const (
	SourceProfileSchema = "profile-schema"
	SourceFormBounds    = "form-bounds"
)

// Severity level constants.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)
