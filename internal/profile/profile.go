// Package profile holds the optimal ranges and feature importances the
// scoring engine measures a record against. A Profile is immutable once built.
package profile

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/types"
)

// DefaultName is the name of the built-in profile.
const DefaultName = "default"

// Profile is an immutable set of per-field optimal ranges and importance
// weights. Construct one with New, Default or Load.
type Profile struct {
	name        string
	description string
	ranges      map[types.Field]types.Range
	importance  map[types.Field]float64
}

// defaultRanges are the intervals considered ideal for each field.
var defaultRanges = map[types.Field]types.Range{
	types.FieldSize:        {Min: -2.5, Max: 0.7},
	types.FieldWeight:      {Min: 0.4, Max: 3.5},
	types.FieldSweetness:   {Min: 0.3, Max: 4.1},
	types.FieldSoftness:    {Min: -2.7, Max: -0.5},
	types.FieldHarvestTime: {Min: -2.2, Max: 0.4},
	types.FieldRipeness:    {Min: 1.0, Max: 4.0},
	types.FieldAcidity:     {Min: 0.2, Max: 2.8},
}

// defaultImportance weights typical banana quality factors.
var defaultImportance = map[types.Field]float64{
	types.FieldSize:        0.12,
	types.FieldWeight:      0.15,
	types.FieldSweetness:   0.18,
	types.FieldSoftness:    0.15,
	types.FieldHarvestTime: 0.10,
	types.FieldRipeness:    0.20,
	types.FieldAcidity:     0.10,
}

// Default returns the built-in profile.
func Default() *Profile {
	p, err := New(DefaultName, defaultRanges, defaultImportance)
	if err != nil {
		panic(fmt.Sprintf("built-in profile is invalid: %v", err))
	}
	p.description = "Ranges and weights derived from the reference banana quality dataset"
	return p
}

// New validates and copies ranges and importance into a Profile. Every field
// needs a range with Min < Max and an importance in [0,1]; the importances
// must not all be zero.
func New(name string, ranges map[types.Field]types.Range, importance map[types.Field]float64) (*Profile, error) {
	if name == "" {
		name = "custom"
	}
	p := &Profile{
		name:       name,
		ranges:     make(map[types.Field]types.Range, len(types.Fields)),
		importance: make(map[types.Field]float64, len(types.Fields)),
	}

	var total float64
	for _, f := range types.Fields {
		r, ok := ranges[f]
		if !ok {
			return nil, fmt.Errorf("profile %s: missing range for %s", name, f)
		}
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || !(r.Min < r.Max) {
			return nil, fmt.Errorf("profile %s: range for %s must satisfy min < max, got [%g, %g]", name, f, r.Min, r.Max)
		}
		w, ok := importance[f]
		if !ok {
			return nil, fmt.Errorf("profile %s: missing importance for %s", name, f)
		}
		if math.IsNaN(w) || w < 0 || w > 1 {
			return nil, fmt.Errorf("profile %s: importance for %s must be in [0,1], got %g", name, f, w)
		}
		p.ranges[f] = r
		p.importance[f] = w
		total += w
	}

	for f := range ranges {
		if _, err := types.ParseField(string(f)); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}

	if total <= 0 {
		return nil, fmt.Errorf("profile %s: importances sum to zero", name)
	}

	return p, nil
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Description returns the optional profile description.
func (p *Profile) Description() string { return p.description }

// Range returns the optimal interval for f.
func (p *Profile) Range(f types.Field) types.Range { return p.ranges[f] }

// Importance returns the weight of f.
func (p *Profile) Importance(f types.Field) float64 { return p.importance[f] }

// TotalImportance sums the weights. It need not be 1.
func (p *Profile) TotalImportance() float64 {
	var total float64
	for _, f := range types.Fields {
		total += p.importance[f]
	}
	return total
}

// file is the on-disk shape of a profile.
type file struct {
	Name        string                 `yaml:"name,omitempty" json:"name,omitempty"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Ranges      map[string]types.Range `yaml:"ranges" json:"ranges"`
	Importance  map[string]float64     `yaml:"importance" json:"importance"`
}

// Load reads a YAML or JSON profile, checks it against the #Profile schema and
// builds it. A nil validator skips the schema check.
func Load(path string, v *cue.Validator) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data, v)
}

// Parse builds a profile from YAML or JSON bytes.
func Parse(data []byte, v *cue.Validator) (*Profile, error) {
	if v != nil {
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse profile: %w", err)
		}
		issues, err := v.ValidateProfile(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to validate profile: %w", err)
		}
		if len(issues) > 0 {
			return nil, &SchemaError{Issues: issues}
		}
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	ranges := make(map[types.Field]types.Range, len(f.Ranges))
	for k, r := range f.Ranges {
		ranges[types.Field(k)] = r
	}
	importance := make(map[types.Field]float64, len(f.Importance))
	for k, w := range f.Importance {
		importance[types.Field(k)] = w
	}

	p, err := New(f.Name, ranges, importance)
	if err != nil {
		return nil, err
	}
	p.description = f.Description
	return p, nil
}

// Marshal renders the profile as YAML with fields in canonical order.
func (p *Profile) Marshal() ([]byte, error) {
	ranges := &yaml.Node{Kind: yaml.MappingNode}
	importance := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range types.Fields {
		r := p.ranges[f]
		rangeNode := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		rangeNode.Content = append(rangeNode.Content,
			scalar("min"), number(r.Min),
			scalar("max"), number(r.Max),
		)
		ranges.Content = append(ranges.Content, scalar(string(f)), rangeNode)
		importance.Content = append(importance.Content, scalar(string(f)), number(p.importance[f]))
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, scalar("name"), scalar(p.name))
	if p.description != "" {
		root.Content = append(root.Content, scalar("description"), scalar(p.description))
	}
	root.Content = append(root.Content,
		scalar("ranges"), ranges,
		scalar("importance"), importance,
	)

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return out, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func number(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// SchemaError reports the schema violations of a rejected profile.
type SchemaError struct {
	Issues []types.ValidationError
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 1 {
		return "profile failed schema validation: " + e.Issues[0].Error()
	}
	return fmt.Sprintf("profile failed schema validation: %s (and %d more)", e.Issues[0].Error(), len(e.Issues)-1)
}
