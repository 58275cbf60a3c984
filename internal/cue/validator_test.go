package cue

import (
	"strings"
	"testing"

	"github.com/dotcommander/bananaq/internal/types"
)

// TestNewValidator tests the Validator constructor
func TestNewValidator(t *testing.T) {
	v := NewValidator()
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
	if v.ctx == nil {
		t.Error("Validator.ctx is nil")
	}
	if len(v.schemas) != 0 {
		t.Errorf("Expected empty schemas map, got %d entries", len(v.schemas))
	}
}

// TestLoadSchemas tests loading embedded CUE schemas
func TestLoadSchemas(t *testing.T) {
	v := NewValidator()
	if err := v.LoadSchemas(); err != nil {
		t.Fatalf("LoadSchemas failed: %v", err)
	}

	for _, name := range []string{SchemaProfile, SchemaRecord} {
		if !v.HasSchema(name) {
			t.Errorf("Expected schema %q to be loaded", name)
		}
	}
}

func validProfileData() map[string]any {
	rng := func(lo, hi float64) map[string]any {
		return map[string]any{"min": lo, "max": hi}
	}
	return map[string]any{
		"name": "default",
		"ranges": map[string]any{
			"size":        rng(-2.5, 0.7),
			"weight":      rng(0.4, 3.5),
			"sweetness":   rng(0.3, 4.1),
			"softness":    rng(-2.7, -0.5),
			"harvestTime": rng(-2.2, 0.4),
			"ripeness":    rng(1.0, 4.0),
			"acidity":     rng(0.2, 2.8),
		},
		"importance": map[string]any{
			"size":        0.12,
			"weight":      0.15,
			"sweetness":   0.18,
			"softness":    0.15,
			"harvestTime": 0.10,
			"ripeness":    0.20,
			"acidity":     0.10,
		},
	}
}

func TestValidateProfile(t *testing.T) {
	v, err := NewLoadedValidator()
	if err != nil {
		t.Fatalf("NewLoadedValidator: %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantError bool
		wantField string
	}{
		{
			name:      "valid default profile",
			mutate:    func(map[string]any) {},
			wantError: false,
		},
		{
			name: "integer bounds accepted",
			mutate: func(d map[string]any) {
				d["ranges"].(map[string]any)["ripeness"] = map[string]any{"min": 1, "max": 4}
			},
			wantError: false,
		},
		{
			name: "inverted range",
			mutate: func(d map[string]any) {
				d["ranges"].(map[string]any)["size"] = map[string]any{"min": 1.0, "max": -1.0}
			},
			wantError: true,
			wantField: "ranges.size.max",
		},
		{
			name: "negative importance",
			mutate: func(d map[string]any) {
				d["importance"].(map[string]any)["acidity"] = -0.1
			},
			wantError: true,
			wantField: "importance.acidity",
		},
		{
			name: "importance above one",
			mutate: func(d map[string]any) {
				d["importance"].(map[string]any)["weight"] = 1.5
			},
			wantError: true,
			wantField: "importance.weight",
		},
		{
			name: "missing field range",
			mutate: func(d map[string]any) {
				delete(d["ranges"].(map[string]any), "ripeness")
			},
			wantError: true,
		},
		{
			name: "unknown field",
			mutate: func(d map[string]any) {
				d["importance"].(map[string]any)["colour"] = 0.1
			},
			wantError: true,
		},
		{
			name: "empty name",
			mutate: func(d map[string]any) {
				d["name"] = ""
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validProfileData()
			tt.mutate(data)

			errs, err := v.ValidateProfile(data)
			if err != nil {
				t.Fatalf("ValidateProfile returned error: %v", err)
			}
			if hasErrors := len(errs) > 0; hasErrors != tt.wantError {
				t.Fatalf("ValidateProfile() errors = %v, wantError %v", errs, tt.wantError)
			}
			for _, e := range errs {
				if e.Severity != types.SeverityError {
					t.Errorf("Severity = %q, want %q", e.Severity, types.SeverityError)
				}
				if e.Source != types.SourceProfileSchema {
					t.Errorf("Source = %q, want %q", e.Source, types.SourceProfileSchema)
				}
			}
			if tt.wantField != "" {
				found := false
				for _, e := range errs {
					if strings.Contains(e.Field, tt.wantField) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected an error on %q, got %v", tt.wantField, errs)
				}
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	v, err := NewLoadedValidator()
	if err != nil {
		t.Fatalf("NewLoadedValidator: %v", err)
	}

	tests := []struct {
		name       string
		record     types.Record
		wantFields []string
	}{
		{
			name:   "form defaults within bounds",
			record: types.Record{Size: 0, Weight: 1.5, Sweetness: 2, Softness: -1.5, HarvestTime: -0.5, Ripeness: 2, Acidity: 1},
		},
		{
			name:   "slider edges are inclusive",
			record: types.Record{Size: -3, Weight: 4, Sweetness: 5, Softness: 3, HarvestTime: -3, Ripeness: 0, Acidity: 5},
		},
		{
			name:       "size above slider",
			record:     types.Record{Size: 3.5, Weight: 1.5, Sweetness: 2, Softness: -1.5, HarvestTime: -0.5, Ripeness: 2, Acidity: 1},
			wantFields: []string{"size"},
		},
		{
			name:       "weight and acidity below slider",
			record:     types.Record{Size: 0, Weight: -0.2, Sweetness: 2, Softness: -1.5, HarvestTime: -0.5, Ripeness: 2, Acidity: -1},
			wantFields: []string{"acidity", "weight"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.ValidateRecord(tt.record.Map())
			if err != nil {
				t.Fatalf("ValidateRecord returned error: %v", err)
			}
			if len(tt.wantFields) == 0 {
				if len(errs) != 0 {
					t.Errorf("expected no warnings, got %v", errs)
				}
				return
			}
			for _, want := range tt.wantFields {
				found := false
				for _, e := range errs {
					if strings.Contains(e.Field, want) {
						found = true
						if e.Severity != types.SeverityWarning {
							t.Errorf("Severity = %q, want warning", e.Severity)
						}
					}
				}
				if !found {
					t.Errorf("expected a warning on %q, got %v", want, errs)
				}
			}
		})
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"#Record", "size"}, "size"},
		{[]string{"ranges", "size", "max"}, "ranges.size.max"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := fieldPath(tt.in); got != tt.want {
			t.Errorf("fieldPath(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateRecordReportsEveryField(t *testing.T) {
	v, err := NewLoadedValidator()
	if err != nil {
		t.Fatalf("NewLoadedValidator: %v", err)
	}

	r := types.Record{Size: -4, Weight: 9, Sweetness: 2, Softness: -1.5, HarvestTime: -0.5, Ripeness: 9, Acidity: -1}
	errs, err := v.ValidateRecord(r.Map())
	if err != nil {
		t.Fatalf("ValidateRecord returned error: %v", err)
	}

	want := []string{"acidity", "ripeness", "size", "weight"}
	if len(errs) != len(want) {
		t.Fatalf("got %d warnings %v, want one per field %v", len(errs), errs, want)
	}
	for i, f := range want {
		if errs[i].Field != f {
			t.Errorf("warning %d on %q, want %q", i, errs[i].Field, f)
		}
	}
}

func TestValidateProfileReportsEveryViolation(t *testing.T) {
	v, err := NewLoadedValidator()
	if err != nil {
		t.Fatalf("NewLoadedValidator: %v", err)
	}

	data := validProfileData()
	data["ranges"].(map[string]any)["size"] = map[string]any{"min": 1.0, "max": -1.0}
	data["importance"].(map[string]any)["acidity"] = -0.1
	data["importance"].(map[string]any)["weight"] = 1.5

	errs, err := v.ValidateProfile(data)
	if err != nil {
		t.Fatalf("ValidateProfile returned error: %v", err)
	}
	for _, want := range []string{"ranges.size.max", "importance.acidity", "importance.weight"} {
		found := false
		for _, e := range errs {
			if e.Field == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected an error on %q, got %v", want, errs)
		}
	}
}
