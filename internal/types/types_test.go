package types

import (
	"testing"
)

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{FieldSize, "Size"},
		{FieldHarvestTime, "Harvest Time"},
		{FieldAcidity, "Acidity"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tt.field.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseField("HarvestTime"); err == nil {
		t.Error("ParseField accepted a non-canonical spelling")
	}
}

func TestRecordValueWith(t *testing.T) {
	var r Record
	for i, f := range Fields {
		r = r.With(f, float64(i+1))
	}
	for i, f := range Fields {
		if got := r.Value(f); got != float64(i+1) {
			t.Errorf("Value(%s) = %v, want %d", f, got, i+1)
		}
	}
	if r.Value("colour") != 0 {
		t.Error("unknown field should read as 0")
	}
	if m := r.Map(); len(m) != len(Fields) || m["harvestTime"] != 5.0 {
		t.Errorf("Map() = %v", m)
	}
}

func TestRange(t *testing.T) {
	r := Range{Min: -2.5, Max: 0.7}
	if !r.Contains(-2.5) || !r.Contains(0.7) || r.Contains(0.71) {
		t.Error("Contains must include both bounds only")
	}
	if got := r.Mid(); got < -0.9-1e-12 || got > -0.9+1e-12 {
		t.Errorf("Mid() = %v, want -0.9", got)
	}
	if got := r.Width(); got < 3.2-1e-12 || got > 3.2+1e-12 {
		t.Errorf("Width() = %v, want 3.2", got)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Field: "size", Message: "too big"}
	if e.Error() != "size: too big" {
		t.Errorf("Error() = %q", e.Error())
	}
	e.Field = ""
	if e.Error() != "too big" {
		t.Errorf("Error() = %q", e.Error())
	}
}
