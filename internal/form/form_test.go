package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/types"
)

func TestDefaultsWithinBounds(t *testing.T) {
	d := Defaults()
	for _, f := range types.Fields {
		b, ok := Bounds[f]
		require.True(t, ok, "missing bounds for %s", f)
		assert.True(t, b.Contains(d.Value(f)), "default %s=%v outside %v", f, d.Value(f), b)
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Record
		wantErr string
	}{
		{
			name:  "yaml overrides defaults",
			input: "size: -1.2\nripeness: 3\n",
			want:  Defaults().With(types.FieldSize, -1.2).With(types.FieldRipeness, 3),
		},
		{
			name:  "json full record",
			input: `{"size": 0.5, "weight": 2, "sweetness": 1, "softness": -1, "harvestTime": 0, "ripeness": 2.5, "acidity": 1.5}`,
			want:  types.Record{Size: 0.5, Weight: 2, Sweetness: 1, Softness: -1, HarvestTime: 0, Ripeness: 2.5, Acidity: 1.5},
		},
		{
			name:  "empty document keeps defaults",
			input: "",
			want:  Defaults(),
		},
		{
			name:    "unknown field",
			input:   "colour: 2\n",
			wantErr: "unknown field",
		},
		{
			name:    "non numeric value",
			input:   "size: big\n",
			wantErr: "size must be a number",
		},
		{
			name:    "malformed yaml",
			input:   "size: [1,\n",
			wantErr: "failed to parse record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte("acidity: 0.4\n"), 0644))

	got, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, got.Acidity)
	assert.Equal(t, Defaults().Weight, got.Weight)

	_, err = LoadRecord(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read record file")
}

func TestCheck(t *testing.T) {
	v, err := cue.NewLoadedValidator()
	require.NoError(t, err)

	outOfBounds := Defaults().With(types.FieldAcidity, 6).With(types.FieldSize, -4)

	for _, tc := range []struct {
		name      string
		validator *cue.Validator
	}{
		{"with schema", v},
		{"without schema", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			issues, err := Check(Defaults(), tc.validator, false)
			require.NoError(t, err)
			assert.Empty(t, issues)

			issues, err = Check(outOfBounds, tc.validator, false)
			require.NoError(t, err)
			require.NotEmpty(t, issues)
			assert.False(t, HasErrors(issues))
			fields := make(map[string]bool)
			for _, issue := range issues {
				assert.Equal(t, types.SeverityWarning, issue.Severity)
				assert.Equal(t, types.SourceFormBounds, issue.Source)
				fields[issue.Field] = true
			}
			assert.True(t, fields["acidity"], "acidity not reported: %v", issues)
			assert.True(t, fields["size"], "size not reported: %v", issues)

			issues, err = Check(outOfBounds, tc.validator, true)
			require.NoError(t, err)
			assert.True(t, HasErrors(issues))
		})
	}
}

func TestFlagUsage(t *testing.T) {
	assert.Equal(t, "Harvest Time (slider range -3 to 3, step 0.1)", FlagUsage(types.FieldHarvestTime))
	assert.Equal(t, "Acidity (slider range 0 to 5, step 0.1)", FlagUsage(types.FieldAcidity))
}
