package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/bananaq/internal/batch"
	"github.com/dotcommander/bananaq/internal/chart"
	"github.com/dotcommander/bananaq/internal/scoring"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	w       io.Writer
	indent  bool
	version string
	now     func() time.Time
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(w io.Writer, indent bool, version string) *JSONFormatter {
	return &JSONFormatter{
		w:       w,
		indent:  indent,
		version: version,
		now:     time.Now,
	}
}

// FormatAnalysis writes the analysis with its chart series.
func (f *JSONFormatter) FormatAnalysis(a *scoring.Analysis) error {
	return f.write(JSONReport{
		Header: f.header(),
		Analysis: &JSONAnalysis{
			Analysis:          *a,
			YieldComparison:   chart.YieldComparison(a.Yield),
			ParameterAnalysis: chart.ParameterAnalysis(a.Prediction, a.Yield),
		},
	})
}

// FormatBatch writes the batch summary.
func (f *JSONFormatter) FormatBatch(s *batch.Summary) error {
	report := JSONReport{
		Header: f.header(),
		Batch: &JSONBatch{
			Profile:     s.Profile,
			Duration:    s.Duration.Round(time.Millisecond).String(),
			FailedFiles: s.FailedFiles,
			Totals:      jsonFileResult(s.Totals),
			Files:       make([]JSONFileResult, len(s.Files)),
		},
	}
	for i, r := range s.Files {
		report.Batch.Files[i] = jsonFileResult(r)
	}
	return f.write(report)
}

func (f *JSONFormatter) header() JSONHeader {
	return JSONHeader{
		Tool:      Tool,
		Version:   f.version,
		Timestamp: f.now().Format(time.RFC3339),
	}
}

func (f *JSONFormatter) write(report JSONReport) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(report, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if _, err := fmt.Fprintln(f.w, string(jsonBytes)); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}
	return nil
}

func jsonFileResult(r batch.FileResult) JSONFileResult {
	out := JSONFileResult{FileResult: r}
	if r.Labelled > 0 {
		agreement := r.Agreement()
		out.Agreement = &agreement
	}
	return out
}

// JSONReport represents the complete JSON report structure
type JSONReport struct {
	Header   JSONHeader    `json:"header"`
	Analysis *JSONAnalysis `json:"analysis,omitempty"`
	Batch    *JSONBatch    `json:"batch,omitempty"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONAnalysis is a single-record analysis plus its chart series
type JSONAnalysis struct {
	scoring.Analysis
	YieldComparison   []chart.Bar `json:"yield_comparison"`
	ParameterAnalysis []chart.Bar `json:"parameter_analysis"`
}

// JSONBatch contains the batch summary
type JSONBatch struct {
	Profile     string           `json:"profile"`
	Duration    string           `json:"duration"`
	FailedFiles int              `json:"failed_files"`
	Totals      JSONFileResult   `json:"totals"`
	Files       []JSONFileResult `json:"files"`
}

// JSONFileResult adds the agreement percentage, present only for labelled data
type JSONFileResult struct {
	batch.FileResult
	Agreement *float64 `json:"agreement,omitempty"`
}
