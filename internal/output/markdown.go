package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dotcommander/bananaq/internal/batch"
	"github.com/dotcommander/bananaq/internal/chart"
	"github.com/dotcommander/bananaq/internal/scoring"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	w       io.Writer
	verbose bool
	now     func() time.Time
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(w io.Writer, verbose bool) *MarkdownFormatter {
	return &MarkdownFormatter{
		w:       w,
		verbose: verbose,
		now:     time.Now,
	}
}

// FormatAnalysis writes a report for one record.
func (f *MarkdownFormatter) FormatAnalysis(a *scoring.Analysis) error {
	var builder strings.Builder
	p := a.Prediction

	builder.WriteString("# Banana Quality Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", f.now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Profile:** %s\n\n", a.Profile))

	builder.WriteString("## Prediction\n\n")
	builder.WriteString(fmt.Sprintf("%s **%s** quality, %d%% confidence (score %.1f)\n\n",
		getStatusEmoji(p.IsGood()), p.Quality, p.Confidence, p.Score))
	builder.WriteString(a.Visual.Description + "\n\n")

	builder.WriteString("## Recommendations\n\n")
	for _, r := range a.Recommendations {
		builder.WriteString(fmt.Sprintf("- %s\n", r))
	}
	builder.WriteString("\n")

	builder.WriteString("## Parameters\n\n")
	if f.verbose {
		builder.WriteString("| Parameter | Value | In range | Score | Points |\n")
		builder.WriteString("|-----------|-------|----------|-------|--------|\n")
	} else {
		builder.WriteString("| Parameter | Value | In range | Score |\n")
		builder.WriteString("|-----------|-------|----------|-------|\n")
	}
	for _, d := range p.Details {
		builder.WriteString(fmt.Sprintf("| %s | %.2f | %s | %.1f%% |", d.Field.Label(), d.Value, yesNo(d.InRange), d.Percent()))
		if f.verbose {
			builder.WriteString(fmt.Sprintf(" %.4f / %.2f |", d.Points, d.MaxPoints))
		}
		builder.WriteString("\n")
	}
	builder.WriteString("\n")

	builder.WriteString("## Yield\n\n")
	builder.WriteString(fmt.Sprintf("Estimated **%.2f t/ha** (%d%% confidence)\n\n", a.Yield.Yield, a.Yield.Confidence))
	builder.WriteString("| Comparison | t/ha |\n")
	builder.WriteString("|------------|------|\n")
	for _, b := range chart.YieldComparison(a.Yield) {
		builder.WriteString(fmt.Sprintf("| %s | %.2f |\n", b.Name, b.Value))
	}

	return f.write(builder.String())
}

// FormatBatch writes a report for a batch run.
func (f *MarkdownFormatter) FormatBatch(s *batch.Summary) error {
	var builder strings.Builder
	t := s.Totals

	builder.WriteString("# Banana Quality Batch Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", f.now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Profile:** %s\n\n", s.Profile))
	builder.WriteString(fmt.Sprintf("**Duration:** %v\n\n", s.Duration.Round(time.Millisecond)))

	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Value |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Datasets | %d |\n", len(s.Files)))
	builder.WriteString(fmt.Sprintf("| Failed datasets | %d |\n", s.FailedFiles))
	builder.WriteString(fmt.Sprintf("| Records | %d |\n", t.Records))
	builder.WriteString(fmt.Sprintf("| Good | %d |\n", t.Good))
	builder.WriteString(fmt.Sprintf("| Bad | %d |\n", t.Bad))
	builder.WriteString(fmt.Sprintf("| Mean score | %.1f |\n", t.MeanScore))
	builder.WriteString(fmt.Sprintf("| Mean yield | %.2f |\n", t.MeanYield))
	if t.Labelled > 0 {
		builder.WriteString(fmt.Sprintf("| Label agreement | %.1f%% |\n", t.Agreement()))
	}
	builder.WriteString("\n")

	builder.WriteString("## Datasets\n\n")
	if len(s.Files) == 0 {
		builder.WriteString("*No datasets found.*\n")
		return f.write(builder.String())
	}

	builder.WriteString("| Dataset | Status | Records | Good | Bad | Mean score | Agreement |\n")
	builder.WriteString("|---------|--------|---------|------|-----|------------|-----------|\n")
	for _, r := range s.Files {
		agreement := "-"
		if r.Labelled > 0 {
			agreement = fmt.Sprintf("%.1f%%", r.Agreement())
		}
		builder.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %.1f | %s |\n",
			r.File, getStatusEmoji(!r.Failed()), r.Records, r.Good, r.Bad, r.MeanScore, agreement))
	}

	var failed []batch.FileResult
	for _, r := range s.Files {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		builder.WriteString("\n### Errors\n\n")
		for _, r := range failed {
			builder.WriteString(fmt.Sprintf("- **%s** - %s\n", r.File, r.Error))
		}
	}

	return f.write(builder.String())
}

func (f *MarkdownFormatter) write(content string) error {
	if _, err := io.WriteString(f.w, content); err != nil {
		return fmt.Errorf("error writing markdown: %w", err)
	}
	return nil
}

// getStatusEmoji returns an emoji for the status
func getStatusEmoji(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
