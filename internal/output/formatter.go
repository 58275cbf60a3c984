// Package output renders engine analyses and batch summaries as console text,
// JSON or Markdown.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dotcommander/bananaq/internal/batch"
	"github.com/dotcommander/bananaq/internal/scoring"
)

// Formatter renders results to the writer it was built with.
type Formatter interface {
	FormatAnalysis(a *scoring.Analysis) error
	FormatBatch(s *batch.Summary) error
}

// Tool is the name reported in report headers.
const Tool = "bananaq"

const barWidth = 30

// bar draws value as a run of blocks scaled against limit.
func bar(value, limit float64, width int) string {
	if limit <= 0 || value <= 0 {
		return ""
	}
	n := int(value / limit * float64(width))
	n = min(max(n, 1), width)
	return strings.Repeat("█", n)
}

// pluralizeCount returns singular or plural form based on count.
func pluralizeCount(s string, count int) string {
	if count == 1 {
		return s
	}
	return s + "s"
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
