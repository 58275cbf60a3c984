package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/bananaq/internal/chart"
	"github.com/dotcommander/bananaq/internal/scoring"
)

// ConsoleFormatter formats output for terminal display
type ConsoleFormatter struct {
	w       io.Writer
	quiet   bool
	verbose bool

	green  lipgloss.Style
	red    lipgloss.Style
	yellow lipgloss.Style
	dim    lipgloss.Style
	bold   lipgloss.Style
}

// NewConsoleFormatter creates a ConsoleFormatter writing to w. Styles degrade
// to plain text when w is not a terminal.
func NewConsoleFormatter(w io.Writer, quiet, verbose bool) *ConsoleFormatter {
	r := lipgloss.NewRenderer(w)
	return &ConsoleFormatter{
		w:       w,
		quiet:   quiet,
		verbose: verbose,
		green:   r.NewStyle().Foreground(lipgloss.Color("10")),
		red:     r.NewStyle().Foreground(lipgloss.Color("9")),
		yellow:  r.NewStyle().Foreground(lipgloss.Color("11")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
		bold:    r.NewStyle().Bold(true),
	}
}

// FormatAnalysis prints the quality card followed by the visual description,
// recommendations, parameter breakdown and yield comparison. Quiet mode
// prints the quality line only.
func (f *ConsoleFormatter) FormatAnalysis(a *scoring.Analysis) error {
	f.printQuality(a)
	if f.quiet {
		return nil
	}

	fmt.Fprintf(f.w, "  %s\n", a.Visual.Description)

	f.printRecommendations(a.Recommendations)
	f.printParameters(a)
	f.printYield(a)
	return nil
}

func (f *ConsoleFormatter) printQuality(a *scoring.Analysis) {
	p := a.Prediction
	icon, style := "✓", f.green
	if !p.IsGood() {
		icon, style = "✗", f.red
	}
	fmt.Fprintf(f.w, "%s %s  %s\n",
		style.Render(icon),
		style.Bold(true).Render(p.Quality+" quality"),
		f.dim.Render(fmt.Sprintf("confidence %d%%  score %.1f", p.Confidence, p.Score)),
	)
}

func (f *ConsoleFormatter) printRecommendations(recs []string) {
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, f.bold.Render("Recommendations"))
	for _, r := range recs {
		fmt.Fprintf(f.w, "  • %s\n", r)
	}
}

func (f *ConsoleFormatter) printParameters(a *scoring.Analysis) {
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, f.bold.Render("Parameters"))

	nameWidth := 0
	for _, d := range a.Prediction.Details {
		nameWidth = max(nameWidth, len(d.Field.Label()))
	}

	for _, d := range a.Prediction.Details {
		status := f.green.Render("✓")
		if !d.InRange {
			status = f.yellow.Render("⚠")
		}
		line := fmt.Sprintf("  %-*s %6.2f  %s %5.1f%%", nameWidth, d.Field.Label(), d.Value, status, d.Percent())
		if f.verbose {
			line += f.dim.Render(fmt.Sprintf("  (%.4f of %.2f)", d.Points, d.MaxPoints))
		}
		fmt.Fprintln(f.w, line)
	}

	if f.verbose {
		fmt.Fprintf(f.w, "  %s\n", f.dim.Render("profile: "+a.Profile))
	}
}

func (f *ConsoleFormatter) printYield(a *scoring.Analysis) {
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "%s %s\n",
		f.bold.Render(fmt.Sprintf("Estimated yield %.2f t/ha", a.Yield.Yield)),
		f.dim.Render(fmt.Sprintf("(confidence %d%%)", a.Yield.Confidence)),
	)

	bars := chart.YieldComparison(a.Yield)
	limit := chart.Max(bars)
	for i, b := range bars {
		style := f.dim
		if i == 0 {
			style = f.yellow
		}
		fmt.Fprintf(f.w, "  %-10s %s %.2f\n", b.Name, style.Render(bar(b.Value, limit, barWidth)), b.Value)
	}
}
