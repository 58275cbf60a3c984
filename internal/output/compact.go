package output

import (
	"fmt"
	"strings"

	"github.com/dotcommander/bananaq/internal/batch"
)

// FormatBatch prints one aligned status line per dataset followed by the
// totals. Failed datasets list their error; quiet mode prints the totals only.
func (f *ConsoleFormatter) FormatBatch(s *batch.Summary) error {
	if !f.quiet {
		f.printFileLines(s)
	}
	f.printBatchSummary(s)
	return nil
}

// printFileLines prints the per-file table.
func (f *ConsoleFormatter) printFileLines(s *batch.Summary) {
	if len(s.Files) == 0 {
		fmt.Fprintln(f.w, f.dim.Render("No datasets found."))
		return
	}

	nameWidth, countWidth := columnWidths(s.Files)
	fmt.Fprintln(f.w)
	for _, r := range s.Files {
		padding := strings.Repeat(" ", nameWidth-len(r.File))
		if r.Failed() {
			fmt.Fprintf(f.w, "  %s %s%s  %s\n",
				f.red.Render("✗"), r.File, padding, f.red.Render(r.Error))
			continue
		}

		text := fmt.Sprintf("%*d %s  %d good  %d bad  mean score %.1f  mean yield %.2f",
			countWidth, r.Records, pluralizeCount("record", r.Records),
			r.Good, r.Bad, r.MeanScore, r.MeanYield)
		if r.Labelled > 0 {
			text += fmt.Sprintf("  agreement %.1f%%", r.Agreement())
		}
		fmt.Fprintf(f.w, "  %s %s%s  %s\n", f.green.Render("✓"), f.dim.Render(r.File), padding, text)
	}

	if f.verbose {
		fmt.Fprintf(f.w, "  %s\n", f.dim.Render("profile: "+s.Profile))
	}
}

// printBatchSummary prints the totals line, celebrating a run in which every
// labelled row agreed with the heuristic.
func (f *ConsoleFormatter) printBatchSummary(s *batch.Summary) {
	t := s.Totals
	text := fmt.Sprintf("%d %s, %d good, %d bad", t.Records, pluralizeCount("record", t.Records), t.Good, t.Bad)
	if t.Labelled > 0 {
		text += fmt.Sprintf(", %.1f%% agreement", t.Agreement())
	}
	if s.FailedFiles > 0 {
		text += fmt.Sprintf(", %d failed %s", s.FailedFiles, pluralizeCount("file", s.FailedFiles))
	}
	text += fmt.Sprintf(" (%s)", formatDuration(s.Duration))

	fmt.Fprintln(f.w)
	perfect := s.FailedFiles == 0 && t.Labelled > 0 && t.Agreements == t.Labelled
	switch {
	case perfect && !f.quiet:
		printCelebration(f.w, text)
	case s.FailedFiles > 0:
		fmt.Fprintln(f.w, f.red.Render(text))
	default:
		fmt.Fprintln(f.w, f.green.Render(text))
	}
}

// columnWidths computes the file name and record count column widths.
func columnWidths(files []batch.FileResult) (nameWidth, countWidth int) {
	for _, r := range files {
		nameWidth = max(nameWidth, len(r.File))
		countWidth = max(countWidth, len(fmt.Sprintf("%d", r.Records)))
	}
	return nameWidth, countWidth
}
