package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// printCelebration shows a sparkle animation for a perfect batch run. Writers
// that are not terminals get the final frame only.
func printCelebration(w io.Writer, msg string) {
	r := lipgloss.NewRenderer(w)
	green := r.NewStyle().Foreground(lipgloss.Color("10"))
	bold := r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	yellow := r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	if !isTTY(w) {
		fmt.Fprintln(w, green.Render(msg))
		return
	}

	frames := []struct {
		text  string
		delay time.Duration
	}{
		{green.Render(msg), 200 * time.Millisecond},
		{yellow.Render("✨ " + msg + " ✨"), 300 * time.Millisecond},
		{bold.Render("🍌 " + msg + " 🍌"), 400 * time.Millisecond},
		{yellow.Render("✨ " + msg + " ✨"), 300 * time.Millisecond},
		{green.Render(msg), 0},
	}

	for i, frame := range frames {
		if i > 0 {
			fmt.Fprint(w, "\r\033[K")
		}
		fmt.Fprint(w, frame.text)
		if frame.delay > 0 {
			time.Sleep(frame.delay)
		}
	}
	fmt.Fprintln(w)
}

// isTTY reports whether w is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
