package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/snb-labs/dit/internal/event"
	"github.com/snb-labs/dit/internal/stats"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Bar renders a #/- progress bar of the given width.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

// VerdictLine renders the final verify summary from a VerifyDone event,
// colored when writing to a terminal.
func VerdictLine(ev event.Event, color bool) string {
	if ev.Mismatches == 0 {
		line := fmt.Sprintf("[VERIFY] PASSED - all %s match the pattern", stats.FormatMB(ev.Bytes))
		if color {
			return passStyle.Render(line)
		}
		return line
	}
	line := fmt.Sprintf("[VERIFY] FAILED - %d mismatch(es) found", ev.Mismatches)
	if color {
		return failStyle.Render(line)
	}
	return line
}
