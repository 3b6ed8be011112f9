package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hrs := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hrs, mins)
}

// FormatDuration formats a duration for summaries
func FormatDuration(d time.Duration) string {
	return formatDuration(d)
}

// FormatCount formats a count with thousands separators
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// Section prints a section header.
func (u *UI) Section(title string) {
	if !u.shouldStyle() {
		fmt.Fprintf(u.Out, "\n%s\n", title)
		return
	}

	fmt.Fprintf(u.Out, "\n%s\n", lipgloss.NewStyle().Bold(true).Render(title))
}
