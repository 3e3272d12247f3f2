package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with the live sensor
// readout and capture count.
func RenderStatusBar(width int, state string, headingDeg int, cardinal string, hasHeading, hasFix bool, lat, lon float64, photos int) string {
	var stateLabel string
	switch state {
	case "CAPTURING":
		stateLabel = StyleStateCapturing.Render("[CAPTURING]")
	case "READY":
		stateLabel = StyleStateReady.Render("[READY]")
	default:
		stateLabel = StyleStateBlocked.Render("[" + state + "]")
	}

	heading := "Heading: --"
	if hasHeading {
		heading = fmt.Sprintf("Heading: %3ddeg %-2s", headingDeg, cardinal)
	}
	fix := "Fix: --"
	if hasFix {
		fix = fmt.Sprintf("Fix: %.6f, %.6f", lat, lon)
	}

	info := fmt.Sprintf(" %s  %s  Photos: %d", heading, fix, photos)
	content := stateLabel + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleStatusBar.Width(width).Render(content + padding)
}
