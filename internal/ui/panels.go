package ui

import (
	"fmt"
	"strings"
	"time"

	"anglecam/internal/config"
	"anglecam/internal/sensor"
)

// RenderCompassPanel wraps the compass rose with a styled border and
// the numeric heading under it.
func RenderCompassPanel(width, height int, headingDeg int, cardinal string, hasHeading bool, smoothedDeg float64) string {
	innerW := width - 4
	innerH := height - 5
	if innerW < 9 {
		innerW = 9
	}
	if innerH < 5 {
		innerH = 5
	}

	rose := RenderCompass(innerW, innerH, smoothedDeg, hasHeading)

	caption := StyleLabel.Render("bearing ")
	if hasHeading {
		caption += StyleValue.Render(fmt.Sprintf("%3d", headingDeg)) +
			StyleLabel.Render("deg ") +
			StyleValue.Render(cardinal)
	} else {
		caption += StyleStateBlocked.Render("compass unavailable")
	}

	content := rose + "\n\n " + caption
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// RenderInfoPanel shows the current fix, capture results and transient
// notices.
func RenderInfoPanel(width, height int, snap sensor.Snapshot, source, lastPhoto string, photos int, notices []string) string {
	var lines []string

	lines = append(lines, StylePanelTitle.Render("CAPTURE"))
	lines = append(lines, "")

	if snap.HasFix {
		lines = append(lines,
			" "+StyleLabel.Render("latitude   ")+StyleValue.Render(fmt.Sprintf("%.6f", snap.Latitude)),
			" "+StyleLabel.Render("longitude  ")+StyleValue.Render(fmt.Sprintf("%.6f", snap.Longitude)),
			" "+StyleLabel.Render("fix age    ")+fixAge(snap.FixAt),
		)
	} else {
		lines = append(lines, " "+StyleStateBlocked.Render("waiting for location fix..."))
	}

	lines = append(lines, " "+StyleLabel.Render("source     ")+StyleValueDim.Render(source))
	lines = append(lines, "")
	lines = append(lines, " "+StyleLabel.Render("photos     ")+StyleValue.Render(fmt.Sprintf("%d", photos)))

	if lastPhoto != "" {
		lines = append(lines, "")
		lines = append(lines, " "+StyleLabel.Render("last saved"))
		lines = append(lines, " "+StyleFilename.Render(truncate(lastPhoto, width-6)))
	}

	if len(notices) > 0 {
		lines = append(lines, "")
		for _, n := range notices {
			lines = append(lines, " "+StyleNotice.Render(truncate(n, width-6)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, " "+StyleHelp.Render("press C to capture"))

	content := strings.Join(lines, "\n")
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

func fixAge(at time.Time) string {
	age := time.Since(at)
	label := fmt.Sprintf("%.1fs", age.Seconds())
	if age > config.FixStaleAfter {
		return StyleStateBlocked.Render(label + " (stale)")
	}
	return StyleValue.Render(label)
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
