package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the compass panel and info panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, compassPanel, infoPanel, statusBar string, width int) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, compassPanel, infoPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
