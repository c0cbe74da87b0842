package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutMetaWidth is the minimum width to show author and date columns.
	LayoutMetaWidth = 120
)

// Activity view limits.
const (
	// ActivityFetchLimit is the number of log records read from the tail.
	ActivityFetchLimit = 500

	// ActivityRefreshInterval is how often the activity view re-reads the log.
	ActivityRefreshInterval = 2 * time.Second
)

// Timing constants.
const (
	// ToastDuration is how long an error or success toast stays visible.
	ToastDuration = 4 * time.Second

	// chromeHeight is the header, command bar and status line.
	chromeHeight = 3
)

// contentHeight returns the rows available to the active view.
func (m Model) contentHeight() int {
	return maxInt(m.height-chromeHeight, 3)
}

// renderBox draws a bordered panel with the title embedded in the top border.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	bgColor := m.theme.SurfaceAlt
	if focused {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)

	inner := maxInt(width-2, 1)
	label := ""
	if title != "" {
		label = " " + truncate(title, maxInt(inner-2, 1)) + " "
	}
	fill := maxInt(inner-lipgloss.Width(label), 0)
	top := border.Render("╭") + titleStyle.Render(label) + border.Render(strings.Repeat("─", fill)+"╮")

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(bgColor)).
		Width(inner).
		Height(maxInt(height-2, 1)).
		MaxHeight(maxInt(height-1, 1)).
		Render(content)

	return top + "\n" + body
}
