package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a dialog drawn over the main view. Update returns the updated
// modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question and runs onYes on confirmation.
type confirmModal struct {
	title  string
	prompt string
	onYes  tea.Cmd
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Confirm), km.String() == "y", km.String() == "Y":
		return c, c.onYes, true
	case key.Matches(km, keys.Escape), km.String() == "n", km.String() == "N":
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.Surface)
	bg := NewBgStyle(theme.Surface)
	inner := min(maxInt(lenRunes(c.prompt)+4, 40), maxInt(width-6, 20))

	lines := []string{
		bg.FillLine(bg.Render(truncate(c.prompt, inner), styles.Text), inner),
		bg.FillLine("", inner),
		bg.FillLine(bg.Hints(styles, "y", "confirm", "n", "cancel"), inner),
	}
	return placeModal(theme, c.title, strings.Join(lines, "\n"), theme.Danger, width, height)
}

// placeModal draws content in a bordered box centered over the screen.
func placeModal(theme Theme, title, content, borderColor string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Surface)).
		Padding(0, 1).
		Render(content)

	styles := theme.Styles().WithBackground(theme.Background)
	heading := styles.AccentText.Bold(true).Render(" " + title + " ")
	framed := lipgloss.JoinVertical(lipgloss.Center, heading, box)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, framed,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Background)))
}
