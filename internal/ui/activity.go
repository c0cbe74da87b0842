package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/logtail"
)

func (m *Model) initActivityViewport() {
	m.activityViewport = viewport.New(maxInt(m.width-4, 1), maxInt(m.contentHeight()-2, 1))
}

// updateActivityViewport re-renders the log tail into the viewport.
func (m *Model) updateActivityViewport() {
	if !m.ready {
		return
	}
	m.activityViewport.Width = maxInt(m.width-4, 1)
	m.activityViewport.Height = maxInt(m.contentHeight()-2, 1)
	m.activityViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.activityViewport.SetContent(m.renderActivityContent())
	if m.activity.follow {
		m.activityViewport.GotoBottom()
	}
}

// renderActivity renders the activity view.
func (m Model) renderActivity() string {
	title := fmt.Sprintf("Activity (%d)", len(m.activity.entries))
	if m.activity.follow {
		title += "  following"
	}
	return m.renderBox(title, m.activityViewport.View(), m.width, m.contentHeight(), true)
}

// renderActivityContent renders decoded log records, one per line.
func (m Model) renderActivityContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	width := maxInt(m.activityViewport.Width, 10)

	if m.activity.err != nil {
		return bg.FillLine(bg.Render("Cannot read log: "+m.activity.err.Error(), styles.DangerText), width)
	}
	if len(m.activity.entries) == 0 {
		text := "No activity yet"
		if m.config == nil || m.config.LogFile == "" {
			text = "Logging is disabled"
		}
		return bg.FillLine(bg.Render(text, styles.MutedText), width)
	}

	lines := make([]string, 0, len(m.activity.entries))
	for _, e := range m.activity.entries {
		lines = append(lines, bg.FillLine(m.formatEntry(e, styles, bg), width))
	}
	return strings.Join(lines, "\n")
}

// formatEntry renders "15:04:05 WARN  Op  message key=value ...".
func (m Model) formatEntry(e logtail.Entry, styles Styles, bg BgStyle) string {
	var b strings.Builder

	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}
	b.WriteString(bg.Render(ts, styles.FaintText))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(padRight(ternary(e.Level == "", "-", e.Level), 5), levelStyle(e.Level, styles)))
	b.WriteString(bg.Space())
	if e.Op != "" {
		b.WriteString(bg.Render(titleCase(e.Op), styles.AccentText))
		b.WriteString(bg.Space())
	}
	b.WriteString(bg.Render(e.Message, styles.Text))
	for _, a := range e.Attrs {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(a.Key+"=", styles.FaintText))
		b.WriteString(bg.Render(a.Value, styles.MutedText))
	}
	return b.String()
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.InfoText
	}
}

// handleActivityKey processes keyboard input for the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.activity.follow = !m.activity.follow
		if m.activity.follow {
			m.activityViewport.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.readActivity()
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
		m.activity.follow = true
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.activityViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.activityViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.activityViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.activityViewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.activityViewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.activityViewport.PageUp()
	default:
		return m, nil
	}
	m.activity.follow = false
	return m, nil
}
