package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/state"
)

func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(maxInt(m.width-4, 1), maxInt(m.contentHeight()-2, 1))
}

// updateDetailViewport re-renders the current blog into the viewport.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = maxInt(m.width-4, 1)
	m.detailViewport.Height = maxInt(m.contentHeight()-2, 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.detailViewport.SetContent(m.renderDetailContent())
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	title := "Blog"
	if b := m.snapshot.CurrentBlog; b != nil {
		title = b.Title
	}
	return m.renderBox(title, m.detailViewport.View(), m.width, m.contentHeight(), true)
}

// renderDetailContent renders the current blog as wrapped text.
func (m Model) renderDetailContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := maxInt(m.detailViewport.Width, 10)

	b := m.snapshot.CurrentBlog
	if b == nil {
		text := "No blog selected"
		if m.snapshot.Op(state.OpGetBlog).Pending {
			text = "Loading blog..."
		}
		return bg.FillLine(bg.Render(text, styles.MutedText), width)
	}

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }

	add(bg.Render(b.Title, styles.AccentText.Bold(true)))

	var meta []string
	if name := b.AuthorName(); name != "" {
		meta = append(meta, "by "+name)
	}
	if created := b.ParsedCreatedAt(); !created.IsZero() {
		meta = append(meta, created.Local().Format("Jan 2, 2006")+" ("+ago(created, time.Now())+")")
	}
	if mins := b.ReadingTime(); mins > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", mins))
	}
	if len(meta) > 0 {
		add(bg.Render(strings.Join(meta, " · "), styles.MutedText))
	}

	if names := b.CategoryNames(); len(names) > 0 {
		add(bg.Chips(styles, names))
	}

	add(m.engagementLabel(*b, styles, bg))
	if b.Thumbnail != "" {
		add(bg.Render("thumbnail", styles.FaintText) + bg.Space() + bg.Render(truncateMiddle(b.Thumbnail, width-10), styles.MutedText))
	}
	add("")

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(width).
		Render(strings.TrimSpace(b.Content))
	lines = append(lines, body)

	return strings.Join(lines, "\n")
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.PageUp()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	case key.Matches(msg, m.keys.Like):
		return m.toggle(state.OpLike)
	case key.Matches(msg, m.keys.Bookmark):
		return m.toggle(state.OpBookmark)
	case key.Matches(msg, m.keys.Author):
		if b, ok := m.selectedBlog(); ok {
			return m.openAuthor(b.AuthorRef())
		}
	case key.Matches(msg, m.keys.Edit):
		if b, ok := m.selectedBlog(); ok {
			return m.openForm(m.composeForm(&b))
		}
	case key.Matches(msg, m.keys.Delete):
		if b, ok := m.selectedBlog(); ok {
			m.modal = m.confirmDelete(b)
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadView()
	}
	return m, nil
}
