package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/state"
)

// handleCategoriesKey processes keyboard input for the category picker.
func (m Model) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := m.snapshot.Categories
	if m.moveCursor(msg, len(cats)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if len(cats) == 0 {
			return m, nil
		}
		idx := min(m.cursor[ViewCategories], len(cats)-1)
		return m.openCategory(cats[idx])
	case key.Matches(msg, m.keys.Reload):
		m.store.ClearCategories()
		store := m.store
		return m, m.run(state.OpCategories, "", func(ctx context.Context) error {
			_, err := store.Categories(ctx)
			return err
		})
	}
	return m, nil
}

// openCategory lists the first page of a category in its own view.
func (m Model) openCategory(c blogapi.Category) (tea.Model, tea.Cmd) {
	m.currentView = ViewCategoryFeed
	m.cursor[ViewCategoryFeed] = 0
	id := c.ID
	q := blogapi.ListQuery{Page: 1, PageSize: m.snapshot.CategoryPagination.PageSize}
	store := m.store
	return m, m.run(state.OpCategoryBlogs, id, func(ctx context.Context) error {
		_, err := store.ListBlogsByCategory(ctx, id, q)
		return err
	})
}

// renderCategories renders the category picker.
func (m Model) renderCategories() string {
	height := m.contentHeight()
	width := m.width - 2
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	cats := m.snapshot.Categories
	title := fmt.Sprintf("Categories (%d)", len(cats))

	if len(cats) == 0 {
		text := "No categories"
		if m.snapshot.Op(state.OpCategories).Pending || !m.snapshot.CategoriesLoaded {
			text = "Loading categories..."
		}
		return m.renderBox(title, bg.FillLine(bg.Render(text, styles.MutedText), width), m.width, height, true)
	}

	visible := maxInt(height-2, 1)
	cursor := m.cursor[ViewCategories]
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(cats))

	nameWidth := 0
	for _, c := range cats {
		nameWidth = maxInt(nameWidth, lenRunes(c.Name))
	}
	nameWidth = min(nameWidth+2, 28)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := cats[i]
		rowBg, rowStyles := bg, styles
		marker := "  "
		if i == cursor {
			rowBg = NewBgStyle(m.theme.SelectionBg)
			rowStyles = m.theme.Styles().WithBackground(m.theme.SelectionBg)
			marker = "▌ "
		}
		chip := rowStyles.CategoryStyle(c.Name).Render(padRight(truncate(c.Name, nameWidth-2), nameWidth-2))
		desc := strings.TrimSpace(c.Description)
		line := rowBg.Render(marker, rowStyles.AccentText) + chip
		if desc != "" {
			line += rowBg.Spaces(2) + rowBg.Render(truncate(desc, maxInt(width-nameWidth-8, 8)), rowStyles.MutedText)
		}
		lines = append(lines, rowBg.FillLine(line, width))
	}
	return m.renderBox(title, strings.Join(lines, "\n"), m.width, height, true)
}
