package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/state"
)

// viewNames are the header labels of each view.
var viewNames = [viewCount]string{
	ViewFeed:         "Feed",
	ViewCategories:   "Categories",
	ViewCategoryFeed: "Category",
	ViewBookmarks:    "Bookmarks",
	ViewAuthor:       "Author",
	ViewProfile:      "Profile",
	ViewDetail:       "Blog",
	ViewActivity:     "Activity",
}

// renderHeader renders the status bar: logo, session, view, API host and
// the pending indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)
	snap := m.snapshot

	parts := []string{bg.Render("quill", styles.Logo)}

	switch {
	case snap.LoggedIn() && snap.User != nil:
		parts = append(parts, bg.Render("● "+snap.User.Username, styles.SuccessText))
	case snap.NeedsProfile():
		parts = append(parts, bg.Render("● signing in", styles.WarningText))
	default:
		parts = append(parts, bg.Render("○ anonymous", styles.MutedText))
	}

	parts = append(parts, bg.Render("View:", styles.MutedText)+bg.Space()+bg.Render(viewNames[m.currentView], styles.Text))

	if m.width >= LayoutCompactWidth {
		if host := apiHost(m.apiURL); host != "" {
			parts = append(parts, bg.Render("api", styles.FaintText)+bg.Space()+bg.Render(host, styles.MutedText))
		}
	}

	if n := len(snap.Errors()); n > 0 {
		parts = append(parts, bg.Render(pluralize(n, "error"), styles.DangerText))
	}

	if snap.Pending() {
		parts = append(parts, bg.Render(m.spinner.View()+" "+pendingLabel(snap), styles.WarningText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")) + sep)
}

// renderCommandBar renders the command hints bar for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewFeed:
		commands = []cmd{
			{"enter", "Open"},
			{"l/b", "Like/Bookmark"},
			{"/", "Search"},
			{"x", "Clear"},
			{"[/]", "Page"},
			{"a", "Author"},
			{"w", "Write"},
		}
	case ViewCategoryFeed, ViewBookmarks, ViewAuthor:
		commands = []cmd{
			{"enter", "Open"},
			{"l/b", "Like/Bookmark"},
			{"a", "Author"},
			{"r", "Reload"},
			{"esc", "Back"},
		}
		if m.currentView == ViewCategoryFeed {
			commands = append(commands, cmd{"[/]", "Page"})
		}
	case ViewCategories:
		commands = []cmd{
			{"enter", "Browse"},
			{"j/k", "Navigate"},
			{"r", "Reload"},
		}
	case ViewDetail:
		commands = []cmd{
			{"l/b", "Like/Bookmark"},
			{"a", "Author"},
			{"e", "Edit"},
			{"D", "Delete"},
			{"esc", "Back"},
		}
	case ViewProfile:
		if m.snapshot.LoggedIn() {
			commands = []cmd{{"u", "Edit"}, {"a", "My blogs"}, {"o", "Log out"}}
		} else {
			commands = []cmd{{"i", "Log in"}, {"R", "Register"}}
		}
	case ViewActivity:
		follow := "Pause"
		if !m.activity.follow {
			follow = "Follow"
		}
		commands = []cmd{{"Space", follow}, {"r", "Reload"}, {"j/k", "Scroll"}}
	}
	commands = append(commands, cmd{"tab", "Views"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderStatusLine renders the toast, or the listing filters when idle.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var content string
	switch {
	case m.toast.text != "" && m.toast.danger:
		content = bg.Render("✗ "+m.toast.text, styles.DangerText)
	case m.toast.text != "":
		content = bg.Render("✓ "+m.toast.text, styles.SuccessText)
	case m.currentView == ViewFeed:
		if f := filterLabel(m.snapshot.Pagination); f != "" {
			content = bg.Render("filters ", styles.FaintText) + bg.Render(f, styles.AccentText)
		}
	}
	return bg.FillLine(content, m.width)
}

// pendingLabel names the first in-flight operation.
func pendingLabel(snap state.Snapshot) string {
	for op := state.OpRegister; op <= state.OpBookmark; op++ {
		if snap.Op(op).Pending {
			return titleCase(op.String())
		}
	}
	return "Working"
}

func apiHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return truncateMiddle(raw, 30)
	}
	return u.Host
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
