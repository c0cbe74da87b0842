package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/state"
)

// handleProfileKey processes keyboard input for the own-profile view.
func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logout):
		if !m.snapshot.LoggedIn() {
			return m, nil
		}
		m.store.Logout(m.ctx)
		m.currentView = ViewFeed
		return m.showToast("Logged out", false, 0, false)
	case key.Matches(msg, m.keys.EditProfile):
		if m.snapshot.User != nil {
			return m.openForm(m.profileForm(*m.snapshot.User))
		}
	case key.Matches(msg, m.keys.Author):
		if u := m.snapshot.User; u != nil {
			return m.openAuthor(u.ID)
		}
	case key.Matches(msg, m.keys.Reload):
		if m.snapshot.LoggedIn() {
			store := m.store
			return m, m.run(state.OpProfile, "", func(ctx context.Context) error {
				_, err := store.FetchProfile(ctx)
				return err
			})
		}
	}
	return m, nil
}

// renderProfile renders the signed-in user's profile.
func (m Model) renderProfile() string {
	height := m.contentHeight()
	width := m.width - 2
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	snap := m.snapshot

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }

	switch {
	case !snap.LoggedIn():
		add(bg.Render("Not logged in.", styles.Text))
		add("")
		add(bg.Hints(styles, "i", "log in", "R", "register"))
	case snap.User == nil:
		text := "Profile unavailable (r to retry)"
		if snap.Op(state.OpProfile).Pending {
			text = "Loading profile..."
		}
		add(bg.Render(text, styles.MutedText))
	default:
		lines = append(lines, m.userLines(*snap.User, styles, bg, width)...)
		add("")
		add(bg.Hints(styles, "u", "edit profile", "a", "my blogs", "o", "log out"))
	}

	return m.renderBox("Profile", strings.Join(lines, "\n"), m.width, height, true)
}

// userLines renders the fields of a user record.
func (m Model) userLines(u blogapi.User, styles Styles, bg BgStyle, width int) []string {
	label := func(s string) string { return bg.Render(padRight(s, 10), styles.FaintText) }
	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }

	add(bg.Render(u.Username, styles.AccentText.Bold(true)))
	if u.Email != "" {
		add(label("email") + bg.Render(u.Email, styles.Text))
	}
	if u.ProfileURL != "" {
		add(label("avatar") + bg.Render(truncateMiddle(u.ProfileURL, maxInt(width-12, 10)), styles.MutedText))
	}
	if created := u.CreatedAt; created != "" {
		add(label("joined") + bg.Render(created, styles.MutedText))
	}
	if bio := strings.TrimSpace(u.Bio); bio != "" {
		add("")
		add(bg.Render(truncate(bio, maxInt(width*2, 20)), styles.Text))
	}
	return lines
}

// renderAuthor renders an author's profile above their blogs.
func (m Model) renderAuthor() string {
	height := m.contentHeight()
	width := m.width - 2
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	var header []string
	title := "Author"
	if p := m.snapshot.AuthorProfile; p != nil {
		title = "Author: " + p.Username
		header = m.userLines(*p, styles, bg, width)
	} else {
		text := "Loading author..."
		if !m.snapshot.Op(state.OpAuthorProfile).Pending && m.snapshot.Op(state.OpAuthorProfile).Err != nil {
			text = "Author unavailable"
		}
		header = []string{bg.FillLine(bg.Render(text, styles.MutedText), width)}
	}
	header = append(header, bg.FillLine(bg.Render(strings.Repeat("─", maxInt(width-2, 1)), styles.FaintText), width))

	listHeight := maxInt(height-2-len(header), blogRowHeight)
	rows := m.renderBlogRows(m.snapshot.AuthorBlogs, width, listHeight)
	return m.renderBox(title, strings.Join(header, "\n")+"\n"+rows, m.width, height, true)
}
