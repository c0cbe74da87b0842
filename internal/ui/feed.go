package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/state"
)

// blogRowHeight is the number of lines one blog takes in a list.
const blogRowHeight = 2

// blogsFor returns the blogs a view lists.
func (m Model) blogsFor(v View) []blogapi.Blog {
	switch v {
	case ViewFeed:
		return m.snapshot.Blogs
	case ViewCategoryFeed:
		return m.snapshot.CategoryBlogs
	case ViewBookmarks:
		return m.snapshot.BookmarkedBlogs
	case ViewAuthor:
		return m.snapshot.AuthorBlogs
	case ViewDetail:
		if m.snapshot.CurrentBlog != nil {
			return []blogapi.Blog{*m.snapshot.CurrentBlog}
		}
	}
	return nil
}

// selectedBlog returns the blog under the cursor, or the current blog in
// the detail view.
func (m Model) selectedBlog() (blogapi.Blog, bool) {
	blogs := m.blogsFor(m.currentView)
	if len(blogs) == 0 {
		return blogapi.Blog{}, false
	}
	idx := m.cursor[m.currentView]
	if idx < 0 || idx >= len(blogs) {
		idx = 0
	}
	return blogs[idx], true
}

// clampCursors keeps every list cursor inside its list after a snapshot.
func (m *Model) clampCursors() {
	for v := View(0); v < viewCount; v++ {
		n := len(m.blogsFor(v))
		if v == ViewCategories {
			n = len(m.snapshot.Categories)
		}
		switch {
		case n == 0:
			m.cursor[v] = 0
		case m.cursor[v] >= n:
			m.cursor[v] = n - 1
		}
	}
}

// moveCursor applies a navigation key to the cursor of the current view.
func (m *Model) moveCursor(msg tea.KeyMsg, count int) bool {
	if count == 0 {
		return false
	}
	c := &m.cursor[m.currentView]
	page := maxInt(m.contentHeight()/blogRowHeight-1, 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		if *c < count-1 {
			*c++
		}
	case key.Matches(msg, m.keys.Up):
		if *c > 0 {
			*c--
		}
	case key.Matches(msg, m.keys.Top):
		*c = 0
	case key.Matches(msg, m.keys.Bottom):
		*c = count - 1
	case key.Matches(msg, m.keys.PageDown), key.Matches(msg, m.keys.HalfPageDown):
		*c = min(*c+page, count-1)
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.HalfPageUp):
		*c = max(*c-page, 0)
	default:
		return false
	}
	return true
}

// handleListKey processes keyboard input for the blog list views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	blogs := m.blogsFor(m.currentView)
	if m.moveCursor(msg, len(blogs)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if b, ok := m.selectedBlog(); ok {
			return m.openBlog(b.ID)
		}
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
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadView()
	case key.Matches(msg, m.keys.NextPage):
		cmd := m.turnPage(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevPage):
		cmd := m.turnPage(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		if m.currentView == ViewFeed {
			return m.openForm(m.searchForm())
		}
	case key.Matches(msg, m.keys.ClearFilters):
		if m.currentView == ViewFeed {
			m.store.ClearFilters()
			m.cursor[ViewFeed] = 0
			return m, m.reloadFeed()
		}
	}
	return m, nil
}

// toggle flips like or bookmark on the selected blog. The key is ignored
// while a toggle of the same kind on the same blog is in flight.
func (m Model) toggle(op state.Op) (tea.Model, tea.Cmd) {
	b, ok := m.selectedBlog()
	if !ok {
		return m, nil
	}
	id := b.ID
	k := toggleKey(op, id)
	busy := m.snapshot.IsLiking(id)
	if op == state.OpBookmark {
		busy = m.snapshot.IsBookmarking(id)
	}
	if busy || m.toggling[k] {
		return m, nil
	}
	if m.snapshot.LoggedIn() {
		m.toggling[k] = true
	}

	store := m.store
	return m, m.run(op, id, func(ctx context.Context) error {
		var err error
		if op == state.OpBookmark {
			_, err = store.ToggleBookmark(ctx, id)
		} else {
			_, err = store.ToggleLike(ctx, id)
		}
		return err
	})
}

// openBlog switches to the detail view and loads id.
func (m Model) openBlog(id blogapi.ID) (tea.Model, tea.Cmd) {
	if m.currentView != ViewDetail {
		m.previousView = m.currentView
	}
	m.currentView = ViewDetail
	m.detailViewport.GotoTop()
	store := m.store
	return m, m.run(state.OpGetBlog, id, func(ctx context.Context) error {
		_, err := store.GetBlog(ctx, id)
		return err
	})
}

// openAuthor switches to the author view and loads the profile and blogs.
func (m Model) openAuthor(id blogapi.ID) (tea.Model, tea.Cmd) {
	if id == "" {
		return m.showToast("This blog has no author information", true, 0, false)
	}
	if m.currentView != ViewAuthor {
		m.previousView = m.currentView
	}
	m.currentView = ViewAuthor
	m.cursor[ViewAuthor] = 0
	store := m.store
	return m, tea.Batch(
		m.run(state.OpAuthorProfile, id, func(ctx context.Context) error {
			_, err := store.FetchAuthorProfile(ctx, id)
			return err
		}),
		m.run(state.OpAuthorBlogs, id, func(ctx context.Context) error {
			_, err := store.FetchAuthorBlogs(ctx, id)
			return err
		}),
	)
}

// reloadView re-fetches whatever the current view shows.
func (m Model) reloadView() tea.Cmd {
	store := m.store
	switch m.currentView {
	case ViewFeed:
		return m.reloadFeed()
	case ViewCategoryFeed:
		return m.categoryPage(m.snapshot.CategoryPagination.CurrentPage)
	case ViewBookmarks:
		return m.run(state.OpBookmarkedBlogs, "", func(ctx context.Context) error {
			_, err := store.FetchBookmarkedBlogs(ctx)
			return err
		})
	case ViewAuthor:
		if p := m.snapshot.AuthorProfile; p != nil {
			id := p.ID
			return m.run(state.OpAuthorBlogs, id, func(ctx context.Context) error {
				_, err := store.FetchAuthorBlogs(ctx, id)
				return err
			})
		}
	case ViewDetail:
		if b := m.snapshot.CurrentBlog; b != nil {
			id := b.ID
			return m.run(state.OpGetBlog, id, func(ctx context.Context) error {
				_, err := store.GetBlog(ctx, id)
				return err
			})
		}
	}
	return nil
}

// turnPage moves the main or category listing by dir pages.
func (m *Model) turnPage(dir int) tea.Cmd {
	switch m.currentView {
	case ViewFeed:
		p := m.snapshot.Pagination
		next := p.CurrentPage + dir
		if next < 1 || next > maxInt(p.TotalPages, 1) {
			return nil
		}
		m.cursor[ViewFeed] = 0
		m.store.SetCurrentPage(next)
		return m.reloadFeed()
	case ViewCategoryFeed:
		p := m.snapshot.CategoryPagination
		next := p.CurrentPage + dir
		if next < 1 || next > maxInt(p.TotalPages, 1) {
			return nil
		}
		m.cursor[ViewCategoryFeed] = 0
		return m.categoryPage(next)
	}
	return nil
}

func (m Model) categoryPage(page int) tea.Cmd {
	p := m.snapshot.CategoryPagination
	id := p.CategoryID
	if id == "" {
		return nil
	}
	q := blogapi.ListQuery{Page: page, PageSize: p.PageSize, SortBy: p.SortBy}
	store := m.store
	return m.run(state.OpCategoryBlogs, id, func(ctx context.Context) error {
		_, err := store.ListBlogsByCategory(ctx, id, q)
		return err
	})
}

// listTitle returns the box title for a list view.
func (m Model) listTitle() string {
	switch m.currentView {
	case ViewCategoryFeed:
		name := m.categoryName(m.snapshot.CategoryPagination.CategoryID)
		return fmt.Sprintf("Category: %s  %s", name, pageLabel(m.snapshot.CategoryPagination))
	case ViewBookmarks:
		return fmt.Sprintf("Bookmarks (%d)", len(m.snapshot.BookmarkedBlogs))
	default:
		title := "Feed  " + pageLabel(m.snapshot.Pagination)
		if f := filterLabel(m.snapshot.Pagination); f != "" {
			title += "  " + f
		}
		return title
	}
}

func pageLabel(p state.Pagination) string {
	return fmt.Sprintf("page %d/%d · %d blogs", p.CurrentPage, maxInt(p.TotalPages, 1), p.TotalBlogs)
}

func filterLabel(p state.Pagination) string {
	var parts []string
	if p.SearchQuery != "" {
		parts = append(parts, "/"+truncate(p.SearchQuery, 20))
	}
	if p.SelectedCategory != "" {
		parts = append(parts, "#"+truncate(p.SelectedCategory, 20))
	}
	return strings.Join(parts, " ")
}

func (m Model) categoryName(id blogapi.ID) string {
	for _, c := range m.snapshot.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id.String()
}

// renderBlogList renders the feed, category feed and bookmark views.
func (m Model) renderBlogList() string {
	height := m.contentHeight()
	return m.renderBox(m.listTitle(), m.renderBlogRows(m.blogsFor(m.currentView), m.width-2, height-2), m.width, height, true)
}

// renderBlogRows renders blogs two lines each, scrolled to keep the cursor visible.
func (m Model) renderBlogRows(blogs []blogapi.Blog, width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	if len(blogs) == 0 {
		return bg.FillLine(bg.Render(m.emptyListText(), styles.MutedText), width)
	}

	visible := maxInt(height/blogRowHeight, 1)
	cursor := m.cursor[m.currentView]
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(blogs))

	now := time.Now()
	lines := make([]string, 0, (end-start)*blogRowHeight)
	for i := start; i < end; i++ {
		b := blogs[i]
		selected := i == cursor

		rowBg := bg
		rowStyles := styles
		if selected {
			rowBg = NewBgStyle(m.theme.SelectionBg)
			rowStyles = m.theme.Styles().WithBackground(m.theme.SelectionBg)
		}

		marker := rowBg.Render("  ", rowStyles.Text)
		if selected {
			marker = rowBg.Render("▌ ", rowStyles.AccentText)
		}

		title := rowBg.Render(truncate(b.Title, maxInt(width-24, 10)), rowStyles.Text.Bold(true))
		counts := m.engagementLabel(b, rowStyles, rowBg)
		lines = append(lines, rowBg.FillLine(marker+title+rowBg.Spaces(2)+counts, width))

		var meta []string
		if name := b.AuthorName(); name != "" {
			meta = append(meta, name)
		}
		if age := ago(b.ParsedCreatedAt(), now); age != "" {
			meta = append(meta, age)
		}
		if mins := b.ReadingTime(); mins > 0 {
			meta = append(meta, fmt.Sprintf("%d min read", mins))
		}
		metaText := strings.Join(meta, " · ")
		second := rowBg.Spaces(2) + rowBg.Render(metaText, rowStyles.MutedText)
		if excerpt := b.Excerpt(maxInt(width-lenRunes(metaText)-6, 4)); excerpt != "" {
			second += rowBg.Spaces(2) + rowBg.Render(excerpt, rowStyles.FaintText)
		}
		lines = append(lines, rowBg.FillLine(second, width))
	}
	return strings.Join(lines, "\n")
}

// engagementLabel renders the like and bookmark counters of b. A counter
// whose toggle is in flight is shown with an ellipsis.
func (m Model) engagementLabel(b blogapi.Blog, styles Styles, bg BgStyle) string {
	likeStyle := styles.MutedText
	if b.IsLiked {
		likeStyle = styles.LikedText
	}
	likes := fmt.Sprintf("♥ %d", b.NumberOfLikes)
	if m.snapshot.IsLiking(b.ID) {
		likes += "…"
	}

	markStyle := styles.MutedText
	if b.IsBookmarked {
		markStyle = styles.BookmarkedText
	}
	marks := fmt.Sprintf("★ %d", b.NumberOfBookmarks)
	if m.snapshot.IsBookmarking(b.ID) {
		marks += "…"
	}
	return bg.Render(likes, likeStyle) + bg.Spaces(2) + bg.Render(marks, markStyle)
}

func (m Model) emptyListText() string {
	snap := m.snapshot
	switch m.currentView {
	case ViewBookmarks:
		if !snap.LoggedIn() {
			return "Log in (i) to see your bookmarks"
		}
		if snap.Op(state.OpBookmarkedBlogs).Pending {
			return "Loading bookmarks..."
		}
		return "No bookmarks yet"
	case ViewCategoryFeed:
		if snap.Op(state.OpCategoryBlogs).Pending {
			return "Loading..."
		}
		return "No blogs in this category"
	case ViewAuthor:
		if snap.Op(state.OpAuthorBlogs).Pending {
			return "Loading..."
		}
		return "This author has not published anything"
	default:
		if snap.Op(state.OpListBlogs).Pending {
			return "Loading blogs..."
		}
		if filterLabel(snap.Pagination) != "" {
			return "No blogs match the filters (x to clear)"
		}
		return "No blogs yet"
	}
}

func lenRunes(s string) int {
	return len([]rune(s))
}
