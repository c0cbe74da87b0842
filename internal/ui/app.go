package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/config"
	"github.com/five82/quill/internal/logtail"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewFeed View = iota
	ViewCategories
	ViewCategoryFeed
	ViewBookmarks
	ViewAuthor
	ViewProfile
	ViewDetail
	ViewActivity
	viewCount
)

// tabOrder is the cycle used by tab and shift+tab.
var tabOrder = []View{ViewFeed, ViewCategories, ViewBookmarks, ViewProfile, ViewActivity}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Config    *config.Config
	ThemeName string
	PrefsPath string
	Prefs     prefs.Prefs
	APIURL    string
}

// toast is a transient status line message. Error toasts carry the op whose
// lifecycle error they show so it can be cleared on expiry.
type toast struct {
	text   string
	danger bool
	op     state.Op
	hasOp  bool
	seq    int
}

// activityState holds the log tail shown in the activity view.
type activityState struct {
	entries []logtail.Entry
	err     error
	follow  bool
	ticking bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	config    *config.Config
	prefsPath string
	prefs     prefs.Prefs
	apiURL    string
	keys      keyMap

	// UI state
	theme        Theme
	currentView  View
	previousView View
	width        int
	height       int
	ready        bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Selection per list view
	cursor [viewCount]int

	// Toggles sent but not yet reflected in a snapshot, keyed by toggleKey.
	toggling map[string]bool

	// Detail state
	detailViewport viewport.Model

	// Activity state
	activityViewport viewport.Model
	activity         activityState

	// Pending indicator
	spinner  spinner.Model
	spinning bool

	toast    toast
	toastSeq int

	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	userPrefs := opts.Prefs
	if userPrefs.PageSize == 0 {
		userPrefs = prefs.Defaults()
	}
	userPrefs.Theme = themeName

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		config:      opts.Config,
		prefsPath:   prefsPath,
		prefs:       userPrefs,
		apiURL:      opts.APIURL,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewFeed,
		toggling:    make(map[string]bool),
		spinner:     sp,
		activity:    activityState{follow: true},
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForChange(m.ctx, m.store.Changes()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
			m.initActivityViewport()
		}
		m.ready = true
		m.updateDetailViewport()
		m.updateActivityViewport()
		return m, nil

	case changeMsg:
		next, cmd := m.applySnapshot(m.store.Snapshot())
		return next, tea.Batch(cmd, waitForChange(m.ctx, m.store.Changes()))

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))

	case opDoneMsg:
		return m.handleOpDone(msg)

	case toastMsg:
		return m.showToast(msg.text, msg.danger, 0, false)

	case toastExpiredMsg:
		return m.expireToast(msg)

	case spinner.TickMsg:
		if !m.snapshot.Pending() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case activityMsg:
		m.activity.entries = msg.entries
		m.activity.err = msg.err
		m.updateActivityViewport()
		return m, nil

	case activityTickMsg:
		if m.currentView != ViewActivity {
			m.activity.ticking = false
			return m, nil
		}
		return m, tea.Batch(m.readActivity(), activityTickCmd())
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// applySnapshot stores a new snapshot and reacts to it: the spinner starts
// while anything is pending, one-shot success flags are consumed, and the
// next recorded error is surfaced as a toast.
func (m Model) applySnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	m.lastUpdated = time.Now()

	for k := range m.toggling {
		if strings.HasPrefix(k, "like:") && snap.IsLiking(blogapi.ID(strings.TrimPrefix(k, "like:"))) {
			delete(m.toggling, k)
		}
		if strings.HasPrefix(k, "bookmark:") && snap.IsBookmarking(blogapi.ID(strings.TrimPrefix(k, "bookmark:"))) {
			delete(m.toggling, k)
		}
	}

	m.clampCursors()
	m.updateDetailViewport()

	var cmds []tea.Cmd
	if snap.Pending() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	var cmd tea.Cmd
	m, cmd = m.consumeSuccess()
	cmds = append(cmds, cmd)

	if m.toast.text == "" {
		if errs := snap.Errors(); len(errs) > 0 {
			next, cmd := m.showToast(errs[0].Message(), true, errs[0].Op, true)
			m = next.(Model)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// successMessages are the operations whose one-shot success flag the UI
// consumes, with the toast shown for each.
var successMessages = []struct {
	op   state.Op
	text string
}{
	{state.OpLogin, "Logged in"},
	{state.OpRegister, "Account created, log in to continue"},
	{state.OpCreateBlog, "Blog published"},
	{state.OpUpdateBlog, "Blog updated"},
	{state.OpDeleteBlog, "Blog deleted"},
	{state.OpUpdateProfile, "Profile updated"},
}

func (m Model) consumeSuccess() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, s := range successMessages {
		op, text := s.op, s.text
		if !m.snapshot.Op(op).Success {
			continue
		}
		m.store.ClearSuccess(op)

		switch op {
		case state.OpLogin:
			cmds = append(cmds, m.run(state.OpProfile, "", func(ctx context.Context) error {
				_, err := m.store.FetchProfile(ctx)
				return err
			}))
		case state.OpCreateBlog, state.OpUpdateBlog:
			if m.currentView != ViewDetail {
				m.previousView = m.currentView
			}
			m.currentView = ViewDetail
			m.detailViewport.GotoTop()
			cmds = append(cmds, m.reloadFeed())
		case state.OpDeleteBlog:
			if m.currentView == ViewDetail {
				m.currentView = m.previousView
			}
		}

		next, cmd := m.showToast(text, false, 0, false)
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) showToast(text string, danger bool, op state.Op, hasOp bool) (tea.Model, tea.Cmd) {
	if m.toast.text == text && m.toast.danger == danger {
		return m, nil
	}
	m.toastSeq++
	m.toast = toast{text: text, danger: danger, op: op, hasOp: hasOp, seq: m.toastSeq}
	seq := m.toastSeq
	return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) expireToast(msg toastExpiredMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.toast.seq {
		return m, nil
	}
	expired := m.toast
	m.toast = toast{}
	if expired.hasOp && m.store != nil {
		// The cleared error produces a change; the next error, if any, follows.
		m.store.ClearError(expired.op)
	}
	return m, nil
}

func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.op {
	case state.OpLike:
		delete(m.toggling, toggleKey(state.OpLike, msg.id))
	case state.OpBookmark:
		delete(m.toggling, toggleKey(state.OpBookmark, msg.id))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, m.prefs)
		}
		m.updateDetailViewport()
		m.updateActivityViewport()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.cycleView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.cycleView(-1))

	case key.Matches(msg, m.keys.ViewFeed):
		return m.switchView(ViewFeed)
	case key.Matches(msg, m.keys.ViewCategories):
		return m.switchView(ViewCategories)
	case key.Matches(msg, m.keys.ViewBookmarks):
		return m.switchView(ViewBookmarks)
	case key.Matches(msg, m.keys.ViewProfile):
		return m.switchView(ViewProfile)
	case key.Matches(msg, m.keys.ViewActivity):
		return m.switchView(ViewActivity)

	case key.Matches(msg, m.keys.Escape):
		return m.back()

	case key.Matches(msg, m.keys.Login):
		return m.openForm(m.loginForm())

	case key.Matches(msg, m.keys.Register):
		return m.openForm(m.registerForm())

	case key.Matches(msg, m.keys.Compose):
		return m.openForm(m.composeForm(nil))
	}

	switch m.currentView {
	case ViewFeed, ViewCategoryFeed, ViewBookmarks, ViewAuthor:
		return m.handleListKey(msg)
	case ViewCategories:
		return m.handleCategoriesKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewProfile:
		return m.handleProfileKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}

	return m, nil
}

// cycleView returns the view dir steps from the current one in tabOrder.
// Views outside the cycle count as their parent.
func (m Model) cycleView(dir int) View {
	current := m.currentView
	switch current {
	case ViewCategoryFeed:
		current = ViewCategories
	case ViewAuthor, ViewDetail:
		current = ViewFeed
	}
	idx := 0
	for i, v := range tabOrder {
		if v == current {
			idx = i
		}
	}
	n := len(tabOrder)
	return tabOrder[((idx+dir)%n+n)%n]
}

// switchView activates a top-level view and issues the fetch it needs.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	snap := m.snapshot

	switch v {
	case ViewFeed:
		if len(snap.Blogs) == 0 && !snap.Op(state.OpListBlogs).Pending {
			return m, m.reloadFeed()
		}
	case ViewCategories:
		if !snap.CategoriesLoaded && !snap.Op(state.OpCategories).Pending {
			return m, m.run(state.OpCategories, "", func(ctx context.Context) error {
				_, err := m.store.Categories(ctx)
				return err
			})
		}
	case ViewBookmarks:
		if snap.LoggedIn() {
			return m, m.run(state.OpBookmarkedBlogs, "", func(ctx context.Context) error {
				_, err := m.store.FetchBookmarkedBlogs(ctx)
				return err
			})
		}
	case ViewProfile:
		if snap.NeedsProfile() && !snap.Op(state.OpProfile).Pending {
			return m, m.run(state.OpProfile, "", func(ctx context.Context) error {
				_, err := m.store.FetchProfile(ctx)
				return err
			})
		}
	case ViewActivity:
		cmds := []tea.Cmd{m.readActivity()}
		if !m.activity.ticking {
			m.activity.ticking = true
			cmds = append(cmds, activityTickCmd())
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// back leaves a drill-down view and releases what it held in the store.
func (m Model) back() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDetail:
		m.store.ClearCurrentBlog()
		m.currentView = m.previousView
		if m.currentView == ViewDetail {
			m.currentView = ViewFeed
		}
	case ViewCategoryFeed:
		m.store.ClearCategoryBlogs()
		m.currentView = ViewCategories
	case ViewAuthor:
		m.store.ClearAuthor()
		m.currentView = m.previousView
		if m.currentView == ViewAuthor || m.currentView == ViewDetail {
			m.currentView = ViewFeed
		}
	default:
		m.currentView = ViewFeed
	}
	return m, nil
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return lipgloss.NewStyle().MaxHeight(m.height).Render(b.String())
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewFeed, ViewCategoryFeed, ViewBookmarks:
		return m.renderBlogList()
	case ViewAuthor:
		return m.renderAuthor()
	case ViewCategories:
		return m.renderCategories()
	case ViewDetail:
		return m.renderDetail()
	case ViewProfile:
		return m.renderProfile()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		// Cancelled by signal; not an error for the caller.
		return nil
	}
	return err
}
