package ui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/state"
)

const (
	formWidth     = 56
	composeHeight = 8
)

// formField is one labelled input. Multiline fields use the textarea.
type formField struct {
	label     string
	input     textinput.Model
	area      textarea.Model
	multiline bool
}

func newInput(label, value, placeholder string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.Width = formWidth
	in.CharLimit = 0
	in.SetValue(value)
	return formField{label: label, input: in}
}

func newSecret(label string) formField {
	f := newInput(label, "", "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func newArea(label, value string) formField {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(formWidth)
	ta.SetHeight(composeHeight)
	ta.SetValue(value)
	return formField{label: label, area: ta, multiline: true}
}

func (f formField) value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *formField) focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *formField) blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

// formModal is a multi-field dialog. submit receives the field values in
// order and returns the command that performs the action.
type formModal struct {
	title  string
	hint   string
	fields []formField
	focus  int
	submit func(values []string) tea.Cmd
}

func newForm(title, hint string, submit func([]string) tea.Cmd, fields ...formField) formModal {
	return formModal{title: title, hint: hint, fields: fields, submit: submit}
}

// focusCmd focuses the active field and returns its blink command.
func (f *formModal) focusCmd() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	for i := range f.fields {
		if i != f.focus {
			f.fields[i].blur()
		}
	}
	return f.fields[f.focus].focus()
}

func (f formModal) values() []string {
	out := make([]string, len(f.fields))
	for i, fld := range f.fields {
		out[i] = fld.value()
	}
	return out
}

func (f formModal) move(dir int) (Modal, tea.Cmd, bool) {
	n := len(f.fields)
	f.focus = (f.focus + dir + n) % n
	cmd := f.focusCmd()
	return f, cmd, false
}

func (f formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if len(f.fields) == 0 {
		return f, nil, true
	}
	f.fields = append([]formField(nil), f.fields...)

	if km, ok := msg.(tea.KeyMsg); ok {
		current := f.fields[f.focus]
		switch {
		case key.Matches(km, keys.Escape):
			return f, nil, true
		case key.Matches(km, keys.Submit):
			return f, f.submit(f.values()), true
		case key.Matches(km, keys.Next):
			return f.move(1)
		case key.Matches(km, keys.Prev):
			return f.move(-1)
		case key.Matches(km, keys.Confirm) && !current.multiline:
			if f.focus == len(f.fields)-1 {
				return f, f.submit(f.values()), true
			}
			return f.move(1)
		}
	}

	var cmd tea.Cmd
	fld := &f.fields[f.focus]
	if fld.multiline {
		fld.area, cmd = fld.area.Update(msg)
	} else {
		fld.input, cmd = fld.input.Update(msg)
	}
	return f, cmd, false
}

func (f formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.Surface)
	bg := NewBgStyle(theme.Surface)
	inner := min(formWidth+2, maxInt(width-6, 20))

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, inner)) }

	for i, fld := range f.fields {
		labelStyle := styles.MutedText
		marker := "  "
		if i == f.focus {
			labelStyle = styles.AccentText.Bold(true)
			marker = "▌ "
		}
		add(bg.Render(marker, styles.AccentText) + bg.Render(fld.label, labelStyle))
		if fld.multiline {
			for _, l := range strings.Split(fld.area.View(), "\n") {
				add(bg.Spaces(2) + l)
			}
		} else {
			add(bg.Spaces(2) + fld.input.View())
		}
	}
	if f.hint != "" {
		add("")
		add(bg.Render(truncate(f.hint, inner), styles.FaintText))
	}
	add("")
	add(bg.Hints(styles, "tab", "next", "ctrl+s", "submit", "esc", "cancel"))

	return placeModal(theme, f.title, strings.Join(lines, "\n"), theme.BorderFocus, width, height)
}

// openForm shows a form and focuses its first field.
func (m Model) openForm(f formModal) (tea.Model, tea.Cmd) {
	cmd := f.focusCmd()
	m.modal = f
	return m, cmd
}

func (m Model) loginForm() formModal {
	store := m.store
	return newForm("Log in", "", func(v []string) tea.Cmd {
		creds := blogapi.Credentials{Email: strings.TrimSpace(v[0]), Password: v[1]}
		return m.run(state.OpLogin, "", func(ctx context.Context) error {
			_, err := store.Login(ctx, creds)
			return err
		})
	},
		newInput("Email", "", "you@example.com"),
		newSecret("Password"),
	)
}

func (m Model) registerForm() formModal {
	store := m.store
	return newForm("Register", "Log in afterwards with the same email and password.", func(v []string) tea.Cmd {
		reg := blogapi.Registration{
			Username:   strings.TrimSpace(v[0]),
			Email:      strings.TrimSpace(v[1]),
			Password:   v[2],
			Bio:        strings.TrimSpace(v[3]),
			ProfileURL: strings.TrimSpace(v[4]),
		}
		return m.run(state.OpRegister, "", func(ctx context.Context) error {
			_, err := store.Register(ctx, reg)
			return err
		})
	},
		newInput("Username", "", ""),
		newInput("Email", "", ""),
		newSecret("Password"),
		newInput("Bio", "", "optional"),
		newInput("Avatar URL", "", "optional"),
	)
}

func (m Model) profileForm(u blogapi.User) formModal {
	store := m.store
	return newForm("Edit profile", "", func(v []string) tea.Cmd {
		update := blogapi.ProfileUpdate{
			Username:   strings.TrimSpace(v[0]),
			Email:      strings.TrimSpace(v[1]),
			Bio:        strings.TrimSpace(v[2]),
			ProfileURL: strings.TrimSpace(v[3]),
		}
		return m.run(state.OpUpdateProfile, "", func(ctx context.Context) error {
			_, err := store.UpdateProfile(ctx, update)
			return err
		})
	},
		newInput("Username", u.Username, ""),
		newInput("Email", u.Email, ""),
		newInput("Bio", u.Bio, ""),
		newInput("Avatar URL", u.ProfileURL, ""),
	)
}

// searchForm edits the feed filters and reloads page one.
func (m Model) searchForm() formModal {
	store := m.store
	p := m.snapshot.Pagination
	return newForm("Search", "Leave both empty to show every blog.", func(v []string) tea.Cmd {
		query, category := strings.TrimSpace(v[0]), strings.TrimSpace(v[1])
		return m.run(state.OpListBlogs, "", func(ctx context.Context) error {
			store.SetSearchQuery(query)
			store.SetSelectedCategory(category)
			store.SetCurrentPage(1)
			_, err := store.ReloadBlogs(ctx)
			return err
		})
	},
		newInput("Search", p.SearchQuery, "title or content"),
		newInput("Category", p.SelectedCategory, "category name"),
	)
}

// composeForm creates a blog, or edits b when it is non-nil. A thumbnail
// that is not a URL is read from disk and uploaded first.
func (m Model) composeForm(b *blogapi.Blog) formModal {
	store := m.store
	ctx := m.ctx
	title := "New blog"
	var id blogapi.ID
	var blogTitle, cats, thumb, content string
	if b != nil {
		title = "Edit blog"
		id = b.ID
		blogTitle, thumb, content = b.Title, b.Thumbnail, b.Content
		cats = strings.Join(b.CategoryNames(), ", ")
	}

	submit := func(v []string) tea.Cmd {
		return func() tea.Msg {
			input, err := composeInput(ctx, store, v)
			if err != nil {
				if op, ok := storeOp(err); ok {
					return opDoneMsg{op: op, err: err}
				}
				return toastMsg{text: err.Error(), danger: true}
			}
			if id == "" {
				_, err = store.CreateBlog(ctx, input)
				return opDoneMsg{op: state.OpCreateBlog, err: err}
			}
			_, err = store.UpdateBlog(ctx, id, input)
			return opDoneMsg{op: state.OpUpdateBlog, id: id, err: err}
		}
	}

	return newForm(title, "Categories are comma separated. Thumbnail is a URL or an image path.", submit,
		newInput("Title", blogTitle, ""),
		newInput("Categories", cats, "e.g. Travel, Food"),
		newInput("Thumbnail", thumb, "https://… or ~/pictures/cover.png"),
		newArea("Content", content),
	)
}

// uploadError marks a failure already recorded in the store's upload slot.
type uploadError struct{ err error }

func (e uploadError) Error() string { return e.err.Error() }
func (e uploadError) Unwrap() error { return e.err }

func storeOp(err error) (state.Op, bool) {
	var ue uploadError
	if errors.As(err, &ue) {
		return state.OpUpload, true
	}
	return 0, false
}

// composeInput turns compose field values into a BlogInput.
func composeInput(ctx context.Context, store *state.Store, v []string) (blogapi.BlogInput, error) {
	input := blogapi.BlogInput{
		Title:   strings.TrimSpace(v[0]),
		Content: strings.TrimSpace(v[3]),
	}

	cats := store.Snapshot().Categories
	if strings.TrimSpace(v[1]) != "" && !store.Snapshot().CategoriesLoaded {
		loaded, err := store.Categories(ctx)
		if err != nil {
			return input, fmt.Errorf("load categories: %w", err)
		}
		cats = loaded
	}
	ids, err := resolveCategories(cats, v[1])
	if err != nil {
		return input, err
	}
	input.CategoryIDs = ids

	thumb := strings.TrimSpace(v[2])
	if thumb == "" || isURL(thumb) {
		input.Thumbnail = thumb
		return input, nil
	}
	file, err := readImage(thumb)
	if err != nil {
		return input, err
	}
	url, err := store.UploadAsset(ctx, file)
	if err != nil {
		return input, uploadError{err}
	}
	input.Thumbnail = url
	return input, nil
}

// resolveCategories maps comma separated names or ids to category ids.
// Names match case-insensitively; duplicates are dropped.
func resolveCategories(cats []blogapi.Category, input string) ([]blogapi.ID, error) {
	var ids []blogapi.ID
	seen := make(map[blogapi.ID]bool)
	for _, raw := range strings.Split(input, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		var match *blogapi.Category
		for i := range cats {
			if strings.EqualFold(cats[i].Name, name) || string(cats[i].ID) == name {
				match = &cats[i]
				break
			}
		}
		if match == nil {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if !seen[match.ID] {
			seen[match.ID] = true
			ids = append(ids, match.ID)
		}
	}
	return ids, nil
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// readImage loads a local image for upload. A leading ~ expands to the
// home directory.
func readImage(path string) (blogapi.File, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return blogapi.File{}, fmt.Errorf("resolve home: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return blogapi.File{}, fmt.Errorf("read thumbnail: %w", err)
	}
	return blogapi.File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Data:        data,
	}, nil
}

// confirmDelete asks before deleting b.
func (m Model) confirmDelete(b blogapi.Blog) Modal {
	store := m.store
	id := b.ID
	return confirmModal{
		title:  "Delete blog",
		prompt: fmt.Sprintf("Delete %q? This cannot be undone.", truncate(b.Title, 40)),
		onYes: m.run(state.OpDeleteBlog, id, func(ctx context.Context) error {
			return store.DeleteBlog(ctx, id)
		}),
	}
}
