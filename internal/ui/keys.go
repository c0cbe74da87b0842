package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewFeed       key.Binding
	ViewCategories key.Binding
	ViewBookmarks  key.Binding
	ViewProfile    key.Binding
	ViewActivity   key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding

	// Listing actions
	Open         key.Binding
	Search       key.Binding
	ClearFilters key.Binding
	Reload       key.Binding
	Author       key.Binding

	// Engagement
	Like     key.Binding
	Bookmark key.Binding

	// Authoring
	Compose key.Binding
	Edit    key.Binding
	Delete  key.Binding

	// Session
	Login       key.Binding
	Register    key.Binding
	Logout      key.Binding
	EditProfile key.Binding

	// Activity
	ToggleFollow key.Binding

	// Forms
	Confirm key.Binding
	Submit  key.Binding
	Next    key.Binding
	Prev    key.Binding
}

// DefaultKeyMap returns the default key bindings. Confirm and Open share
// enter; Next and Tab share tab, and forms see keys before views do.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit:       bind("q", "Quit", "ctrl+c", "q"),
		Help:       bind("?", "Toggle help", "?"),
		CycleTheme: bind("T", "Cycle theme", "T"),
		Tab:        bind("tab", "Cycle views", "tab"),
		ShiftTab:   bind("shift+tab", "Cycle views (reverse)", "shift+tab"),
		Escape:     bind("esc", "Back", "esc"),

		ViewFeed:       bind("1", "Feed", "1"),
		ViewCategories: bind("2", "Categories", "2"),
		ViewBookmarks:  bind("3", "Bookmarks", "3"),
		ViewProfile:    bind("4", "Profile", "4"),
		ViewActivity:   bind("5", "Activity", "5"),

		Up:           bind("k/up", "Move up", "k", "up"),
		Down:         bind("j/down", "Move down", "j", "down"),
		Top:          bind("g", "Go to top", "g", "home"),
		Bottom:       bind("G", "Go to bottom", "G", "end"),
		PageUp:       bind("pgup", "Page up", "pgup"),
		PageDown:     bind("pgdown", "Page down", "pgdown"),
		HalfPageUp:   bind("ctrl+u", "Half page up", "ctrl+u"),
		HalfPageDown: bind("ctrl+d", "Half page down", "ctrl+d"),
		NextPage:     bind("]", "Next page", "]"),
		PrevPage:     bind("[", "Previous page", "["),

		Open:         bind("enter", "Open", "enter"),
		Search:       bind("/", "Search", "/"),
		ClearFilters: bind("x", "Clear filters", "x"),
		Reload:       bind("r", "Reload", "r"),
		Author:       bind("a", "Author page", "a"),

		Like:     bind("l", "Like", "l"),
		Bookmark: bind("b", "Bookmark", "b"),

		Compose: bind("w", "Write a blog", "w"),
		Edit:    bind("e", "Edit blog", "e"),
		Delete:  bind("D", "Delete blog", "D"),

		Login:       bind("i", "Log in", "i"),
		Register:    bind("R", "Register", "R"),
		Logout:      bind("o", "Log out", "o"),
		EditProfile: bind("u", "Edit profile", "u"),

		ToggleFollow: bind("Space", "Toggle follow mode", " "),

		Confirm: bind("enter", "Confirm", "enter"),
		Submit:  bind("ctrl+s", "Submit form", "ctrl+s"),
		Next:    bind("tab", "Next field", "tab"),
		Prev:    bind("shift+tab", "Previous field", "shift+tab"),
	}
}

// bind builds a binding whose help entry is helpKey and desc.
func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewFeed, k.ViewCategories, k.ViewBookmarks, k.ViewProfile, k.ViewActivity, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.Open, k.Search, k.ClearFilters, k.Reload, k.NextPage, k.PrevPage, k.Author},
		{k.Like, k.Bookmark},
		{k.Compose, k.Edit, k.Delete},
		{k.Login, k.Register, k.Logout, k.EditProfile},
		{k.ToggleFollow},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
