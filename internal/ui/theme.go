package ui

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Unfocused panels
	FocusBg    string // Focused panel

	// List colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Like and bookmark markers
	Liked      string
	Bookmarked string

	// Category chips are colored by hashing the name into this palette.
	CategoryColors []string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	on := func(bg, text string) lipgloss.Style { return fg(text).Background(lipgloss.Color(bg)) }

	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    on(t.Surface, t.Text),
		SurfaceAlt: on(t.SurfaceAlt, t.Text),

		Text:           fg(t.Text),
		MutedText:      fg(t.Muted),
		FaintText:      fg(t.Faint),
		AccentText:     fg(t.Accent),
		SuccessText:    fg(t.Success).Bold(true),
		WarningText:    fg(t.Warning),
		DangerText:     fg(t.Danger).Bold(true),
		InfoText:       fg(t.Info),
		LikedText:      fg(t.Liked),
		BookmarkedText: fg(t.Bookmarked),

		Header:   on(t.Surface, t.Text).Padding(0, 1),
		Footer:   on(t.Surface, t.Muted).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: on(t.SelectionBg, t.SelectionText),

		categoryColors: t.CategoryColors,
		background:     t.Background,
		muted:          t.Muted,
	}
}

// Styles holds the prebuilt styles of one theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text           lipgloss.Style
	MutedText      lipgloss.Style
	FaintText      lipgloss.Style
	AccentText     lipgloss.Style
	SuccessText    lipgloss.Style
	WarningText    lipgloss.Style
	DangerText     lipgloss.Style
	InfoText       lipgloss.Style
	LikedText      lipgloss.Style
	BookmarkedText lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	categoryColors []string
	background     string
	muted          string
}

// CategoryColor returns the chip color for a category name. The same name
// always gets the same color.
func (s Styles) CategoryColor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(s.categoryColors) == 0 {
		return s.muted
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return s.categoryColors[h.Sum32()%uint32(len(s.categoryColors))]
}

// CategoryStyle returns a chip style for the given category name.
func (s Styles) CategoryStyle(name string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.CategoryColor(name))).
		Padding(0, 1)
}

// WithBackground returns a copy of s where every style paints bgColor.
// Text drawn inside a panel must carry the panel color or the terminal
// default shows through between segments.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface, &out.SurfaceAlt,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.LikedText, &out.BookmarkedText,
		&out.Header, &out.Footer, &out.Logo, &out.Selected,
	} {
		*st = st.Background(bg)
	}
	return out
}

// Theme definitions

const defaultThemeName = "Dracula"

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Dracula", "Nightfox", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#21222C", // BGDark
		FocusBg:    "#343746", // BGLight

		SelectionBg:   "#44475A", // Selection
		SelectionText: "#F8F8F2", // Foreground

		Border:      "#44475A",
		BorderMuted: "#21222C",
		BorderFocus: "#BD93F9", // Purple

		Text:    "#F8F8F2",
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",

		Liked:      "#FF79C6", // Pink
		Bookmarked: "#F1FA8C", // Yellow

		CategoryColors: []string{"#BD93F9", "#8BE9FD", "#50FA7B", "#FFB86C", "#FF79C6", "#F1FA8C"},
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderMuted: "#212e3f",
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf",
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		Liked:      "#d67ad2", // pink
		Bookmarked: "#dbc074",

		CategoryColors: []string{"#719cd6", "#63cdcf", "#81b29a", "#f4a261", "#9d79d6", "#dbc074"},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b",
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		Liked:      "#ec4899", // pink-500
		Bookmarked: "#facc15", // yellow-400

		CategoryColors: []string{"#38bdf8", "#8b5cf6", "#22c55e", "#f59e0b", "#ec4899", "#14b8a6"},
	}
}
