package ui

import (
	"github.com/charmbracelet/lipgloss"

	"shelfmark/internal/api"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text   string
	Muted  string
	Faint  string
	Accent string

	Success string
	Info    string
	Warning string
	Danger  string

	Border        string
	BorderFocus   string
	SelectionBg   string
	SelectionText string
}

var themes = []Theme{
	{
		Name:          "Hanok",
		Background:    "#1a1b26",
		Surface:       "#24283b",
		Text:          "#c0caf5",
		Muted:         "#565f89",
		Faint:         "#3b4261",
		Accent:        "#bb9af7",
		Success:       "#9ece6a",
		Info:          "#7aa2f7",
		Warning:       "#e0af68",
		Danger:        "#f7768e",
		Border:        "#3b4261",
		BorderFocus:   "#7aa2f7",
		SelectionBg:   "#364a82",
		SelectionText: "#c0caf5",
	},
	{
		Name:          "Paper",
		Background:    "#faf4ed",
		Surface:       "#fffaf3",
		Text:          "#575279",
		Muted:         "#9893a5",
		Faint:         "#dfdad9",
		Accent:        "#907aa9",
		Success:       "#56949f",
		Info:          "#286983",
		Warning:       "#ea9d34",
		Danger:        "#b4637a",
		Border:        "#dfdad9",
		BorderFocus:   "#286983",
		SelectionBg:   "#dfdad9",
		SelectionText: "#575279",
	},
}

// ThemeNames returns the known theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// GetTheme looks a theme up by name, defaulting to the first.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name following the given one in cycle order.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// StateColor returns the badge color for a read state.
func (t Theme) StateColor(state api.ReadState) string {
	switch state {
	case api.ReadStateRead:
		return t.Success
	case api.ReadStateReading:
		return t.Info
	case api.ReadStateWish:
		return t.Muted
	}
	return t.Muted
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Title      lipgloss.Style
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style

	SuccessText lipgloss.Style
	InfoText    lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Selected lipgloss.Style
	TabBar   lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style

	StatCard lipgloss.Style
	Modal    lipgloss.Style
	Footer   lipgloss.Style
}

// Styles compiles the theme into lipgloss styles.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(t.Border)),
		TabOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 2),
		TabOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 2),

		StatCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 2),

		Modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 3),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
	}
}

// StateBadge renders a colored read-state label.
func (t Theme) StateBadge(state api.ReadState) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.StateColor(state))).
		Render(state.Label())
}
