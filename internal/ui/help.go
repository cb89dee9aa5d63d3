package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp draws the full key reference overlay.
func (m Model) renderHelp() string {
	s := m.theme.Styles()

	groups := []struct {
		title string
		keys  []key.Binding
	}{
		{"탐색", []key.Binding{m.keys.Up, m.keys.Down, m.keys.NextPage, m.keys.PrevPage, m.keys.Open, m.keys.Escape}},
		{"필터", []key.Binding{m.keys.Search, m.keys.NextTab, m.keys.PrevTab, m.keys.CycleCategory}},
		{"책", []key.Binding{m.keys.Catalog, m.keys.Edit, m.keys.Delete, m.keys.Refresh}},
		{"기타", []key.Binding{m.keys.CycleTheme, m.keys.Help, m.keys.Quit}},
	}

	var rows []string
	rows = append(rows, s.Title.Render("단축키"), "")
	for _, g := range groups {
		rows = append(rows, s.AccentText.Render(g.title))
		for _, b := range g.keys {
			h := b.Help()
			rows = append(rows, s.MutedText.Render("  "+pad(h.Key, 12))+s.Text.Render(h.Desc))
		}
		rows = append(rows, "")
	}
	rows = append(rows, s.FaintText.Render("아무 키나 누르면 닫힙니다"))

	return m.centered(s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func pad(v string, width int) string {
	for len([]rune(v)) < width {
		v += " "
	}
	return v
}
