package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelfmark/internal/api"
)

// renderBookmarks draws the main list view: stat cards, the search bar,
// the read-state tabs, the rows, and the pagination footer.
func (m Model) renderBookmarks() string {
	s := m.theme.Styles()

	sections := []string{
		m.renderStatCards(s),
		m.renderSearchBar(s),
		m.renderTabs(s),
		m.renderRows(s),
		m.renderListFooter(s),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatCards shows the account-wide counters. These never follow
// the list filters.
func (m Model) renderStatCards(s Styles) string {
	cards := []string{
		s.StatCard.Render(fmt.Sprintf("전체\n%s", s.Title.Render(fmt.Sprintf("%d", m.globalStats.TotalCount)))),
	}
	for _, state := range api.ReadStates {
		count := m.globalStats.CountFor(state)
		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.StateColor(state))).
			Bold(true).
			Render(fmt.Sprintf("%d", count))
		cards = append(cards, s.StatCard.Render(state.Label()+"\n"+badge))
	}
	cards = append(cards, s.StatCard.Render(fmt.Sprintf("평균 별점\n%s", s.WarningText.Render(fmt.Sprintf("%.1f", m.globalStats.AvgRate)))))
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderSearchBar(s Styles) string {
	var category string
	if m.filters.Category != api.FilterAll {
		category = s.AccentText.Render(" [" + m.filters.Category + "]")
	}
	if m.mode == modeSearch {
		return m.searchInput.View() + category
	}
	if m.filters.Keyword != "" {
		return s.MutedText.Render("/ ") + s.Text.Render(m.filters.Keyword) + category
	}
	return s.FaintText.Render("/ 검색") + category
}

// renderTabs draws the read-state tabs with the filter-scoped counts.
func (m Model) renderTabs(s Styles) string {
	var tabs []string
	for i, tab := range stateTabs {
		label := "전체"
		count := m.scopedStats.TotalCount
		if tab != api.FilterAll {
			state := api.ReadState(tab)
			label = state.Label()
			count = m.scopedStats.CountFor(state)
		}
		text := fmt.Sprintf("%s %d", label, count)
		if i == m.tabIdx {
			tabs = append(tabs, s.TabOn.Render(text))
		} else {
			tabs = append(tabs, s.TabOff.Render(text))
		}
	}
	return s.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderRows draws the page body. Loading, error, and empty are
// mutually exclusive states.
func (m Model) renderRows(s Styles) string {
	if m.loading {
		return s.MutedText.Render("\n  불러오는 중...\n")
	}
	if m.listErr != "" {
		return s.DangerText.Render("\n  " + m.listErr + "\n")
	}
	if !m.hasPage || len(m.bookmarks.Data) == 0 {
		return s.MutedText.Render("\n  조건에 맞는 책이 없습니다\n")
	}

	var rows []string
	for i, b := range m.bookmarks.Data {
		rows = append(rows, m.renderRow(s, b, i == m.selected))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(s Styles, b api.Bookmark, selected bool) string {
	badge := m.theme.StateBadge(b.ReadState)

	title := b.Book.Title
	authors := strings.Join(b.Book.Authors, ", ")

	var progress string
	switch b.ReadState {
	case api.ReadStateReading:
		progress = fmt.Sprintf("%d/%d쪽 (%d%%)", b.ReadPage, b.Book.TotalPage, b.ReadingRate)
	case api.ReadStateRead:
		progress = "완독"
	}

	line := fmt.Sprintf(" %-14s %-40s %-20s %s", badge, truncate(title, 40), truncate(authors, 20), progress)
	if selected {
		return s.Selected.Render(">" + line)
	}
	return s.Text.Render(" " + line)
}

// renderListFooter draws pagination plus the key hints.
func (m Model) renderListFooter(s Styles) string {
	var page string
	if m.hasPage && m.bookmarks.TotalPages > 0 {
		page = fmt.Sprintf("%d / %d 페이지 · 총 %d권", m.bookmarks.PageNumber+1, m.bookmarks.TotalPages, m.bookmarks.TotalElements)
	} else {
		page = fmt.Sprintf("%d 페이지", m.filters.Page+1)
	}

	hints := "j/k 이동 · n/p 페이지 · / 검색 · tab 상태 · c 분류 · e 수정 · d 삭제 · a 추가 · enter 상세 · ? 도움말"
	footer := page + "    " + hints
	if m.statusErr != "" {
		footer = s.DangerText.Render(m.statusErr) + "    " + footer
	}
	return s.Footer.Render(footer)
}

// truncate shortens a string to width runes with an ellipsis.
func truncate(v string, width int) string {
	runes := []rune(v)
	if len(runes) <= width {
		return v
	}
	return string(runes[:width-1]) + "…"
}
