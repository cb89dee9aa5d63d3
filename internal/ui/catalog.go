package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderCatalog draws the book catalog for picking a new bookmark.
func (m Model) renderCatalog() string {
	s := m.theme.Styles()

	header := s.Title.Render("책 담기") + s.MutedText.Render("  카탈로그에서 골라 내 서재에 추가")

	var body string
	switch {
	case m.catalogLoading:
		body = s.MutedText.Render("\n  불러오는 중...\n")
	case m.catalogErr != "":
		body = s.DangerText.Render("\n  " + m.catalogErr + "\n")
	case len(m.catalog.Data) == 0:
		body = s.MutedText.Render("\n  등록된 책이 없습니다\n")
	default:
		var rows []string
		for i, b := range m.catalog.Data {
			authors := strings.Join(b.Authors, ", ")
			line := fmt.Sprintf(" %-40s %-20s %-14s ★%.1f", truncate(b.Title, 40), truncate(authors, 20), truncate(b.Category, 14), b.AvgRate)
			if i == m.catalogSel {
				rows = append(rows, s.Selected.Render(">"+line))
			} else {
				rows = append(rows, s.Text.Render(" "+line))
			}
		}
		body = strings.Join(rows, "\n")
	}

	var page string
	if m.catalog.TotalPages > 0 {
		page = fmt.Sprintf("%d / %d 페이지", m.catalog.PageNumber+1, m.catalog.TotalPages)
	} else {
		page = fmt.Sprintf("%d 페이지", m.catalogPage+1)
	}
	footer := s.Footer.Render(page + "    j/k 이동 · n/p 페이지 · enter 담기 · esc 돌아가기")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}
