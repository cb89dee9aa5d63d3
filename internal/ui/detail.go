package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelfmark/internal/api"
)

// renderDetail draws the read-only single-bookmark view.
func (m Model) renderDetail() string {
	s := m.theme.Styles()

	if m.detailLoading {
		return s.MutedText.Render("불러오는 중...")
	}
	if m.detailErr != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.DangerText.Render(m.detailErr),
			s.Footer.Render("esc 돌아가기"),
		)
	}
	if !m.hasDetail {
		return s.Footer.Render("esc 돌아가기")
	}

	b := m.detail.Bookmark
	book := b.Book

	header := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(book.Title),
		s.MutedText.Render(strings.Join(book.Authors, ", ")+" · "+book.Publisher),
		m.theme.StateBadge(b.ReadState),
	)

	var facts []string
	facts = append(facts, fmt.Sprintf("분류      %s", book.Category))
	facts = append(facts, fmt.Sprintf("ISBN      %s", book.ISBN13))
	facts = append(facts, fmt.Sprintf("출간일    %s", book.PublishDate))
	if b.ReadState != api.ReadStateWish {
		facts = append(facts, fmt.Sprintf("진행도    %d/%d쪽 (%d%%)", b.ReadPage, book.TotalPage, b.ReadingRate))
		facts = append(facts, fmt.Sprintf("시작일    %s", orDash(b.StartReadDate)))
	}
	if b.ReadState == api.ReadStateRead {
		facts = append(facts, fmt.Sprintf("완독일    %s", orDash(b.EndReadDate)))
		facts = append(facts, fmt.Sprintf("독서 기간  %d일", m.detail.ReadingDuration))
	}
	info := s.Text.Render(strings.Join(facts, "\n"))

	sections := []string{header, "", info}

	if r := m.detail.Review; r != nil {
		sections = append(sections, "",
			s.AccentText.Render(fmt.Sprintf("리뷰 ★%.1f", r.Rate)),
			s.Text.Render(r.Content),
		)
	}

	if len(m.detail.Notes) > 0 {
		sections = append(sections, "", s.AccentText.Render(fmt.Sprintf("독서 노트 %d개", len(m.detail.Notes))))
		for _, n := range m.detail.Notes {
			title := n.Title
			if n.Page != "" {
				title += s.MutedText.Render(" (p." + n.Page + ")")
			}
			sections = append(sections,
				s.Text.Render("· "+title),
				s.MutedText.Render("  "+truncate(n.Content, 80)),
			)
		}
	}

	sections = append(sections, "", s.Footer.Render("e 수정 · r 새로고침 · esc 돌아가기"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	if len(v) > 10 {
		return v[:10]
	}
	return v
}
