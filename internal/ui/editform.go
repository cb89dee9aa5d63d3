package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shelfmark/internal/api"
	"shelfmark/internal/tracker"
)

// Edit form field order: the read-state selector first, then the three
// text inputs.
const (
	fieldState = iota
	fieldPage
	fieldStart
	fieldEnd
)

const (
	inputPage = iota
	inputStart
	inputEnd
)

func (m *Model) initFormInputs() {
	page := textinput.New()
	page.Placeholder = "0"
	page.CharLimit = 6
	page.Width = 10

	start := textinput.New()
	start.Placeholder = tracker.DateLayout
	start.CharLimit = len(tracker.DateLayout)
	start.Width = 14

	end := textinput.New()
	end.Placeholder = tracker.DateLayout
	end.CharLimit = len(tracker.DateLayout)
	end.Width = 14

	m.formInputs = [3]textinput.Model{page, start, end}
}

// openEditForm seeds the modal from a bookmark and focuses the state
// selector.
func (m *Model) openEditForm(b api.Bookmark) {
	m.mode = modeEdit
	m.form = tracker.NewEditForm(b)
	m.formTitle = b.Book.Title
	m.formErr = ""
	m.formFocus = fieldState
	m.syncFormInputs()
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
}

// syncFormInputs pushes the form value back into the text inputs. A
// page edit can rewrite the state and the completion date underneath
// the inputs, so they always re-render from the form.
func (m *Model) syncFormInputs() {
	if m.form.ReadPage > 0 {
		m.formInputs[inputPage].SetValue(strconv.Itoa(m.form.ReadPage))
	} else {
		m.formInputs[inputPage].SetValue("")
	}
	m.formInputs[inputStart].SetValue(m.form.StartReadDate)
	m.formInputs[inputEnd].SetValue(m.form.EndReadDate)
}

// formFields returns the fields the current read state exposes, in tab
// order. WISH tracks no progress, READING has no completion date.
func (m Model) formFields() []int {
	switch m.form.State {
	case api.ReadStateReading:
		return []int{fieldState, fieldPage, fieldStart}
	case api.ReadStateRead:
		return []int{fieldState, fieldPage, fieldStart, fieldEnd}
	}
	return []int{fieldState}
}

// stepFormField moves focus forward or backward within the fields the
// current state exposes.
func (m *Model) stepFormField(delta int) tea.Cmd {
	fields := m.formFields()
	at := 0
	for i, f := range fields {
		if f == m.formFocus {
			at = i
			break
		}
	}
	return m.focusFormField(fields[(at+delta+len(fields))%len(fields)])
}

func (m *Model) focusFormField(field int) tea.Cmd {
	m.formFocus = field
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	switch field {
	case fieldPage:
		return m.formInputs[inputPage].Focus()
	case fieldStart:
		return m.formInputs[inputStart].Focus()
	case fieldEnd:
		return m.formInputs[inputEnd].Focus()
	}
	return nil
}

// handleEditKey processes keyboard input inside the edit modal.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeNormal
		m.form = tracker.EditForm{}
		m.formErr = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if err := m.form.Validate(); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		return m, m.updateBookmarkCmd(m.form)

	case key.Matches(msg, m.keys.NextField):
		cmd := m.stepFormField(1)
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.stepFormField(-1)
		return m, cmd

	case m.formFocus == fieldState && key.Matches(msg, m.keys.CycleState):
		m.form = m.form.WithState(nextReadState(m.form.State, msg.String() == "left"))
		m.syncFormInputs()
		return m, nil
	}

	// Feed the focused input and fold the result into the form.
	var cmd tea.Cmd
	switch m.formFocus {
	case fieldPage:
		m.formInputs[inputPage], cmd = m.formInputs[inputPage].Update(msg)
		m.form = m.form.WithReadPage(m.formInputs[inputPage].Value(), time.Now())
		m.syncFormInputs()
	case fieldStart:
		m.formInputs[inputStart], cmd = m.formInputs[inputStart].Update(msg)
		m.form = m.form.WithStartDate(m.formInputs[inputStart].Value())
	case fieldEnd:
		m.formInputs[inputEnd], cmd = m.formInputs[inputEnd].Update(msg)
		m.form = m.form.WithEndDate(m.formInputs[inputEnd].Value())
	}
	return m, cmd
}

// nextReadState cycles through the read states in display order.
func nextReadState(state api.ReadState, backwards bool) api.ReadState {
	for i, s := range api.ReadStates {
		if s != state {
			continue
		}
		if backwards {
			return api.ReadStates[(i-1+len(api.ReadStates))%len(api.ReadStates)]
		}
		return api.ReadStates[(i+1)%len(api.ReadStates)]
	}
	return api.ReadStateWish
}

// renderEditForm draws the edit modal.
func (m Model) renderEditForm() string {
	s := m.theme.Styles()

	var states string
	for _, rs := range api.ReadStates {
		label := " " + rs.Label() + " "
		if rs == m.form.State {
			states += s.Selected.Render(label)
		} else {
			states += s.MutedText.Render(label)
		}
	}

	marker := func(field int) string {
		if m.formFocus == field {
			return s.AccentText.Render("> ")
		}
		return "  "
	}

	rows := []string{
		s.Title.Render(m.formTitle),
		"",
	}
	// Only the fields the selected state tracks are shown.
	for _, field := range m.formFields() {
		switch field {
		case fieldState:
			rows = append(rows, marker(fieldState)+s.Text.Render("상태     ")+states)
		case fieldPage:
			rows = append(rows, marker(fieldPage)+s.Text.Render("페이지   ")+m.formInputs[inputPage].View()+
				s.MutedText.Render(fmt.Sprintf(" / %d (%d%%)", m.form.TotalPage, m.form.ReadingRate())))
		case fieldStart:
			rows = append(rows, marker(fieldStart)+s.Text.Render("시작일   ")+m.formInputs[inputStart].View())
		case fieldEnd:
			rows = append(rows, marker(fieldEnd)+s.Text.Render("완독일   ")+m.formInputs[inputEnd].View())
		}
	}
	rows = append(rows, "")

	if m.formErr != "" {
		rows = append(rows, s.DangerText.Render(m.formErr))
	} else if m.form.Valid() {
		rows = append(rows, s.SuccessText.Render("enter 저장"))
	} else {
		rows = append(rows, s.MutedText.Render("enter 저장 (입력을 완성하세요)"))
	}
	rows = append(rows, s.FaintText.Render("tab 다음 필드 · ←/→ 상태 변경 · esc 취소"))

	modal := s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return m.centered(modal)
}

// renderConfirmDelete draws the delete confirmation modal.
func (m Model) renderConfirmDelete() string {
	s := m.theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.DangerText.Render("북마크 삭제"),
		"",
		s.Text.Render(m.deleteTitle),
		s.MutedText.Render("이 책을 내 서재에서 삭제할까요?"),
		"",
		s.FaintText.Render("y/enter 삭제 · n/esc 취소"),
	)
	return m.centered(s.Modal.Render(body))
}

// centered places content in the middle of the terminal.
func (m Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
