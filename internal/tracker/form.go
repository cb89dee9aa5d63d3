package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shelfmark/internal/api"
)

// DateLayout is the date-only granularity the form edits in. Submission
// re-expands values to midnight timestamps.
const DateLayout = "2006-01-02"

// EditForm is the state of one bookmark under edit. Which fields matter
// and what "valid" means both depend on the selected read state, and a
// page edit that reaches the book's total page implicitly completes the
// book. Transitions are pure; closing the form without submitting
// discards the value.
type EditForm struct {
	BookmarkID    int64
	TotalPage     int
	State         api.ReadState
	ReadPage      int
	StartReadDate string // DateLayout, empty when unset
	EndReadDate   string
}

// NewEditForm seeds a form from the bookmark being edited, truncating
// the service's timestamps to date-only granularity.
func NewEditForm(b api.Bookmark) EditForm {
	state := b.ReadState
	if !state.Valid() {
		state = api.ReadStateWish
	}
	return EditForm{
		BookmarkID:    b.ID,
		TotalPage:     b.Book.TotalPage,
		State:         state,
		ReadPage:      b.ReadPage,
		StartReadDate: truncateDate(b.StartReadDate),
		EndReadDate:   truncateDate(b.EndReadDate),
	}
}

// WithState selects a read state explicitly.
func (f EditForm) WithState(state api.ReadState) EditForm {
	if state.Valid() {
		f.State = state
	}
	return f
}

// WithReadPage applies a raw page edit. The input is parsed leniently
// (anything unparsable counts as 0), clamped to [0, TotalPage], and only
// then compared against the total: reaching the last page transitions
// the form to READ and stamps the completion date with today.
func (f EditForm) WithReadPage(raw string, today time.Time) EditForm {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		page = 0
	}
	page = clampPage(page, f.TotalPage)
	f.ReadPage = page
	if f.TotalPage > 0 && page == f.TotalPage {
		f.State = api.ReadStateRead
		f.EndReadDate = today.Format(DateLayout)
	}
	return f
}

// WithStartDate installs a raw start date value.
func (f EditForm) WithStartDate(raw string) EditForm {
	f.StartReadDate = strings.TrimSpace(raw)
	return f
}

// WithEndDate installs a raw completion date value.
func (f EditForm) WithEndDate(raw string) EditForm {
	f.EndReadDate = strings.TrimSpace(raw)
	return f
}

// ReadingRate derives the display percentage for the current page.
func (f EditForm) ReadingRate() int {
	if f.TotalPage <= 0 {
		return 0
	}
	rate := f.ReadPage * 100 / f.TotalPage
	return clampPage(rate, 100)
}

// Validate is the submission gate. WISH needs nothing; READING needs a
// start date and a non-zero page; READ needs both dates with the
// completion date not before the start date.
func (f EditForm) Validate() error {
	switch f.State {
	case api.ReadStateWish:
		return nil
	case api.ReadStateReading:
		if err := checkDate(f.StartReadDate, "시작일"); err != nil {
			return err
		}
		if f.ReadPage <= 0 {
			return fmt.Errorf("읽은 페이지를 입력해주세요")
		}
		return nil
	case api.ReadStateRead:
		if err := checkDate(f.StartReadDate, "시작일"); err != nil {
			return err
		}
		if err := checkDate(f.EndReadDate, "완독일"); err != nil {
			return err
		}
		// ISO dates compare correctly as strings.
		if f.EndReadDate < f.StartReadDate {
			return fmt.Errorf("완독일은 시작일 이후여야 합니다")
		}
		return nil
	}
	return fmt.Errorf("unknown read state %q", f.State)
}

// Valid reports whether submission is allowed.
func (f EditForm) Valid() bool {
	return f.Validate() == nil
}

// Payload shapes the form into the update request, re-expanding dates to
// midnight timestamps and nulling out whatever the target state ignores.
func (f EditForm) Payload() api.UpdateBookmarkRequest {
	req := api.UpdateBookmarkRequest{
		ReadState: f.State,
		ReadPage:  f.ReadPage,
	}
	switch f.State {
	case api.ReadStateWish:
		req.ReadPage = 0
	case api.ReadStateReading:
		req.StartReadDate = midnight(f.StartReadDate)
	case api.ReadStateRead:
		req.StartReadDate = midnight(f.StartReadDate)
		req.EndReadDate = midnight(f.EndReadDate)
	}
	return req
}

func clampPage(page, total int) int {
	if page < 0 {
		return 0
	}
	if total > 0 && page > total {
		return total
	}
	return page
}

func truncateDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > len(DateLayout) {
		return value[:len(DateLayout)]
	}
	return value
}

func checkDate(value, field string) error {
	if value == "" {
		return fmt.Errorf("%s을 입력해주세요", field)
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%s 형식이 올바르지 않습니다 (YYYY-MM-DD)", field)
	}
	return nil
}

func midnight(date string) *string {
	if date == "" {
		return nil
	}
	ts := date + "T00:00:00"
	return &ts
}
