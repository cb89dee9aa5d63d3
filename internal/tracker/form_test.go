package tracker

import (
	"testing"
	"time"

	"shelfmark/internal/api"
)

var today = time.Date(2026, 8, 31, 15, 4, 5, 0, time.Local)

func sampleBookmark() api.Bookmark {
	return api.Bookmark{
		ID:            3,
		ReadState:     api.ReadStateReading,
		ReadPage:      100,
		StartReadDate: "2024-02-10T00:00:00",
		Book:          api.Book{Title: "클린 코드", TotalPage: 464},
	}
}

func TestNewEditForm_TruncatesDates(t *testing.T) {
	f := NewEditForm(sampleBookmark())
	if f.StartReadDate != "2024-02-10" {
		t.Fatalf("StartReadDate = %q, want date-only", f.StartReadDate)
	}
	if f.State != api.ReadStateReading || f.ReadPage != 100 || f.TotalPage != 464 {
		t.Fatalf("form = %#v, want seeded from bookmark", f)
	}
}

func TestNewEditForm_UnknownStateFallsBackToWish(t *testing.T) {
	b := sampleBookmark()
	b.ReadState = "FINISHED"
	if f := NewEditForm(b); f.State != api.ReadStateWish {
		t.Fatalf("State = %q, want WISH fallback", f.State)
	}
}

func TestWithReadPage_ClampsThenAutoCompletes(t *testing.T) {
	f := NewEditForm(sampleBookmark())

	// Overshoot clamps to the total page, which triggers completion.
	got := f.WithReadPage("9999", today)
	if got.ReadPage != 464 {
		t.Fatalf("ReadPage = %d, want clamped to 464", got.ReadPage)
	}
	if got.State != api.ReadStateRead {
		t.Fatalf("State = %q, want READ after reaching total", got.State)
	}
	if got.EndReadDate != "2026-08-31" {
		t.Fatalf("EndReadDate = %q, want today", got.EndReadDate)
	}

	// Auto-completion ignores the previously selected state.
	wish := f.WithState(api.ReadStateWish).WithReadPage("464", today)
	if wish.State != api.ReadStateRead {
		t.Fatalf("State = %q, want READ regardless of prior state", wish.State)
	}

	// Below the total, the state stays put.
	part := f.WithReadPage("463", today)
	if part.State != api.ReadStateReading || part.ReadPage != 463 || part.EndReadDate != "" {
		t.Fatalf("form = %#v, want no transition below total", part)
	}

	// Garbage and negatives count as page 0.
	if got := f.WithReadPage("abc", today); got.ReadPage != 0 {
		t.Fatalf("ReadPage = %d, want 0 for unparsable input", got.ReadPage)
	}
	if got := f.WithReadPage("-5", today); got.ReadPage != 0 {
		t.Fatalf("ReadPage = %d, want 0 for negative input", got.ReadPage)
	}
}

func TestValidate_PerState(t *testing.T) {
	f := NewEditForm(sampleBookmark())

	if err := f.WithState(api.ReadStateWish).Validate(); err != nil {
		t.Fatalf("WISH Validate = %v, want nil", err)
	}

	reading := f.WithState(api.ReadStateReading)
	if err := reading.Validate(); err != nil {
		t.Fatalf("READING Validate = %v, want nil (start date and page set)", err)
	}
	if err := reading.WithStartDate("").Validate(); err == nil {
		t.Fatalf("READING without start date validated, want error")
	}
	if err := reading.WithReadPage("0", today).Validate(); err == nil {
		t.Fatalf("READING with page 0 validated, want error")
	}
	if err := reading.WithStartDate("02/10/2024").Validate(); err == nil {
		t.Fatalf("READING with malformed date validated, want error")
	}

	read := f.WithState(api.ReadStateRead).WithEndDate("2024-03-01")
	if err := read.Validate(); err != nil {
		t.Fatalf("READ Validate = %v, want nil", err)
	}
	if err := read.WithEndDate("2024-01-01").Validate(); err == nil {
		t.Fatalf("READ with end before start validated, want error")
	}
	if err := read.WithEndDate("").Validate(); err == nil {
		t.Fatalf("READ without end date validated, want error")
	}
	if err := read.WithEndDate("2024-02-10").Validate(); err != nil {
		t.Fatalf("READ with end == start invalid: %v, want valid", err)
	}
}

func TestPayload_ExpandsDatesPerState(t *testing.T) {
	f := NewEditForm(sampleBookmark())

	wish := f.WithState(api.ReadStateWish).Payload()
	if wish.ReadState != api.ReadStateWish || wish.StartReadDate != nil || wish.EndReadDate != nil || wish.ReadPage != 0 {
		t.Fatalf("WISH payload = %#v, want empty progress", wish)
	}

	reading := f.Payload()
	if reading.StartReadDate == nil || *reading.StartReadDate != "2024-02-10T00:00:00" {
		t.Fatalf("READING payload start = %v, want midnight timestamp", reading.StartReadDate)
	}
	if reading.EndReadDate != nil || reading.ReadPage != 100 {
		t.Fatalf("READING payload = %#v, want nil end date and page kept", reading)
	}

	read := f.WithReadPage("464", today).Payload()
	if read.ReadState != api.ReadStateRead || read.EndReadDate == nil || *read.EndReadDate != "2026-08-31T00:00:00" {
		t.Fatalf("READ payload = %#v, want completion date expanded", read)
	}
}

func TestReadingRate(t *testing.T) {
	f := NewEditForm(sampleBookmark())
	if got := f.ReadingRate(); got != 21 {
		t.Fatalf("ReadingRate = %d, want 21", got)
	}
	if got := f.WithReadPage("464", today).ReadingRate(); got != 100 {
		t.Fatalf("ReadingRate = %d, want 100", got)
	}
	f.TotalPage = 0
	if got := f.ReadingRate(); got != 0 {
		t.Fatalf("ReadingRate with no total = %d, want 0", got)
	}
}
