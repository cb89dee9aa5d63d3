package tracker

import "shelfmark/internal/api"

// Filters holds the bookmark list's query selections. Values are moved
// through pure transitions so every rule about page resets lives here
// and nowhere else: changing category, read state, or the effective
// (debounced) keyword rewinds to the first page; direct page moves do
// not touch the other dimensions.
type Filters struct {
	Keyword   string // effective keyword, already debounced
	Category  string
	ReadState string
	Page      int
}

// NewFilters returns the unfiltered initial selection.
func NewFilters() Filters {
	return Filters{Category: api.FilterAll, ReadState: api.FilterAll}
}

// WithKeyword installs a settled keyword. A changed keyword rewinds the
// page; re-applying the current keyword is a no-op.
func (f Filters) WithKeyword(keyword string) Filters {
	if keyword == f.Keyword {
		return f
	}
	f.Keyword = keyword
	f.Page = 0
	return f
}

// WithCategory selects a category (or api.FilterAll) and rewinds the page.
func (f Filters) WithCategory(category string) Filters {
	f.Category = category
	f.Page = 0
	return f
}

// WithReadState selects a read state (or api.FilterAll) and rewinds the page.
func (f Filters) WithReadState(readState string) Filters {
	f.ReadState = readState
	f.Page = 0
	return f
}

// NextPage advances one page unless the current result was the last.
func (f Filters) NextPage(isLast bool) Filters {
	if !isLast {
		f.Page++
	}
	return f
}

// WithPage jumps to a page directly, leaving every other dimension
// alone. Negative pages snap to the first.
func (f Filters) WithPage(page int) Filters {
	if page < 0 {
		page = 0
	}
	f.Page = page
	return f
}

// PrevPage steps back one page, stopping at the first.
func (f Filters) PrevPage() Filters {
	if f.Page > 0 {
		f.Page--
	}
	return f
}

// Query shapes the selection into a list request.
func (f Filters) Query(size int, sort string) api.BookmarkQuery {
	return api.BookmarkQuery{
		Page:      f.Page,
		Size:      size,
		Sort:      sort,
		Category:  f.Category,
		ReadState: f.ReadState,
		Keyword:   f.Keyword,
	}
}

// Scope shapes the selection into a stats request scope.
func (f Filters) Scope() api.StatsScope {
	return api.StatsScope{
		Category:  f.Category,
		ReadState: f.ReadState,
		Keyword:   f.Keyword,
	}
}
