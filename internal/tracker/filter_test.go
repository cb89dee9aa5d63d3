package tracker

import (
	"testing"

	"shelfmark/internal/api"
)

func TestFilters_NonPageChangesRewindPage(t *testing.T) {
	f := NewFilters()
	f = f.NextPage(false).NextPage(false).NextPage(false)
	if f.Page != 3 {
		t.Fatalf("Page = %d, want 3", f.Page)
	}

	if got := f.WithCategory("과학"); got.Page != 0 || got.Category != "과학" {
		t.Fatalf("WithCategory = %#v, want page reset", got)
	}
	if got := f.WithReadState(string(api.ReadStateRead)); got.Page != 0 {
		t.Fatalf("WithReadState = %#v, want page reset", got)
	}
	if got := f.WithKeyword("코스모스"); got.Page != 0 || got.Keyword != "코스모스" {
		t.Fatalf("WithKeyword = %#v, want page reset", got)
	}
}

func TestFilters_SameKeywordKeepsPage(t *testing.T) {
	f := NewFilters().WithKeyword("클린").NextPage(false).NextPage(false)
	if got := f.WithKeyword("클린"); got.Page != 2 {
		t.Fatalf("Page = %d, want 2 (unchanged keyword must not reset)", got.Page)
	}
}

func TestFilters_PageNavigationBounds(t *testing.T) {
	f := NewFilters()
	if got := f.PrevPage(); got.Page != 0 {
		t.Fatalf("PrevPage at 0 = %d, want 0", got.Page)
	}
	if got := f.NextPage(true); got.Page != 0 {
		t.Fatalf("NextPage on last page = %d, want 0", got.Page)
	}
	if got := f.NextPage(false); got.Page != 1 {
		t.Fatalf("NextPage = %d, want 1", got.Page)
	}
	if got := f.WithPage(5); got.Page != 5 {
		t.Fatalf("WithPage(5) = %d, want 5", got.Page)
	}
	if got := f.WithPage(-1); got.Page != 0 {
		t.Fatalf("WithPage(-1) = %d, want 0", got.Page)
	}
}

func TestFilters_QueryAndScopeCarrySelection(t *testing.T) {
	f := NewFilters().WithCategory("역사").WithKeyword("사피엔스")
	q := f.Query(10, "createDate,desc")
	if q.Page != 0 || q.Size != 10 || q.Sort != "createDate,desc" {
		t.Fatalf("query = %#v, want page/size/sort", q)
	}
	if q.Category != "역사" || q.ReadState != api.FilterAll || q.Keyword != "사피엔스" {
		t.Fatalf("query = %#v, want selection carried", q)
	}

	s := f.Scope()
	if s.Category != "역사" || s.ReadState != api.FilterAll || s.Keyword != "사피엔스" {
		t.Fatalf("scope = %#v, want selection carried", s)
	}
}
