package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:8080" {
		t.Fatalf("base = %q, want http://example.com:8080", u.String())
	}

	u, err = parseBaseURL("https://example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func envelopeBody(data any) []byte {
	raw, _ := json.Marshal(data)
	body, _ := json.Marshal(map[string]any{
		"resultCode": "200-1",
		"msg":        "ok",
		"data":       json.RawMessage(raw),
	})
	return body
}

func TestClient_ListBookmarksEncodesQueryAndOmitsAll(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotCookie string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookmarks" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		if c, err := r.Cookie(sessionCookie); err == nil {
			gotCookie = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(Page[Bookmark]{
			Data:          []Bookmark{{ID: 7, ReadState: ReadStateReading}},
			PageNumber:    0,
			PageSize:      10,
			TotalPages:    1,
			TotalElements: 1,
			IsLast:        true,
		}))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "session-token")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListBookmarks(ctx, BookmarkQuery{
		Page:      0,
		Size:      10,
		Sort:      "createDate,desc",
		Category:  "all",
		ReadState: "all",
		Keyword:   "",
	})
	if err != nil {
		t.Fatalf("ListBookmarks returned error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != 7 || !page.IsLast {
		t.Fatalf("page = %#v, want 1 item id=7 isLast", page)
	}
	if gotQuery.Get("page") != "0" || gotQuery.Get("size") != "10" || gotQuery.Get("sort") != "createDate,desc" {
		t.Fatalf("query = %v, want page/size/sort encoded", gotQuery)
	}
	if gotQuery.Has("category") || gotQuery.Has("readState") || gotQuery.Has("keyword") {
		t.Fatalf("query = %v, want all/empty dimensions omitted", gotQuery)
	}
	if gotCookie != "session-token" {
		t.Fatalf("session cookie = %q, want %q", gotCookie, "session-token")
	}

	_, err = c.ListBookmarks(ctx, BookmarkQuery{
		Page:      2,
		Size:      10,
		Category:  "프로그래밍",
		ReadState: string(ReadStateRead),
		Keyword:   "클린",
	})
	if err != nil {
		t.Fatalf("ListBookmarks returned error: %v", err)
	}
	if gotQuery.Get("category") != "프로그래밍" ||
		gotQuery.Get("readState") != "READ" ||
		gotQuery.Get("keyword") != "클린" ||
		gotQuery.Get("page") != "2" {
		t.Fatalf("query = %v, want filter dimensions encoded", gotQuery)
	}
}

func TestClient_ReadStateStatsScope(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(ReadStateStats{TotalCount: 12, Read: 4, Reading: 3, Wish: 5, AvgRate: 4.2}))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	stats, err := c.ReadStateStats(context.Background(), nil)
	if err != nil {
		t.Fatalf("ReadStateStats returned error: %v", err)
	}
	if stats.TotalCount != 12 || stats.CountFor(ReadStateWish) != 5 {
		t.Fatalf("stats = %#v, want total=12 wish=5", stats)
	}
	if len(gotQuery) != 0 {
		t.Fatalf("unfiltered query = %v, want empty", gotQuery)
	}

	_, err = c.ReadStateStats(context.Background(), &StatsScope{
		Category:  "all",
		ReadState: string(ReadStateReading),
		Keyword:   "코스모스",
	})
	if err != nil {
		t.Fatalf("ReadStateStats returned error: %v", err)
	}
	if gotQuery.Has("category") || gotQuery.Get("readState") != "READING" || gotQuery.Get("keyword") != "코스모스" {
		t.Fatalf("scoped query = %v, want category omitted and readState/keyword set", gotQuery)
	}
}

func TestClient_Mutations(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCode":"201-1","msg":"created","data":null}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.CreateBookmark(ctx, 42); err != nil {
		t.Fatalf("CreateBookmark returned error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/bookmarks" || !strings.Contains(gotBody, `"bookId":42`) {
		t.Fatalf("create request = %s %s %s", gotMethod, gotPath, gotBody)
	}

	start := "2024-02-10T00:00:00"
	if err := c.UpdateBookmark(ctx, 9, UpdateBookmarkRequest{
		ReadState:     ReadStateReading,
		StartReadDate: &start,
		ReadPage:      150,
	}); err != nil {
		t.Fatalf("UpdateBookmark returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/bookmarks/9" {
		t.Fatalf("update request = %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(gotBody, `"startReadDate":"2024-02-10T00:00:00"`) ||
		!strings.Contains(gotBody, `"endReadDate":null`) {
		t.Fatalf("update body = %s, want midnight start and null end", gotBody)
	}

	if err := c.DeleteBookmark(ctx, 9); err != nil {
		t.Fatalf("DeleteBookmark returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/bookmarks/9" {
		t.Fatalf("delete request = %s %s", gotMethod, gotPath)
	}
}

func TestClient_ServiceErrorsCarryMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/bookmarks":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"resultCode":"404-1","msg":"7번 데이터가 없습니다.","data":null}`))
		case "/api/books":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		case "/api/categories":
			// 2xx status but failing envelope code.
			_, _ = w.Write([]byte(`{"resultCode":"403-1","msg":"권한이 없습니다.","data":null}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.ListBookmarks(ctx, BookmarkQuery{Size: 10})
	if err == nil || err.Error() != "7번 데이터가 없습니다." {
		t.Fatalf("ListBookmarks error = %v, want the service message verbatim", err)
	}
	if !IsNoData(err) {
		t.Fatalf("IsNoData = false for %v, want true", err)
	}

	_, err = c.ListBooks(ctx, 0, 9)
	if err == nil || !strings.Contains(err.Error(), "request failed") {
		t.Fatalf("ListBooks error = %v, want generic fallback", err)
	}
	if IsNoData(err) {
		t.Fatalf("IsNoData = true for %v, want false", err)
	}

	_, err = c.Categories(ctx)
	if err == nil || err.Error() != "권한이 없습니다." {
		t.Fatalf("Categories error = %v, want the service message without the code", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != "403-1" {
		t.Fatalf("error = %#v, want *Error carrying code 403-1", err)
	}
}

func TestClient_GetBookmarkDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookmarks/3" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(BookmarkDetail{
			Bookmark: Bookmark{
				ID:        3,
				ReadState: ReadStateRead,
				Book:      Book{Title: "클린 코드", TotalPage: 464},
			},
			ReadingDuration: 36,
			Review:          &Review{ID: 1, Content: "좋았다", Rate: 4.5},
			Notes:           []Note{{ID: 1, Title: "2장"}},
		}))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	detail, err := c.GetBookmark(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetBookmark returned error: %v", err)
	}
	if detail.Bookmark.Book.Title != "클린 코드" || detail.Review == nil || len(detail.Notes) != 1 {
		t.Fatalf("detail = %#v, want book/review/notes populated", detail)
	}
}

func TestReadState_ParseAndLabels(t *testing.T) {
	if _, err := ParseReadState("WISH"); err != nil {
		t.Fatalf("ParseReadState(WISH) returned error: %v", err)
	}
	if _, err := ParseReadState("FINISHED"); err == nil {
		t.Fatalf("ParseReadState(FINISHED) returned nil error, want error")
	}
	if got := ReadStateRead.Label(); got != "읽은 책" {
		t.Fatalf("Label = %q, want %q", got, "읽은 책")
	}
	if got := ReadState("bogus").Label(); got != "모든 상태" {
		t.Fatalf("Label(bogus) = %q, want fallback label", got)
	}
}
