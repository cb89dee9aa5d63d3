package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Service defines the operations the reading-tracker backend exposes.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	ListBookmarks(ctx context.Context, query BookmarkQuery) (Page[Bookmark], error)
	GetBookmark(ctx context.Context, id int64) (BookmarkDetail, error)
	CreateBookmark(ctx context.Context, bookID int64) error
	UpdateBookmark(ctx context.Context, id int64, req UpdateBookmarkRequest) error
	DeleteBookmark(ctx context.Context, id int64) error
	ReadStateStats(ctx context.Context, scope *StatsScope) (ReadStateStats, error)
	Categories(ctx context.Context) ([]Category, error)
	ListBooks(ctx context.Context, page, size int) (Page[Book], error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the reading-tracker HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	session   string
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultUserAgent = "shelfmark/0.1"
	requestTimeout   = 10 * time.Second

	// Session cookie name used by the backend.
	sessionCookie = "JSESSIONID"

	// The backend reports a legitimately empty result set through its
	// error channel with this message fragment, not through an empty
	// page payload. Callers translate it via IsNoData.
	noDataMarker = "데이터가 없습니다"
)

// FilterAll is never sent on the wire; a dimension set to it is omitted
// from the outbound query to request that dimension unfiltered.
const FilterAll = "all"

// NewClient builds a Client for the given base URL. An empty session is
// allowed; requests are then sent unauthenticated.
func NewClient(baseURL, session string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		session:   session,
		userAgent: defaultUserAgent,
	}, nil
}

// BookmarkQuery configures GET /api/bookmarks requests.
type BookmarkQuery struct {
	Page      int
	Size      int
	Sort      string
	Category  string
	ReadState string
	Keyword   string
}

// ListBookmarks retrieves one page of the reader's bookmark list.
func (c *Client) ListBookmarks(ctx context.Context, query BookmarkQuery) (Page[Bookmark], error) {
	if c == nil {
		return Page[Bookmark]{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	values.Set("size", strconv.Itoa(query.Size))
	if sort := strings.TrimSpace(query.Sort); sort != "" {
		values.Set("sort", sort)
	}
	addScopeValues(values, query.Category, query.ReadState, query.Keyword)

	rel := &url.URL{Path: "/api/bookmarks", RawQuery: values.Encode()}
	var payload Page[Bookmark]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Page[Bookmark]{}, err
	}
	return payload, nil
}

// GetBookmark retrieves one bookmark with its review and notes.
func (c *Client) GetBookmark(ctx context.Context, id int64) (BookmarkDetail, error) {
	if c == nil {
		return BookmarkDetail{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: fmt.Sprintf("/api/bookmarks/%d", id)}
	var payload BookmarkDetail
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return BookmarkDetail{}, err
	}
	return payload, nil
}

// CreateBookmark adds a catalog entry to the reader's list.
func (c *Client) CreateBookmark(ctx context.Context, bookID int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/bookmarks"}
	return c.do(ctx, http.MethodPost, rel, createBookmarkRequest{BookID: bookID}, nil)
}

// UpdateBookmark replaces the mutable reading state of one bookmark.
func (c *Client) UpdateBookmark(ctx context.Context, id int64, req UpdateBookmarkRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: fmt.Sprintf("/api/bookmarks/%d", id)}
	return c.do(ctx, http.MethodPut, rel, req, nil)
}

// DeleteBookmark removes one bookmark.
func (c *Client) DeleteBookmark(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: fmt.Sprintf("/api/bookmarks/%d", id)}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// StatsScope narrows a stats request to the current filter selection.
// A nil scope requests the unfiltered, account-wide numbers.
type StatsScope struct {
	Category  string
	ReadState string
	Keyword   string
}

// ReadStateStats retrieves per-state counts and the average rating.
func (c *Client) ReadStateStats(ctx context.Context, scope *StatsScope) (ReadStateStats, error) {
	if c == nil {
		return ReadStateStats{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if scope != nil {
		addScopeValues(values, scope.Category, scope.ReadState, scope.Keyword)
	}
	rel := &url.URL{Path: "/api/bookmarks/read-states", RawQuery: values.Encode()}
	var payload ReadStateStats
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ReadStateStats{}, err
	}
	return payload, nil
}

// Categories retrieves the catalog category names.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/categories"}
	var payload []Category
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListBooks retrieves one page of the shared catalog.
func (c *Client) ListBooks(ctx context.Context, page, size int) (Page[Book], error) {
	if c == nil {
		return Page[Book]{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("size", strconv.Itoa(size))
	rel := &url.URL{Path: "/api/books", RawQuery: values.Encode()}
	var payload Page[Book]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Page[Book]{}, err
	}
	return payload, nil
}

// addScopeValues encodes the shared filter dimensions. "all" (or empty)
// means unfiltered and is omitted entirely rather than sent literally.
func addScopeValues(values url.Values, category, readState, keyword string) {
	if category = strings.TrimSpace(category); category != "" && category != FilterAll {
		values.Set("category", category)
	}
	if readState = strings.TrimSpace(readState); readState != "" && readState != FilterAll {
		values.Set("readState", readState)
	}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		values.Set("keyword", keyword)
	}
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	ResultCode string          `json:"resultCode"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func (e envelope) failed() bool {
	return e.ResultCode != "" && !strings.HasPrefix(e.ResultCode, "2")
}

// Error is a failure reported by the service, either as a non-2xx status
// or as a failing resultCode inside a 2xx envelope.
type Error struct {
	Status int
	Code   string
	Msg    string
}

// Error returns the service message verbatim; Status and Code stay on
// the struct for logging.
func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Msg)
	if msg == "" {
		msg = "request failed"
	}
	return msg
}

// IsNoData reports whether err is the service's empty-result signal.
// The backend announces legitimate emptiness through its error channel,
// so list callers treat this as a valid empty page instead of a failure.
func IsNoData(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), noDataMarker)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &Error{Status: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || env.failed() {
		return &Error{Status: resp.StatusCode, Code: env.ResultCode, Msg: env.Msg}
	}
	if dest == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("response %s carried no data", rel.Path)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
