package api

import (
	"fmt"
	"strings"
)

// ReadState is the lifecycle stage of a bookmark. The wire values are a
// closed set; anything else is rejected at the edges.
type ReadState string

const (
	ReadStateWish    ReadState = "WISH"
	ReadStateReading ReadState = "READING"
	ReadStateRead    ReadState = "READ"
)

// ReadStates lists every state in display order.
var ReadStates = []ReadState{ReadStateRead, ReadStateReading, ReadStateWish}

// Valid reports whether s is one of the known read states.
func (s ReadState) Valid() bool {
	switch s {
	case ReadStateWish, ReadStateReading, ReadStateRead:
		return true
	}
	return false
}

// Label returns the display label used by the service's own frontend.
func (s ReadState) Label() string {
	switch s {
	case ReadStateRead:
		return "읽은 책"
	case ReadStateReading:
		return "읽고 있는 책"
	case ReadStateWish:
		return "읽고 싶은 책"
	}
	return "모든 상태"
}

// ParseReadState validates a raw wire value.
func ParseReadState(value string) (ReadState, error) {
	s := ReadState(strings.TrimSpace(value))
	if !s.Valid() {
		return "", fmt.Errorf("unknown read state %q", value)
	}
	return s, nil
}

// Book is the denormalized catalog snapshot embedded in a bookmark.
type Book struct {
	ID          int64    `json:"id"`
	ISBN13      string   `json:"isbn13"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl"`
	Publisher   string   `json:"publisher"`
	PublishDate string   `json:"publishDate"`
	Category    string   `json:"category"`
	TotalPage   int      `json:"totalPage"`
	AvgRate     float64  `json:"avgRate"`
	Authors     []string `json:"authors"`
}

// Bookmark joins the reader to one catalog entry.
type Bookmark struct {
	ID            int64     `json:"id"`
	BookID        int64     `json:"bookId"`
	Book          Book      `json:"book"`
	ReadState     ReadState `json:"readState"`
	ReadPage      int       `json:"readPage"`
	ReadingRate   int       `json:"readingRate"`
	CreateDate    string    `json:"createDate"`
	StartReadDate string    `json:"startReadDate"`
	EndReadDate   string    `json:"endReadDate"`
}

// Review is the reader's review attached to a finished bookmark.
type Review struct {
	ID      int64   `json:"id"`
	Content string  `json:"content"`
	Rate    float64 `json:"rate"`
	Date    string  `json:"date"`
}

// Note is one reading note attached to a bookmark.
type Note struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Page       string `json:"page"`
	CreateDate string `json:"createDate"`
	ModifyDate string `json:"modifyDate"`
}

// BookmarkDetail is the expanded single-bookmark payload.
type BookmarkDetail struct {
	Bookmark        Bookmark `json:"bookmark"`
	ReadingDuration int      `json:"readingDuration"`
	Review          *Review  `json:"review"`
	Notes           []Note   `json:"notes"`
}

// Category names one catalog category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is one bounded slice of a collection plus pagination metadata.
// Fetch results replace a held Page wholesale; it is never merged in place.
type Page[T any] struct {
	Data          []T  `json:"data"`
	PageNumber    int  `json:"pageNumber"`
	PageSize      int  `json:"pageSize"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	IsLast        bool `json:"isLast"`
}

// EmptyPage is the canonical shape for a legitimately empty result.
func EmptyPage[T any](size int) Page[T] {
	return Page[T]{PageSize: size, IsLast: true}
}

// ReadStateStats aggregates per-state counts and the average rating for
// whatever scope the request carried.
type ReadStateStats struct {
	TotalCount int     `json:"totalCount"`
	AvgRate    float64 `json:"avgRate"`
	Read       int     `json:"READ"`
	Reading    int     `json:"READING"`
	Wish       int     `json:"WISH"`
}

// CountFor returns the counter bucket for one read state.
func (s ReadStateStats) CountFor(state ReadState) int {
	switch state {
	case ReadStateRead:
		return s.Read
	case ReadStateReading:
		return s.Reading
	case ReadStateWish:
		return s.Wish
	}
	return s.TotalCount
}

// UpdateBookmarkRequest is the PUT /api/bookmarks/{id} body. Dates are
// full timestamps (midnight local) or null when unset.
type UpdateBookmarkRequest struct {
	ReadState     ReadState `json:"readState"`
	StartReadDate *string   `json:"startReadDate"`
	EndReadDate   *string   `json:"endReadDate"`
	ReadPage      int       `json:"readPage"`
}

type createBookmarkRequest struct {
	BookID int64 `json:"bookId"`
}
