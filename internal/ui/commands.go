package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shelfmark/internal/api"
	"shelfmark/internal/debounce"
	"shelfmark/internal/tracker"
)

// Messages

type bookmarksMsg struct {
	page api.Page[api.Bookmark]
}

type listErrMsg struct {
	err error
}

type statsMsg struct {
	scoped bool
	stats  api.ReadStateStats
}

type categoriesMsg struct {
	names []string
}

type booksMsg struct {
	page api.Page[api.Book]
}

type catalogErrMsg struct {
	err error
}

type detailMsg struct {
	detail api.BookmarkDetail
}

type detailErrMsg struct {
	err error
}

type mutationAction string

const (
	actionCreate mutationAction = "create"
	actionUpdate mutationAction = "update"
	actionDelete mutationAction = "delete"
)

type mutationDoneMsg struct {
	action mutationAction
}

type mutationErrMsg struct {
	action mutationAction
	err    error
}

type keywordSettledMsg struct {
	token   debounce.Token
	keyword string
}

// Commands

// debounceCmd schedules the keyword wakeup one quiet period out. The
// token decides on arrival whether the value still stands.
func (m Model) debounceCmd(token debounce.Token, keyword string) tea.Cmd {
	return tea.Tick(m.cfg.Debounce(), func(time.Time) tea.Msg {
		return keywordSettledMsg{token: token, keyword: keyword}
	})
}

// fetchBookmarksCmd snapshots the current filters and fetches one page.
// The service's no-data error resolves to a valid empty page; every
// other error becomes the list's error state.
func (m Model) fetchBookmarksCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	query := m.filters.Query(m.cfg.PageSize, m.cfg.Sort)
	logger := m.logger
	return func() tea.Msg {
		page, err := client.ListBookmarks(ctx, query)
		if err != nil {
			if api.IsNoData(err) {
				logger.Debug("bookmark list empty", zap.Int("page", query.Page))
				return bookmarksMsg{page: api.EmptyPage[api.Bookmark](query.Size)}
			}
			logger.Warn("bookmark list fetch failed", zap.Error(err))
			return listErrMsg{err: err}
		}
		return bookmarksMsg{page: page}
	}
}

// fetchStatsCmd fetches either the account-wide or the filter-scoped
// stats. Failures zero the stats so counters never show numbers from a
// previous filter set, and never block the list.
func (m Model) fetchStatsCmd(scoped bool) tea.Cmd {
	ctx := m.ctx
	client := m.client
	logger := m.logger
	var scope *api.StatsScope
	if scoped {
		s := m.filters.Scope()
		scope = &s
	}
	return func() tea.Msg {
		stats, err := client.ReadStateStats(ctx, scope)
		if err != nil {
			logger.Warn("stats fetch failed", zap.Bool("scoped", scoped), zap.Error(err))
			return statsMsg{scoped: scoped}
		}
		return statsMsg{scoped: scoped, stats: stats}
	}
}

func (m Model) fetchCategoriesCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		categories, err := client.Categories(ctx)
		if err != nil {
			logger.Warn("categories fetch failed", zap.Error(err))
			return categoriesMsg{}
		}
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
		}
		return categoriesMsg{names: names}
	}
}

func (m Model) fetchBooksCmd(page int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	size := m.cfg.CatalogPageSize
	logger := m.logger
	return func() tea.Msg {
		books, err := client.ListBooks(ctx, page, size)
		if err != nil {
			if api.IsNoData(err) {
				return booksMsg{page: api.EmptyPage[api.Book](size)}
			}
			logger.Warn("catalog fetch failed", zap.Error(err))
			return catalogErrMsg{err: err}
		}
		return booksMsg{page: books}
	}
}

func (m Model) fetchDetailCmd(id int64) tea.Cmd {
	ctx := m.ctx
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		detail, err := client.GetBookmark(ctx, id)
		if err != nil {
			logger.Warn("bookmark detail fetch failed", zap.Int64("id", id), zap.Error(err))
			return detailErrMsg{err: err}
		}
		return detailMsg{detail: detail}
	}
}

func (m Model) createBookmarkCmd(bookID int64) tea.Cmd {
	ctx := m.ctx
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		if err := client.CreateBookmark(ctx, bookID); err != nil {
			logger.Warn("bookmark create failed", zap.Int64("bookId", bookID), zap.Error(err))
			return mutationErrMsg{action: actionCreate, err: err}
		}
		return mutationDoneMsg{action: actionCreate}
	}
}

func (m Model) updateBookmarkCmd(form tracker.EditForm) tea.Cmd {
	ctx := m.ctx
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		if err := client.UpdateBookmark(ctx, form.BookmarkID, form.Payload()); err != nil {
			logger.Warn("bookmark update failed", zap.Int64("id", form.BookmarkID), zap.Error(err))
			return mutationErrMsg{action: actionUpdate, err: err}
		}
		return mutationDoneMsg{action: actionUpdate}
	}
}

func (m Model) deleteBookmarkCmd(id int64) tea.Cmd {
	ctx := m.ctx
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		if err := client.DeleteBookmark(ctx, id); err != nil {
			logger.Warn("bookmark delete failed", zap.Int64("id", id), zap.Error(err))
			return mutationErrMsg{action: actionDelete, err: err}
		}
		return mutationDoneMsg{action: actionDelete}
	}
}

// refetchListAndStats is the consistency restore after any mutation or
// filter change: one list fetch plus both stats instances, all under
// the filters current right now.
func (m Model) refetchListAndStats() tea.Cmd {
	return tea.Batch(
		m.fetchBookmarksCmd(),
		m.fetchStatsCmd(false),
		m.fetchStatsCmd(true),
	)
}
