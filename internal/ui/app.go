// Package ui provides the Bubble Tea TUI for shelfmark.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shelfmark/internal/api"
	"shelfmark/internal/config"
	"shelfmark/internal/debounce"
	"shelfmark/internal/prefs"
	"shelfmark/internal/tracker"
)

// View represents the current active view.
type View int

const (
	ViewBookmarks View = iota
	ViewCatalog
	ViewDetail
)

// mode represents the input mode layered on top of the current view.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeEdit
	modeConfirmDelete
	modeHelp
)

// stateTabs is the read-state tab order: all plus each state.
var stateTabs = []string{api.FilterAll, string(api.ReadStateRead), string(api.ReadStateReading), string(api.ReadStateWish)}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.Service
	Config    config.Config
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    api.Service
	cfg       config.Config
	logger    *zap.Logger
	prefsPath string

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	view   View
	mode   mode

	// Bookmark list state
	filters     tracker.Filters
	searchInput textinput.Model
	searchGate  debounce.Gate
	bookmarks   api.Page[api.Bookmark]
	hasPage     bool
	loading     bool
	listErr     string
	selected    int
	categories  []string
	categoryIdx int
	tabIdx      int
	globalStats api.ReadStateStats
	scopedStats api.ReadStateStats
	statusErr   string

	// Edit modal state
	form       tracker.EditForm
	formTitle  string
	formInputs [3]textinput.Model
	formFocus  int
	formErr    string

	// Delete confirmation state
	deleteID    int64
	deleteTitle string

	// Catalog state
	catalog        api.Page[api.Book]
	catalogPage    int
	catalogSel     int
	catalogLoading bool
	catalogErr     string

	// Detail state
	detail        api.BookmarkDetail
	hasDetail     bool
	detailLoading bool
	detailErr     string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Placeholder = "책 제목 또는 저자 검색..."
	search.Prompt = "/ "
	search.CharLimit = 80

	m := Model{
		ctx:        ctx,
		client:     opts.Client,
		cfg:        opts.Config,
		logger:     logger,
		prefsPath:  opts.PrefsPath,
		theme:      GetTheme(opts.ThemeName),
		keys:       DefaultKeyMap(),
		filters:    tracker.NewFilters(),
		categories: []string{api.FilterAll},
		loading:    true,
	}
	m.searchInput = search
	m.initFormInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCategoriesCmd(),
		m.refetchListAndStats(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case keywordSettledMsg:
		return m.handleKeywordSettled(msg)

	case bookmarksMsg:
		m.loading = false
		m.listErr = ""
		m.bookmarks = msg.page
		m.hasPage = true
		if m.selected >= len(msg.page.Data) {
			m.selected = max(0, len(msg.page.Data)-1)
		}
		return m, nil

	case listErrMsg:
		m.loading = false
		m.listErr = msg.err.Error()
		m.hasPage = false
		return m, nil

	case statsMsg:
		if msg.scoped {
			m.scopedStats = msg.stats
		} else {
			m.globalStats = msg.stats
		}
		return m, nil

	case categoriesMsg:
		m.categories = append([]string{api.FilterAll}, msg.names...)
		if m.categoryIdx >= len(m.categories) {
			m.categoryIdx = 0
		}
		return m, nil

	case booksMsg:
		m.catalogLoading = false
		m.catalogErr = ""
		m.catalog = msg.page
		if m.catalogSel >= len(msg.page.Data) {
			m.catalogSel = max(0, len(msg.page.Data)-1)
		}
		return m, nil

	case catalogErrMsg:
		m.catalogLoading = false
		m.catalogErr = msg.err.Error()
		return m, nil

	case detailMsg:
		m.detailLoading = false
		m.detailErr = ""
		m.detail = msg.detail
		m.hasDetail = true
		return m, nil

	case detailErrMsg:
		m.detailLoading = false
		m.detailErr = msg.err.Error()
		m.hasDetail = false
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case mutationErrMsg:
		return m.handleMutationErr(msg)
	}

	return m, nil
}

// handleKeywordSettled applies a debounced keyword once its quiet
// period survived. Superseded wakeups are dropped unseen.
func (m Model) handleKeywordSettled(msg keywordSettledMsg) (tea.Model, tea.Cmd) {
	if !m.searchGate.Settled(msg.token) {
		return m, nil
	}
	next := m.filters.WithKeyword(msg.keyword)
	if next == m.filters {
		return m, nil
	}
	m.filters = next
	m.loading = true
	m.listErr = ""
	return m, tea.Batch(m.fetchBookmarksCmd(), m.fetchStatsCmd(true))
}

// handleMutationDone restores list/stats consistency after a mutation:
// a single state change can move the item across pages and stat
// buckets at once, so both are refetched.
func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.statusErr = ""
	var cmds []tea.Cmd
	switch msg.action {
	case actionUpdate:
		m.mode = modeNormal
		m.form = tracker.EditForm{}
		m.formErr = ""
		if m.view == ViewDetail && m.hasDetail {
			m.detailLoading = true
			cmds = append(cmds, m.fetchDetailCmd(m.detail.Bookmark.ID))
		}
	case actionDelete:
		m.mode = modeNormal
		m.deleteID = 0
		m.deleteTitle = ""
	case actionCreate:
		m.view = ViewBookmarks
		m.mode = modeNormal
	}
	m.loading = true
	cmds = append(cmds, m.refetchListAndStats())
	return m, tea.Batch(cmds...)
}

// handleMutationErr keeps whatever is on screen and surfaces the error
// next to it. No refetch happens on failure.
func (m Model) handleMutationErr(msg mutationErrMsg) (tea.Model, tea.Cmd) {
	switch msg.action {
	case actionUpdate:
		m.formErr = msg.err.Error()
	case actionDelete:
		m.mode = modeNormal
		m.deleteID = 0
		m.deleteTitle = ""
		m.statusErr = msg.err.Error()
	case actionCreate:
		m.catalogErr = msg.err.Error()
	}
	return m, nil
}

// handleKey processes keyboard input by mode, then by view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil
	}

	switch m.view {
	case ViewBookmarks:
		return m.handleBookmarksKey(msg)
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}

	return m, nil
}

// handleSearchKey feeds the search input and arms the debounce gate on
// every change. Nothing fetches until a value survives the quiet period.
// Escape abandons the edit: the pending wakeup is cancelled and the
// input snaps back to the effective keyword.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchGate.Cancel()
		m.searchInput.SetValue(m.filters.Keyword)
		m.mode = modeNormal
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.mode = modeNormal
		m.searchInput.Blur()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	token := m.searchGate.Arm()
	return m, tea.Batch(cmd, m.debounceCmd(token, m.searchInput.Value()))
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m, m.deleteBookmarkCmd(m.deleteID)
	case "n", "esc":
		m.mode = modeNormal
		m.deleteID = 0
		m.deleteTitle = ""
		return m, nil
	}
	return m, nil
}

// handleBookmarksKey processes keyboard input for the bookmark list.
func (m Model) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.listErr = ""
		return m, m.refetchListAndStats()

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.bookmarks.Data)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		// Gated: no-op on the last page.
		next := m.filters.NextPage(!m.hasPage || m.bookmarks.IsLast)
		if next == m.filters {
			return m, nil
		}
		m.filters = next
		m.loading = true
		m.listErr = ""
		return m, m.fetchBookmarksCmd()

	case key.Matches(msg, m.keys.PrevPage):
		prev := m.filters.PrevPage()
		if prev == m.filters {
			return m, nil
		}
		m.filters = prev
		m.loading = true
		m.listErr = ""
		return m, m.fetchBookmarksCmd()

	case key.Matches(msg, m.keys.CycleCategory):
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		m.filters = m.filters.WithCategory(m.categories[m.categoryIdx])
		m.loading = true
		m.listErr = ""
		return m, tea.Batch(m.fetchBookmarksCmd(), m.fetchStatsCmd(true))

	case key.Matches(msg, m.keys.NextTab):
		m.tabIdx = (m.tabIdx + 1) % len(stateTabs)
		m.filters = m.filters.WithReadState(stateTabs[m.tabIdx])
		m.loading = true
		m.listErr = ""
		return m, tea.Batch(m.fetchBookmarksCmd(), m.fetchStatsCmd(true))

	case key.Matches(msg, m.keys.PrevTab):
		m.tabIdx = (m.tabIdx - 1 + len(stateTabs)) % len(stateTabs)
		m.filters = m.filters.WithReadState(stateTabs[m.tabIdx])
		m.loading = true
		m.listErr = ""
		return m, tea.Batch(m.fetchBookmarksCmd(), m.fetchStatsCmd(true))

	case key.Matches(msg, m.keys.Edit):
		if b := m.selectedBookmark(); b != nil {
			m.openEditForm(*b)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if b := m.selectedBookmark(); b != nil {
			m.mode = modeConfirmDelete
			m.deleteID = b.ID
			m.deleteTitle = b.Book.Title
		}
		return m, nil

	case key.Matches(msg, m.keys.Catalog):
		m.view = ViewCatalog
		m.catalogPage = 0
		m.catalogSel = 0
		m.catalogLoading = true
		m.catalogErr = ""
		return m, m.fetchBooksCmd(0)

	case key.Matches(msg, m.keys.Open):
		if b := m.selectedBookmark(); b != nil {
			m.view = ViewDetail
			m.detailLoading = true
			m.detailErr = ""
			m.hasDetail = false
			return m, m.fetchDetailCmd(b.ID)
		}
		return m, nil
	}

	return m, nil
}

// handleCatalogKey processes keyboard input for the catalog view.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view = ViewBookmarks
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.catalogSel < len(m.catalog.Data)-1 {
			m.catalogSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.catalogSel > 0 {
			m.catalogSel--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.catalog.IsLast {
			return m, nil
		}
		m.catalogPage++
		m.catalogLoading = true
		return m, m.fetchBooksCmd(m.catalogPage)

	case key.Matches(msg, m.keys.PrevPage):
		if m.catalogPage == 0 {
			return m, nil
		}
		m.catalogPage--
		m.catalogLoading = true
		return m, m.fetchBooksCmd(m.catalogPage)

	case key.Matches(msg, m.keys.Open):
		if m.catalogSel < len(m.catalog.Data) {
			book := m.catalog.Data[m.catalogSel]
			return m, m.createBookmarkCmd(book.ID)
		}
		return m, nil
	}

	return m, nil
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view = ViewBookmarks
		m.hasDetail = false
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.hasDetail {
			m.detailLoading = true
			return m, m.fetchDetailCmd(m.detail.Bookmark.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.hasDetail {
			m.openEditForm(m.detail.Bookmark)
		}
		return m, nil
	}

	return m, nil
}

// selectedBookmark returns the highlighted row, or nil when the page is
// empty.
func (m *Model) selectedBookmark() *api.Bookmark {
	if !m.hasPage || m.selected >= len(m.bookmarks.Data) {
		return nil
	}
	return &m.bookmarks.Data[m.selected]
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.mode {
	case modeHelp:
		return m.renderHelp()
	case modeEdit:
		return m.renderEditForm()
	case modeConfirmDelete:
		return m.renderConfirmDelete()
	}

	switch m.view {
	case ViewCatalog:
		return m.renderCatalog()
	case ViewDetail:
		return m.renderDetail()
	default:
		return m.renderBookmarks()
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
