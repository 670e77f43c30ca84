package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tunes/internal/catalog"
	"github.com/mmcdole/tunes/internal/domain"
	"github.com/mmcdole/tunes/internal/tui/components"
	"github.com/mmcdole/tunes/internal/tui/styles"
)

// ApplicationState represents the current screen
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota // search bar + results grid
	StateDetail                           // full-screen detail of one result
	StateHelp
)

// Focus tracks which part of the browsing screen receives keys
type Focus int

const (
	FocusInput Focus = iota
	FocusGrid
)

// Defaults used when Options leave a field zero
const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultFetchTimeout  = 30 * time.Second
	DefaultStatusTimeout = 3 * time.Second
)

// Opener hands a URL to an external program
type Opener interface {
	Launch(url string, isPreview bool) error
}

// History is the recent-search store behind the search bar suggestions
type History interface {
	Record(term string, resultCount int) error
	Delete(term string) error
	Suggest(input string, limit int) []domain.HistoryEntry
}

// Options configures the model
type Options struct {
	Debounce      time.Duration
	FetchTimeout  time.Duration
	StatusTimeout time.Duration
	GridColumns   int
	InitialQuery  string
	HideDetail    bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Focus Focus
	Ready bool

	// Services
	Controller *catalog.Controller
	Opener     Opener
	History    History // nil when history is disabled
	logger     *slog.Logger

	// UI Components
	SearchBar components.SearchBar
	Grid      components.Grid
	Detail    components.Detail
	Spinner   spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusID    int
	ShowDetail  bool // side detail pane next to the grid

	debounce      time.Duration
	fetchTimeout  time.Duration
	statusTimeout time.Duration
	debounceSeq   int
	recordGen     uint64 // generation whose first page goes to history
	initialQuery  string
}

// NewModel creates a new application model
func NewModel(ctrl *catalog.Controller, opener Opener, history History, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = DefaultStatusTimeout
	}

	sb := components.NewSearchBar()
	sb.Focus()
	if opts.InitialQuery != "" {
		sb.SetValue(opts.InitialQuery)
		sb.QueryChanged()
	}

	m := Model{
		State:         StateBrowsing,
		Focus:         FocusInput,
		Controller:    ctrl,
		Opener:        opener,
		History:       history,
		logger:        logger,
		SearchBar:     sb,
		Grid:          components.NewGrid(opts.GridColumns),
		Detail:        components.NewDetail(),
		Spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		ShowDetail:    !opts.HideDetail,
		debounce:      opts.Debounce,
		fetchTimeout:  opts.FetchTimeout,
		statusTimeout: opts.StatusTimeout,
		initialQuery:  opts.InitialQuery,
	}
	m.refreshSuggestions()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.Spinner.Tick}
	if m.initialQuery != "" {
		seq := m.debounceSeq
		cmds = append(cmds, func() tea.Msg { return DebounceMsg{Seq: seq} })
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.maybeLoadMore()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case DebounceMsg:
		if msg.Seq != m.debounceSeq {
			return m, nil
		}
		return m, m.startQuery(m.SearchBar.Value(), false)

	case PageLoadedMsg:
		return m, m.applyPage(msg.Result)

	case LaunchedMsg:
		text := "Opened store page: " + msg.Title
		if msg.Preview {
			text = "Playing preview: " + msg.Title
		}
		return m, m.setStatus(text, false)

	case HistoryRecordedMsg:
		m.refreshSuggestions()
		m.updateLayout()
		return m, nil

	case ErrMsg:
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// cursor blink and other textinput internals
	if m.Focus == FocusInput {
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateDetail:
		switch {
		case key.Matches(msg, Keys.Back):
			m.closeDetail()
			return m, nil
		case key.Matches(msg, Keys.Launch):
			return m, m.launch(m.Detail.Item())
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	}

	if m.Focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleGridKey(msg)
}

// handleInputKey handles keys while the search bar has focus
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		text := m.SearchBar.Submission()
		m.SearchBar.SetValue(text)
		m.SearchBar.QueryChanged()
		m.debounceSeq++ // drop any pending debounce
		cmd := m.startQuery(text, true)
		if cmd != nil {
			m.focusGrid()
		}
		return m, cmd

	case key.Matches(msg, Keys.FocusGrid), key.Matches(msg, Keys.Back) && msg.String() == "esc":
		m.focusGrid()
		return m, nil

	case key.Matches(msg, Keys.ClearHistory):
		if m.History == nil {
			return m, nil
		}
		if term := m.SearchBar.Submission(); term != m.SearchBar.Value() {
			return m, DeleteHistoryCmd(m.History, term)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	cmds = append(cmds, cmd)

	if m.SearchBar.QueryChanged() {
		m.debounceSeq++
		cmds = append(cmds, DebounceCmd(m.debounceSeq, m.debounce))
		m.refreshSuggestions()
		m.updateLayout()
	}
	return m, tea.Batch(cmds...)
}

// handleGridKey handles keys while the results grid has focus
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing into the filter swallows everything
	if m.Grid.IsFilterTyping() {
		return m.updateGrid(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.FocusInput):
		m.focusInput()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if !m.Grid.IsFiltering() {
			m.Grid.ToggleFilter()
			return m, nil
		}
		return m.updateGrid(msg)

	case key.Matches(msg, Keys.Open):
		if item, ok := m.Grid.SelectedItem(); ok {
			m.openDetail(item)
		}
		return m, nil

	case key.Matches(msg, Keys.Launch):
		item, _ := m.Grid.SelectedItem()
		return m, m.launch(item)

	case key.Matches(msg, Keys.ToggleDetail):
		m.ShowDetail = !m.ShowDetail
		m.updateLayout()
		return m, m.maybeLoadMore()

	case key.Matches(msg, Keys.Back):
		if m.Grid.IsFiltering() {
			return m.updateGrid(msg)
		}
		m.focusInput()
		return m, nil
	}

	return m.updateGrid(msg)
}

// updateGrid routes a message to the grid, then follows the selection
func (m Model) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	m.updateDetail()
	return m, tea.Batch(cmd, m.maybeLoadMore())
}

// startQuery hands text to the controller. A blank query keeps the current
// results and fetches nothing.
func (m *Model) startQuery(text string, submitted bool) tea.Cmd {
	req, ok := m.Controller.SetQuery(text)
	if !ok {
		m.syncGrid()
		return nil
	}

	m.logger.Debug("starting query", "query", text, "generation", req.Generation, "submitted", submitted)
	m.Grid.Reset()
	if submitted {
		m.recordGen = req.Generation
	}
	m.syncGrid()
	return FetchPageCmd(m.Controller, req, m.fetchTimeout)
}

// applyPage merges a fetched page and decides what follows it
func (m *Model) applyPage(res catalog.PageResult) tea.Cmd {
	if !m.Controller.Apply(res) {
		return nil
	}
	m.syncGrid()

	var cmds []tea.Cmd
	req := res.Request
	if req.Page == 1 && req.Generation == m.recordGen {
		m.recordGen = 0
		if m.History != nil && res.Err == nil && len(res.Items) > 0 {
			cmds = append(cmds, RecordHistoryCmd(m.History, req.Query, len(res.Items)))
		}
	}
	if res.Err != nil {
		cmds = append(cmds, m.setStatus(catalog.MsgFetchFailed, true))
	}

	// keep filling while the loaded rows don't reach past the viewport
	cmds = append(cmds, m.maybeLoadMore())
	return tea.Batch(cmds...)
}

// maybeLoadMore asks for the next page once the cursor nears the end
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.State != StateBrowsing || !m.Grid.NearEnd() {
		return nil
	}
	req, ok := m.Controller.OnEndReached()
	if !ok {
		return nil
	}
	m.syncGrid()
	return FetchPageCmd(m.Controller, req, m.fetchTimeout)
}

// syncGrid copies controller state into the grid
func (m *Model) syncGrid() {
	st := m.Controller.State()
	m.Grid.SetItems(st.Results)

	switch {
	case st.Query == "":
		m.Grid.SetHeader("")
	case st.Loading && len(st.Results) == 0:
		m.Grid.SetHeader(fmt.Sprintf("Searching %q...", st.Query))
	default:
		m.Grid.SetHeader(fmt.Sprintf("%d results for %q", len(st.Results), st.Query))
	}

	switch {
	case st.Error == catalog.MsgFetchFailed:
		m.Grid.SetFooter(st.Error, true)
	case st.Error != "":
		m.Grid.SetFooter(st.Error, false)
	default:
		m.Grid.SetFooter(st.Footer(), false)
	}

	m.updateDetail()
}

// updateDetail shows the selected result in the detail pane
func (m *Model) updateDetail() {
	item, ok := m.Grid.SelectedItem()
	if !ok {
		m.Detail.Clear()
		return
	}
	m.Detail.SetItem(m.Controller.SelectItem(item), item)
}

func (m *Model) openDetail(item domain.SearchResultItem) {
	m.Detail.SetItem(m.Controller.SelectItem(item), item)
	m.State = StateDetail
	m.Detail.SetFocused(true)
	m.updateLayout()
}

func (m *Model) closeDetail() {
	m.State = StateBrowsing
	m.Detail.SetFocused(false)
	m.updateLayout()
	m.updateDetail()
}

func (m *Model) focusGrid() {
	m.Focus = FocusGrid
	m.SearchBar.Blur()
	m.Grid.SetFocused(true)
	m.updateLayout()
}

func (m *Model) focusInput() {
	m.Focus = FocusInput
	m.Grid.SetFocused(false)
	m.SearchBar.Focus()
	m.refreshSuggestions()
	m.updateLayout()
}

func (m *Model) refreshSuggestions() {
	if m.History == nil {
		return
	}
	m.SearchBar.SetSuggestions(m.History.Suggest(m.SearchBar.Value(), components.MaxSuggestions))
}

// launch opens an item's preview, or its store page when it has none
func (m *Model) launch(item domain.SearchResultItem) tea.Cmd {
	if m.Opener == nil || item.OpenURL() == "" {
		return m.setStatus("Nothing to open", true)
	}
	return LaunchCmd(m.Opener, item)
}

// setStatus shows a status message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusID, m.statusTimeout)
}
