package ui

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"userdir/internal/config"
	"userdir/internal/debounce"
	"userdir/internal/eventbus"
	"userdir/internal/ui/commands"
	"userdir/internal/ui/handlers"
	"userdir/internal/ui/logic"
	"userdir/internal/ui/state"
	"userdir/internal/ui/viewmodels"
	"userdir/internal/ui/views"
)

// Preview popup size in terminal cells
const (
	previewCols      = 24
	previewRows      = 12
	previewCacheSize = 64
)

// PictureFetcher downloads and decodes a user picture
type PictureFetcher interface {
	FetchPicture(ctx context.Context, url string) (image.Image, error)
}

// Model represents the UI state
type Model struct {
	config *config.Config
	state  *state.AppState // centralized state
	log    zerolog.Logger

	// UI-specific state not in AppState
	width  int
	height int
	help   help.Model
	keys   keyMap
	input  textinput.Model

	// Handlers
	filter       *debounce.Invoker[string] // delays filtering until typing pauses
	navigator    *logic.Navigator          // selection and viewport
	eventHandler *handlers.EventHandler    // domain event processing
	cmdExecutor  *commands.Executor        // command executor
	renderer     *views.Renderer           // view renderer
	viewModel    *viewmodels.ViewModel     // view model for rendering
	details      *views.DetailsRenderer
	helpText     *HelpRenderer

	pictures        PictureFetcher
	pictureCache    *lru.Cache[string, string] // picture URL -> rendered art
	pictureLoading  map[string]bool
	pictureFailures map[string]string
	pager           Pager

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
	now    func() time.Time
}

// NewModel creates a new UI model. pictures may be nil, in which case the
// preview shows a placeholder.
func NewModel(cfg *config.Config, bus eventbus.EventBus, pictures PictureFetcher, logger zerolog.Logger) *Model {
	styles := views.NewStyles()
	keys := newKeyMap()

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Filter by name..."
	input.CharLimit = 64

	cache, _ := lru.New[string, string](previewCacheSize) // only fails for a non-positive size

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		config:          cfg,
		state:           state.NewAppState(),
		log:             logger,
		help:            help.New(),
		keys:            keys,
		input:           input,
		filter:          debounce.New[string](cfg.UI.FilterDelay.Duration, nil),
		navigator:       logic.NewNavigator(),
		renderer:        views.NewRenderer(styles, cfg.UI.DateFormat, time.Local),
		details:         views.NewDetailsRenderer(styles, cfg.UI.DateFormat, time.Local),
		helpText:        NewHelpRenderer(keys),
		pictures:        pictures,
		pictureCache:    cache,
		pictureLoading:  make(map[string]bool),
		pictureFailures: make(map[string]string),
		pager:           NewOvPager(nil),
		ctx:             ctx,
		cancel:          cancel,
		now:             time.Now,
	}

	m.eventHandler = handlers.NewEventHandler(m.state, m.listChanged, logger)
	m.cmdExecutor = commands.NewExecutor(m.state, bus)
	m.viewModel = viewmodels.NewViewModel(m.state)
	return m
}

// SetProgram sets the program reference for terminal management and
// routes debounced filter results back into it
func (m *Model) SetProgram(p *tea.Program) {
	if op, ok := m.pager.(*OvPager); ok {
		op.SetProgram(p)
	}
	m.SetSender(p.Send)
}

// SetSender sets where the debounced filter delivers its result
func (m *Model) SetSender(send func(tea.Msg)) {
	m.filter.SetCallback(func(query string) {
		send(filterAppliedMsg{Query: query})
	})
}

// SetPager replaces the record pager
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// Close tears down background work. A filter still waiting for its delay
// never fires afterwards.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.filter.Stop()
	m.cancel()
}

// Init requests the first fetch and starts the animation tick
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.cmdExecutor.ExecuteFetch("startup"), tick())
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.navigator.SetViewportHeight(views.BodyHeight(msg.Height))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case filterAppliedMsg:
		if m.closed {
			return m, nil
		}
		m.applyFilter(msg.Query)
		return m, nil

	case pictureLoadedMsg:
		delete(m.pictureLoading, msg.url)
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("picture fetch failed")
			m.pictureFailures[msg.url] = "picture unavailable"
			return m, nil
		}
		m.pictureCache.Add(msg.url, msg.art)
		return m, nil

	case pagerClosedMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			m.log.Warn().Err(msg.err).Msg("pager failed, falling back to popup")
			m.state.InfoContent = msg.content
			m.state.ShowInfo = true
		}
		return m, nil

	case handlers.ClearStatusMsg:
		m.state.SetStatus("", false)
		return m, nil

	case tickMsg:
		if m.closed {
			return m, nil
		}
		if m.state.Loading {
			m.state.SpinnerFrame++
		}
		return m, tick()
	}

	if m.state.Filtering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Modal popups first
	if m.state.ShowError {
		switch msg.String() {
		case "enter", "esc", " ":
			m.state.DismissError()
		}
		return m, nil
	}
	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
		}
		return m, nil
	}
	if m.state.ShowInfo {
		switch msg.String() {
		case "esc", "i", "q", "enter":
			m.state.ShowInfo = false
			m.state.InfoContent = ""
		}
		return m, nil
	}

	if m.state.Filtering {
		return m.handleFilterKey(msg)
	}

	// Fast typing or a paste can deliver "/" and the query in one message
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 && msg.Runes[0] == '/' {
		m.state.Filtering = true
		m.state.ClearPreview()
		focus := m.input.Focus()
		rest := tea.KeyMsg{Type: tea.KeyRunes, Runes: msg.Runes[1:], Paste: msg.Paste}
		_, cmd := m.handleFilterKey(rest)
		return m, tea.Batch(focus, cmd)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.navigator.Up()
	case key.Matches(msg, m.keys.Down):
		m.navigator.Down()
	case key.Matches(msg, m.keys.PageUp):
		m.navigator.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.navigator.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.navigator.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.navigator.Bottom()
	case key.Matches(msg, m.keys.Filter):
		m.state.Filtering = true
		m.state.ClearPreview()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.ClearFilter):
		m.clearFilter()
		return m, nil
	case key.Matches(msg, m.keys.Preview):
		if m.state.Preview != nil {
			m.state.ClearPreview()
			return m, nil
		}
		return m, m.previewSelected()
	case key.Matches(msg, m.keys.Open):
		return m, m.openPager()
	case key.Matches(msg, m.keys.Info):
		if u, ok := m.state.UserAt(m.navigator.Selected()); ok {
			m.state.InfoContent = m.details.Render(u, m.now())
			m.state.ShowInfo = true
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.cmdExecutor.ExecuteFetch("manual refresh")
	case key.Matches(msg, m.keys.Help):
		m.state.ShowHelp = true
		return m, nil
	case msg.String() == "esc":
		if m.state.Preview != nil {
			m.state.ClearPreview()
		} else if m.state.IsFiltered() {
			m.clearFilter()
		}
		return m, nil
	default:
		return m, nil
	}

	// A key-opened preview follows the selection
	if m.state.Preview != nil && !m.state.Preview.FromMouse {
		return m, m.previewSelected()
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.state.Filtering = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Commit):
		m.state.Filtering = false
		m.input.Blur()
		m.filter.Cancel()
		m.applyFilter(m.input.Value())
		return m, nil
	case key.Matches(msg, m.keys.ClearFilter):
		m.input.SetValue("")
		m.state.PendingQuery = ""
		m.filter.Invoke("")
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.state.PendingQuery = after
		m.filter.Invoke(after)
	}
	return m, cmd
}

// listChanged resyncs the navigator after a new batch replaced the list
func (m *Model) listChanged() {
	m.navigator.SetTotal(len(m.state.Filtered))
	m.pictureFailures = make(map[string]string)
}

func (m *Model) clearFilter() {
	m.filter.Cancel()
	m.input.SetValue("")
	m.applyFilter("")
}

func (m *Model) applyFilter(query string) {
	m.cmdExecutor.ExecuteApplyFilter(query)
	m.navigator.SetTotal(len(m.state.Filtered))
	m.navigator.Reset()
	m.log.Debug().Str("query", m.state.FilterQuery).Int("matches", len(m.state.Filtered)).Msg("filter applied")
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.state.ShowError || m.state.ShowHelp || m.state.ShowInfo {
		return nil
	}

	row := m.navigator.RowAt(msg.Y - views.BodyTop)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.navigator.Up()
		return nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.navigator.Down()
		return nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if row >= 0 {
			m.navigator.Select(row)
		}
		return nil
	case msg.Action != tea.MouseActionMotion:
		return nil
	}

	if !m.config.UI.Preview {
		return nil
	}
	if row < 0 || !views.InPictureColumn(msg.X) {
		// Pointer left the picture cell
		if m.state.Preview != nil && m.state.Preview.FromMouse {
			m.state.ClearPreview()
		}
		return nil
	}
	return m.openPreview(row, msg.X, msg.Y, true)
}

// previewSelected shows the picture of the selected row next to its
// picture cell
func (m *Model) previewSelected() tea.Cmd {
	row := m.navigator.Selected()
	x := views.ColumnX(views.PictureColumn)
	y := views.BodyTop + row - m.navigator.Offset()
	return m.openPreview(row, x, y, false)
}

func (m *Model) openPreview(row, x, y int, fromMouse bool) tea.Cmd {
	u, ok := m.state.UserAt(row)
	if !ok {
		return nil
	}
	url := u.Picture.Large
	if url == "" {
		url = u.Picture.Medium
	}

	m.state.HoveredRow = -1
	if fromMouse {
		m.state.HoveredRow = row
	}
	m.state.Preview = &state.Preview{Row: row, URL: url, X: x, Y: y, FromMouse: fromMouse}

	if url == "" || m.pictures == nil {
		return nil
	}
	if _, ok := m.pictureCache.Get(url); ok || m.pictureLoading[url] {
		return nil
	}
	if _, failed := m.pictureFailures[url]; failed {
		return nil
	}
	m.pictureLoading[url] = true
	return m.fetchPicture(url)
}

func (m *Model) fetchPicture(url string) tea.Cmd {
	ctx, pictures := m.ctx, m.pictures
	return func() tea.Msg {
		img, err := pictures.FetchPicture(ctx, url)
		if err != nil {
			return pictureLoadedMsg{url: url, err: err}
		}
		return pictureLoadedMsg{url: url, art: views.RenderPicture(img, previewCols, previewRows)}
	}
}

func (m *Model) previewContent() string {
	p := m.state.Preview
	switch {
	case p.URL == "" || m.pictures == nil:
		return views.PicturePlaceholder("no picture", previewCols, previewRows)
	case m.pictureLoading[p.URL]:
		return views.PicturePlaceholder("loading…", previewCols, previewRows)
	}
	if art, ok := m.pictureCache.Peek(p.URL); ok {
		return art
	}
	if msg, ok := m.pictureFailures[p.URL]; ok {
		return views.PicturePlaceholder(msg, previewCols, previewRows)
	}
	return views.PicturePlaceholder("loading…", previewCols, previewRows)
}

func (m *Model) openPager() tea.Cmd {
	u, ok := m.state.UserAt(m.navigator.Selected())
	if !ok {
		return nil
	}
	title := u.FullName()
	content := m.details.Render(u, m.now())
	pager := m.pager
	return func() tea.Msg {
		return pagerClosedMsg{title: title, content: content, err: pager.Show(title, content)}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	start, _ := m.navigator.Visible()
	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetViewport(start, m.navigator.Selected())

	inputText := ""
	if m.state.Filtering || m.input.Value() != "" {
		inputText = m.input.View()
	}
	m.viewModel.SetFilterInput(inputText, m.filter.Pending())

	helpLine := m.help.View(m.keys)
	if m.state.Filtering {
		helpLine = m.help.View(filterKeyMap{m.keys})
	}
	helpContent := ""
	if m.state.ShowHelp {
		helpContent = m.helpText.renderHelpContent(m.config.UI.Mouse)
	}
	m.viewModel.SetHelp(helpLine, helpContent)

	var preview *views.Preview
	if m.state.Preview != nil {
		preview = &views.Preview{
			Content: m.previewContent(),
			X:       m.state.Preview.X,
			Y:       m.state.Preview.Y,
		}
	}
	m.viewModel.SetPreview(preview)

	return m.renderer.Render(m.viewModel.BuildViewState())
}
