package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/keymap"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/messages"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/styles"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/views/doccontent"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/views/search"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is used for service calls.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView *search.View
	docView    *doccontent.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the application model from the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  search.NewView(s, km, ports.Search),
		docView:     doccontent.NewView(s, ports.Document),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.docView.WithContext(ctx)
	return a
}

// Init sets up the terminal and starts the initial stats load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("loupe - Local Search"),
		a.searchView.Init(),
		a.loadStats(),
	)
}

// loadStats returns a command that fetches index statistics for the
// status bar.
func (a *App) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.ports.Search.Stats(a.ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// Update routes messages to the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.SearchCompleted:
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.StatsLoaded:
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ResultSelected:
		a.searchView.SetSelectedIndex(msg.Index)
		result := a.searchView.SelectedResult()
		if result == nil {
			return a, nil
		}
		a.currentView = messages.ViewDocContent
		a.docView.SetDimensions(a.width, a.height)
		return a, a.docView.SetResult(result)

	case messages.DocumentContentLoaded:
		var cmd tea.Cmd
		a.docView, cmd = a.docView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a.forwardToView(msg)
}

// handleKeyMsg processes global keys and forwards the rest to the
// active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// Help view: any key returns to search
	if a.currentView == messages.ViewHelp {
		a.currentView = messages.ViewSearch
		return a, nil
	}

	return a.forwardToView(msg)
}

// forwardToView sends a message to the active view.
func (a *App) forwardToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewDocContent:
		a.docView, cmd = a.docView.Update(msg)
	case messages.ViewHelp:
		// Help view is static
	}
	return a, cmd
}

// View renders the active view.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDocContent:
		return a.docView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the static help screen.
func (a *App) viewHelp() string {
	title := a.styles.Title.Render("Loupe Help")
	body := `
Search
  enter          run the query
  n              start a new query

Results
  up/k, down/j   move selection
  enter          open the selected document

Document
  pgup/pgdn      page through content
  g / G          jump to top / bottom
  esc            back to results

General
  ?              show this help
  esc, q         quit
  ctrl+c         quit from anywhere

Press any key to return.`
	return title + a.styles.Normal.Render(body)
}

// SetDimensions sets the application dimensions. Exposed for tests.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.docView.SetDimensions(width, height)
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current query results.
func (a *App) Results() []domain.QueryResult {
	return a.searchView.Results()
}

// SelectedIndex returns the selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}
