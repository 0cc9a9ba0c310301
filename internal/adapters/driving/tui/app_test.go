package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/messages"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Search:   &MockSearchService{},
		Document: &MockDocumentService{},
	}
}

func sampleResults() []domain.QueryResult {
	return []domain.QueryResult{
		{ChunkID: "doc-1:0", DocumentID: "doc-1", Score: 0.91, Content: "first chunk", Title: "First Doc", Origin: "notes/first.md"},
		{ChunkID: "doc-2:0", DocumentID: "doc-2", Score: 0.64, Content: "second chunk", Title: "Second Doc"},
	}
}

// completeSearch puts the app into results mode with the given results.
func completeSearch(app *App, results []domain.QueryResult) {
	app.SetDimensions(80, 24)
	app.Update(messages.SearchCompleted{Results: results})
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{
		Search:   nil,
		Document: &MockDocumentService{},
	}

	app, err := NewApp(ports)

	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	cmd := app.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestApp_LoadStats(t *testing.T) {
	ports := newTestPorts()
	ports.Search.(*MockSearchService).StatsFunc = func(ctx context.Context) (*domain.IndexStats, error) {
		return &domain.IndexStats{Documents: 3, Chunks: 9, Mode: domain.SearchModeSemantic}, nil
	}
	app, _ := NewApp(ports)

	msg := app.loadStats()()

	loaded, ok := msg.(messages.StatsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, 3, loaded.Stats.Documents)
	assert.Equal(t, 9, loaded.Stats.Chunks)
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_TypingBuildsQuery(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	for _, r := range "test" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "test", app.Query())
}

func TestApp_Update_SearchCompleted(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	msg := messages.SearchCompleted{Results: sampleResults(), Err: nil}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.Len(t, app.Results(), 2)
	assert.Equal(t, 0, app.SelectedIndex())
}

func TestApp_Update_SearchCompleted_WithError(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	err := errors.New("query failed")
	msg := messages.SearchCompleted{Results: nil, Err: err}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.Error(t, app.Err())
}

func TestApp_Update_ResultSelected_Valid(t *testing.T) {
	ports := newTestPorts()
	ports.Document.(*MockDocumentService).GetContentFunc = func(ctx context.Context, documentID string) (string, error) {
		return "full text of " + documentID, nil
	}
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	_, cmd := app.Update(messages.ResultSelected{Index: 1})

	assert.Equal(t, messages.ViewDocContent, app.CurrentView())
	require.NotNil(t, cmd)

	loaded, ok := cmd().(messages.DocumentContentLoaded)
	require.True(t, ok)
	assert.Equal(t, "doc-2", loaded.DocumentID)
	assert.Equal(t, "full text of doc-2", loaded.Content)
}

func TestApp_Update_ResultSelected_NoResults(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ResultSelected{Index: 0})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Nil(t, cmd)
}

func TestApp_Update_ViewChanged(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	model, cmd := app.Update(messages.ViewChanged{View: messages.ViewHelp})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	err := errors.New("something broke")
	app.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, err, app.Err())
}

func TestApp_Update_Quit(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_KeyMsg_CtrlC(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_KeyMsg_Escape_Quits(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, messages.Quit{}, cmd())
}

func TestApp_Update_KeyMsg_Q_QuitsInResultsMode(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.IsType(t, messages.Quit{}, cmd())
}

func TestApp_Update_KeyMsg_QuestionMark_ShowsHelp(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewHelp, changed.View)

	app.Update(changed)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

func TestApp_Update_KeyMsg_InHelpView_ReturnsToSearch(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_Update_KeyMsg_J_NavigateDown(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	assert.Equal(t, 1, app.SelectedIndex())
}

func TestApp_Update_KeyMsg_K_NavigateUp(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})

	assert.Equal(t, 0, app.SelectedIndex())
}

func TestApp_Update_KeyMsg_NavigateDown_AtBoundary(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 1, app.SelectedIndex())
}

func TestApp_Update_KeyMsg_Enter_WithQuery(t *testing.T) {
	ports := newTestPorts()
	var gotQuery string
	ports.Search.(*MockSearchService).QueryFunc = func(
		ctx context.Context, query string, opts domain.QueryOptions,
	) ([]domain.QueryResult, error) {
		gotQuery = query
		return sampleResults(), nil
	}
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	for _, r := range "fox" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	completed, ok := cmd().(messages.SearchCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "fox", gotQuery)

	app.Update(completed)
	assert.Len(t, app.Results(), 2)
}

func TestApp_Update_KeyMsg_Enter_EmptyQuery(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestApp_Update_KeyMsg_EscInDocContent_ReturnsToSearch(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())
	app.Update(messages.ResultSelected{Index: 0})
	require.Equal(t, messages.ViewDocContent, app.CurrentView())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)

	app.Update(changed)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_Update_DocumentContentLoaded(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())
	app.Update(messages.ResultSelected{Index: 0})

	app.Update(messages.DocumentContentLoaded{
		DocumentID: "doc-1",
		Content:    "the quick brown fox jumps over the lazy dog",
	})

	view := app.View()
	assert.Contains(t, view, "the quick brown fox")
}

func TestApp_View_NotReady(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	view := app.View()

	assert.Contains(t, view, "Initialising")
}

func TestApp_View_SearchView(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	view := app.View()

	assert.Contains(t, view, "Loupe")
	assert.Contains(t, view, "Query:")
}

func TestApp_View_SearchView_WithResults(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())

	view := app.View()

	assert.Contains(t, view, "First Doc")
	assert.Contains(t, view, "Results (2)")
}

func TestApp_View_SearchView_WithError(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.Update(messages.SearchCompleted{Err: errors.New("index unavailable")})

	view := app.View()

	assert.Contains(t, view, "index unavailable")
}

func TestApp_View_HelpView(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	view := app.View()

	assert.Contains(t, view, "Loupe Help")
	assert.Contains(t, view, "Press any key to return")
}

func TestApp_View_DocContentView(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	completeSearch(app, sampleResults())
	app.Update(messages.ResultSelected{Index: 0})

	view := app.View()

	assert.Contains(t, view, "First Doc")
}

func TestApp_SetDimensions(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)

	app.SetDimensions(120, 40)

	assert.True(t, app.Ready())
}
