package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/keymap"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/tui/styles"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
	assert.Nil(t, bar.Stats())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateSearching)

	assert.Equal(t, StateSearching, bar.State())
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("index unavailable")

	assert.Equal(t, "index unavailable", bar.Message())
}

func TestStatusBar_SetResultCount(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetResultCount(7)

	assert.Equal(t, 7, bar.ResultCount())
}

func TestStatusBar_SetStats(t *testing.T) {
	bar := NewBar(nil, nil)
	stats := &domain.IndexStats{Documents: 2, Chunks: 8, Mode: domain.SearchModeSemantic, Model: "fnv-256"}

	bar.SetStats(stats)

	assert.Equal(t, stats, bar.Stats())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetResultCount(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
}

func TestStatusBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)

	view := bar.View()

	assert.Contains(t, view, "Ready")
}

func TestStatusBar_View_ReadyWithStats(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)
	bar.SetStats(&domain.IndexStats{Documents: 2, Chunks: 8, Mode: domain.SearchModeSemantic, Model: "fnv-256"})

	view := bar.View()

	assert.Contains(t, view, "2 docs")
	assert.Contains(t, view, "8 chunks")
	assert.Contains(t, view, "semantic")
	assert.Contains(t, view, "fnv-256")
}

func TestStatusBar_View_Searching(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)
	bar.SetState(StateSearching)

	view := bar.View()

	assert.Contains(t, view, "Searching")
}

func TestStatusBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)
	bar.SetState(StateError)

	view := bar.View()

	assert.Contains(t, view, "Error")
}

func TestStatusBar_View_ErrorWithMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)
	bar.SetState(StateError)
	bar.SetMessage("index unavailable")

	view := bar.View()

	assert.Contains(t, view, "Error: index unavailable")
}

func TestStatusBar_View_WithResults(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(80)
	bar.SetState(StateResults)
	bar.SetResultCount(5)

	view := bar.View()

	assert.Contains(t, view, "5 results")
}

func TestStatusBar_View_ShowsKeybindings(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	view := bar.View()

	assert.Contains(t, view, "quit")
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("searching"), StateSearching)
	assert.Equal(t, State("error"), StateError)
	assert.Equal(t, State("help"), StateHelp)
	assert.Equal(t, State("results"), StateResults)
}
