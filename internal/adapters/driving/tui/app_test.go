package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfox-labs/docfox-cli/internal/adapters/driving/tui/messages"
	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
)

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("starts in ask mode", func(t *testing.T) {
		app := newTestApp(t, &Ports{Search: &mockSearchService{}})
		assert.Equal(t, ModeAsk, app.Mode())
		assert.False(t, app.Busy())
	})
}

func TestApp_ToggleMode(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, ModeSearch, app.Mode())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, ModeAsk, app.Mode())
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})

	for _, keyType := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := app.Update(tea.KeyMsg{Type: keyType})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestApp_EmptyQueryIsIgnored(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.Nil(t, cmd)
	assert.False(t, app.Busy())
}

func TestApp_SubmitSearch(t *testing.T) {
	search := &mockSearchService{
		results: []domain.ScoredDocument{
			{DocumentID: "doc-1", Filename: "notes.txt", Score: 40},
		},
	}
	app := newTestApp(t, &Ports{Search: search})
	app.mode = ModeSearch
	app.input.SetValue("audit")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.NotNil(t, cmd)
	assert.True(t, app.Busy())

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "audit", completed.Query)
	require.Len(t, completed.Results, 1)

	model, _ = app.Update(completed)
	app = model.(*App)
	assert.False(t, app.Busy())
	assert.NoError(t, app.Err())
}

func TestApp_SubmitAsk(t *testing.T) {
	chat := &mockChatService{
		answer: &driving.Answer{
			Text: "**Friday**",
			Sources: []driving.SourceRef{
				{DocumentID: "doc-1", Filename: "memo.txt"},
			},
		},
	}
	app := newTestApp(t, &Ports{Search: &mockSearchService{}, Chat: chat})
	app.input.SetValue("when is the deadline")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.NotNil(t, cmd)

	msg := cmd()
	received, ok := msg.(messages.AnswerReceived)
	require.True(t, ok)
	require.NotNil(t, received.Answer)
	assert.Equal(t, "**Friday**", received.Answer.Text)

	model, _ = app.Update(received)
	app = model.(*App)
	assert.False(t, app.Busy())
}

func TestApp_AskWithoutChatService(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})
	app.input.SetValue("anything")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoChatService)

	model, _ = app.Update(errMsg)
	app = model.(*App)
	assert.False(t, app.Busy())
	assert.ErrorIs(t, app.Err(), ErrNoChatService)
}

func TestApp_SearchErrorIsSurfaced(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})

	model, _ := app.Update(messages.SearchCompleted{Err: errors.New("store down")})
	app = model.(*App)

	assert.EqualError(t, app.Err(), "store down")
	assert.False(t, app.Busy())
}

func TestApp_ViewBeforeFirstResize(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})
	assert.Contains(t, app.View(), "Initialising")
}

func TestApp_ViewAfterResize(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &mockSearchService{}})

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(*App)

	require.True(t, app.Ready())
	view := app.View()
	assert.Contains(t, view, "DocFox")
	assert.Contains(t, view, "mode: ask")
	assert.Contains(t, view, "esc: quit")
}

func TestApp_StatsShownInHeader(t *testing.T) {
	app := newTestApp(t, &Ports{
		Search:    &mockSearchService{},
		Knowledge: &mockKnowledgeService{stats: domain.Stats{TotalDocuments: 3}},
	})

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(*App)
	model, _ = app.Update(messages.StatsLoaded{Stats: domain.Stats{TotalDocuments: 3}})
	app = model.(*App)

	assert.Contains(t, app.View(), "3 documents")
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "ask", ModeAsk.String())
	assert.Equal(t, "search", ModeSearch.String())
	assert.Equal(t, "unknown", Mode(99).String())
}
