package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docfox-labs/docfox-cli/internal/adapters/driving/tui/messages"
	"github.com/docfox-labs/docfox-cli/internal/adapters/driving/tui/styles"
	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// Mode selects what Enter does with the typed query.
type Mode int

const (
	// ModeAsk sends the query to the grounded chat service.
	ModeAsk Mode = iota

	// ModeSearch ranks documents against the query.
	ModeSearch
)

// String returns the mode name shown in the header.
func (m Mode) String() string {
	switch m {
	case ModeAsk:
		return "ask"
	case ModeSearch:
		return "search"
	default:
		return "unknown"
	}
}

const searchTopK = 5

// App is the Bubbletea model for the interactive session.
// A single input drives both modes; the body shows the latest answer
// or result list in a scrollable viewport.
type App struct {
	ports  *Ports
	styles *styles.Styles
	ctx    context.Context

	input    textinput.Model
	viewport viewport.Model

	mode  Mode
	busy  bool
	err   error
	stats *domain.Stats

	width  int
	height int
	ready  bool
}

// NewApp creates the TUI application model.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		ports = &Ports{}
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	vp := viewport.New(80, 14)

	return &App{
		ports:    ports,
		styles:   s,
		ctx:      context.Background(),
		input:    ti,
		viewport: vp,
		mode:     ModeAsk,
		width:    80,
		height:   24,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadStats())
}

// Update handles messages following the Elm architecture.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.AnswerReceived:
		a.busy = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.viewport.SetContent(a.renderAnswer(msg))
		a.viewport.GotoTop()
		return a, nil

	case messages.SearchCompleted:
		a.busy = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.viewport.SetContent(a.renderResults(msg))
		a.viewport.GotoTop()
		return a, nil

	case messages.StatsLoaded:
		if msg.Err == nil {
			a.stats = &msg.Stats
		}
		return a, nil

	case messages.ErrorOccurred:
		a.busy = false
		a.err = msg.Err
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return a, tea.Quit

	case tea.KeyTab:
		a.toggleMode()
		return a, nil

	case tea.KeyEnter:
		if a.busy {
			return a, nil
		}
		query := strings.TrimSpace(a.input.Value())
		if query == "" {
			return a, nil
		}
		a.busy = true
		a.err = nil
		return a, a.submit(query)

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// toggleMode switches between ask and search.
func (a *App) toggleMode() {
	if a.mode == ModeAsk {
		a.mode = ModeSearch
		a.input.Placeholder = "Search your documents..."
	} else {
		a.mode = ModeAsk
		a.input.Placeholder = "Ask a question about your documents..."
	}
}

// submit dispatches the query according to the current mode.
func (a *App) submit(query string) tea.Cmd {
	if a.mode == ModeSearch {
		return a.performSearch(query)
	}
	return a.performAsk(query)
}

// performAsk queries the grounded chat service.
func (a *App) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if a.ports.Chat == nil {
			return messages.ErrorOccurred{Err: ErrNoChatService}
		}
		answer, err := a.ports.Chat.Ask(a.ctx, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// performSearch ranks documents against the query.
func (a *App) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.ports.Search.Search(a.ctx, query, searchTopK)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// loadStats fetches the collection summary for the header.
func (a *App) loadStats() tea.Cmd {
	return func() tea.Msg {
		if a.ports.Knowledge == nil {
			return messages.StatsLoaded{Err: domain.ErrNotFound}
		}
		stats, err := a.ports.Knowledge.Stats(a.ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// renderAnswer formats a grounded answer for the viewport.
func (a *App) renderAnswer(msg messages.AnswerReceived) string {
	if msg.Answer == nil {
		return a.styles.Muted.Render("No answer.")
	}

	var b strings.Builder
	b.WriteString(a.styles.Muted.Render("Q: " + msg.Question))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Answer.Render(msg.Answer.Text))

	if len(msg.Answer.Sources) > 0 {
		names := make([]string, 0, len(msg.Answer.Sources))
		for _, src := range msg.Answer.Sources {
			name := src.Filename
			if name == "" {
				name = src.DocumentID
			}
			names = append(names, name)
		}
		b.WriteString("\n\n")
		b.WriteString(a.styles.Muted.Render("Sources: " + strings.Join(names, ", ")))
	}

	return b.String()
}

// renderResults formats a result list for the viewport.
func (a *App) renderResults(msg messages.SearchCompleted) string {
	if len(msg.Results) == 0 {
		return a.styles.Muted.Render("No results for: " + msg.Query)
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(fmt.Sprintf("Results (%d)", len(msg.Results))))
	b.WriteString("\n\n")

	for i := range msg.Results {
		name := msg.Results[i].Filename
		if name == "" {
			name = msg.Results[i].DocumentID
		}
		b.WriteString(a.styles.Normal.Render(fmt.Sprintf("%d. %s", i+1, name)))
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  score %d", msg.Results[i].Score)))
		if len(msg.Results[i].MatchedChunks) > 0 {
			b.WriteString(a.styles.Muted.Render("  [" + strings.Join(msg.Results[i].MatchedChunks, ", ") + "]"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := a.styles.Title.Render("DocFox") +
		a.styles.Muted.Render("  mode: "+a.mode.String())
	if a.stats != nil {
		header += a.styles.Muted.Render(fmt.Sprintf("  |  %d documents", a.stats.TotalDocuments))
	}
	sections = append(sections, header, "")

	sections = append(sections, a.styles.InputField.Render(a.input.View()), "")

	if a.err != nil {
		sections = append(sections, a.styles.Error.Render("Error: "+a.err.Error()), "")
	}

	sections = append(sections, a.viewport.View(), "")

	sections = append(sections, a.statusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statusLine renders the bottom status bar.
func (a *App) statusLine() string {
	left := "Ready"
	if a.busy {
		if a.mode == ModeAsk {
			left = "Thinking..."
		} else {
			left = "Searching..."
		}
	}

	help := "tab: mode | enter: submit | esc: quit"

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(help) - 2
	if padding < 1 {
		padding = 1
	}

	return a.styles.StatusBar.Width(a.width).Render(
		left + strings.Repeat(" ", padding) + help,
	)
}

// setDimensions resizes the layout.
func (a *App) setDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.input.Width = inputWidth

	// Reserve space for header, input, and status bar.
	bodyHeight := height - 9
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	a.viewport.Width = width
	a.viewport.Height = bodyHeight
}

// Mode returns the current input mode.
func (a *App) Mode() Mode {
	return a.mode
}

// Busy reports whether a request is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the current error, if any.
func (a *App) Err() error {
	return a.err
}

// Ready reports whether the first window size was received.
func (a *App) Ready() bool {
	return a.ready
}
