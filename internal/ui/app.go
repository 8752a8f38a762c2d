package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skillshare/internal/prefs"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

const statusTick = time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	ServerURL string
	Status    *state.SyncStatus
	Prefs     *prefs.File
	// Dispatch forwards an action to the coordinator. Update calls it
	// directly, so it must not block; New wraps it in an ordered queue.
	Dispatch func(state.Action)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	serverURL string
	status    *state.SyncStatus
	prefs     *prefs.File
	dispatch  func(state.Action)
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	app      state.AppState
	hasState bool
	sync     state.SyncSnapshot

	// Talk list
	selected int
	list     viewport.Model

	modal    Modal
	showHelp bool
	banner   error
}

// NewModel builds the model without starting a program.
func NewModel(opts Options) Model {
	theme := prefs.DefaultTheme
	if opts.Prefs != nil {
		theme = opts.Prefs.LoadTheme()
	}
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = func(state.Action) {}
	}
	return Model{
		serverURL: opts.ServerURL,
		status:    opts.Status,
		prefs:     opts.Prefs,
		dispatch:  dispatch,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(statusTick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.list = viewport.New(msg.Width, m.listHeight())
		}
		m.ready = true
		m.updateList()
		return m, nil

	case tickMsg:
		m.refreshStatus()
		return m, tickCmd(statusTick)

	case stateMsg:
		m.app = state.AppState(msg)
		m.hasState = true
		m.clampSelection()
		m.refreshStatus()
		m.updateList()
		return m, nil

	case errorMsg:
		m.banner = msg.err
		m.updateList()
		return m, nil

	case submitMsg:
		m.dispatch(msg.action)
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.banner != nil {
		m.banner = nil
		m.updateList()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateList()
		return m, m.saveThemeCmd(m.theme.Name)
	}

	if !m.hasState {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NewTalk):
		m.modal = newTalkForm()

	case key.Matches(msg, m.keys.SetName):
		m.modal = newNameForm(m.app.User)

	case key.Matches(msg, m.keys.Comment):
		if t, ok := m.selectedTalk(); ok {
			m.modal = newCommentForm(t.Title)
		}

	case key.Matches(msg, m.keys.DeleteTalk):
		if t, ok := m.selectedTalk(); ok {
			m.dispatch(state.DeleteTalk{Talk: t.Title})
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.app.Talks)-1 {
			m.selected++
			m.updateList()
		}

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.updateList()
		}

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.updateList()

	case key.Matches(msg, m.keys.Bottom):
		if n := len(m.app.Talks); n > 0 {
			m.selected = n - 1
			m.updateList()
		}
	}
	return m, nil
}

func (m Model) selectedTalk() (talks.Talk, bool) {
	if m.selected < 0 || m.selected >= len(m.app.Talks) {
		return talks.Talk{}, false
	}
	return m.app.Talks[m.selected], true
}

func (m *Model) clampSelection() {
	if n := len(m.app.Talks); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) refreshStatus() {
	if m.status != nil {
		m.sync = m.status.Snapshot()
	}
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.banner != nil {
		b.WriteString(m.renderBanner())
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())
	return b.String()
}

func (m Model) renderBanner() string {
	text := fmt.Sprintf("Error: %s  (any key to dismiss)", describeError(m.banner))
	return m.theme.Styles().Banner.Width(m.width).Render(truncate(text, m.width-2))
}

// describeError shortens the errors a user is likely to see.
func describeError(err error) string {
	var httpErr *talks.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%s %s failed with status %d", httpErr.Method, httpErr.URL, httpErr.StatusCode)
	}
	var transportErr *talks.TransportError
	if errors.As(err, &transportErr) {
		return fmt.Sprintf("server unreachable (%s %s)", transportErr.Method, transportErr.URL)
	}
	return err.Error()
}

func (m Model) listHeight() int {
	h := m.height - 2
	if m.banner != nil {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Messages

type tickMsg time.Time

type stateMsg state.AppState

type errorMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) saveThemeCmd(name string) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	p := m.prefs
	return func() tea.Msg {
		if err := p.SaveTheme(name); err != nil {
			return errorMsg{err: fmt.Errorf("save theme: %w", err)}
		}
		return nil
	}
}
