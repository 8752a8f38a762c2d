package ui

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skillshare/internal/prefs"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

type dispatchLog struct {
	actions []state.Action
}

func (d *dispatchLog) dispatch(a state.Action) { d.actions = append(d.actions, a) }

func newTestModel(t *testing.T) (Model, *dispatchLog, *prefs.File) {
	t.Helper()
	log := &dispatchLog{}
	p := prefs.NewFile(filepath.Join(t.TempDir(), "prefs.toml"))
	m := NewModel(Options{
		ServerURL: "http://localhost:8000",
		Status:    &state.SyncStatus{},
		Prefs:     p,
		Dispatch:  log.dispatch,
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, log, p
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// sendAndRun delivers msg and feeds every message produced by the returned
// command back into the model, the way the Bubble Tea runtime would.
func sendAndRun(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			return m
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

var sampleTalks = []talks.Talk{
	{Title: "Rust", Presenter: "Anon", Summary: "intro", Comments: []talks.Comment{{Author: "Dana", Message: "looking forward"}}},
	{Title: "Go", Presenter: "Dana", Summary: "channels"},
}

func TestView_WaitsForFirstState(t *testing.T) {
	m, log, _ := newTestModel(t)

	if got := m.View(); !strings.Contains(got, "Waiting for the talk list") {
		t.Fatalf("View() = %q, want waiting message", got)
	}

	m = sendAndRun(t, m, runes("n"))
	if m.modal != nil {
		t.Fatalf("modal opened before any state arrived")
	}
	if len(log.actions) != 0 {
		t.Fatalf("dispatched %v before state", log.actions)
	}
}

func TestView_RendersTalksAndUser(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Dana", Talks: sampleTalks}))

	out := m.View()
	for _, want := range []string{"Dana", "2 talks", "Rust", "intro", "looking forward", "channels"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q:\n%s", want, out)
		}
	}
}

func TestNewTalkFormDispatchesNewTalk(t *testing.T) {
	m, log, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: []talks.Talk{}}))

	m = send(t, m, runes("n"))
	if m.modal == nil {
		t.Fatalf("n did not open the new talk form")
	}
	m = typeText(t, m, "Rust")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "intro")
	m = sendAndRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != nil {
		t.Fatalf("form still open after enter")
	}
	want := state.NewTalk{Title: "Rust", Summary: "intro"}
	if len(log.actions) != 1 || log.actions[0] != want {
		t.Fatalf("dispatched %v, want [%v]", log.actions, want)
	}
}

func TestEscapeCancelsForm(t *testing.T) {
	m, log, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks}))

	m = send(t, m, runes("c"))
	m = typeText(t, m, "q")
	m = sendAndRun(t, m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.modal != nil {
		t.Fatalf("form still open after esc")
	}
	if len(log.actions) != 0 {
		t.Fatalf("dispatched %v after cancel", log.actions)
	}
}

func TestCommentTargetsSelectedTalk(t *testing.T) {
	m, log, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks}))

	m = send(t, m, runes("j"))
	m = send(t, m, runes("c"))
	m = typeText(t, m, "great")
	sendAndRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := state.NewComment{Talk: "Go", Message: "great"}
	if len(log.actions) != 1 || log.actions[0] != want {
		t.Fatalf("dispatched %v, want [%v]", log.actions, want)
	}
}

func TestDeleteDispatchesSelectedTitle(t *testing.T) {
	m, log, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks}))

	sendAndRun(t, m, runes("d"))

	want := state.DeleteTalk{Talk: "Rust"}
	if len(log.actions) != 1 || log.actions[0] != want {
		t.Fatalf("dispatched %v, want [%v]", log.actions, want)
	}
}

func TestNameFormPrefillsCurrentUser(t *testing.T) {
	m, log, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks}))

	m = send(t, m, runes("u"))
	for range "Anon" {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = typeText(t, m, "Dana")
	sendAndRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := state.SetUser{User: "Dana"}
	if len(log.actions) != 1 || log.actions[0] != want {
		t.Fatalf("dispatched %v, want [%v]", log.actions, want)
	}
}

func TestSelectionStaysInRange(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks}))

	for i := 0; i < 5; i++ {
		m = send(t, m, runes("j"))
	}
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}

	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks[:1]}))
	if m.selected != 0 {
		t.Fatalf("selected after shrink = %d, want 0", m.selected)
	}
}

func TestErrorBannerShownAndDismissed(t *testing.T) {
	m, log, _ := newTestModel(t)
	m = send(t, m, stateMsg(state.AppState{User: "Anon", Talks: sampleTalks}))

	err := &talks.HTTPError{Method: http.MethodPut, URL: "http://localhost:8000/talks/Rust", StatusCode: http.StatusConflict}
	m = send(t, m, errorMsg{err: err})
	if out := m.View(); !strings.Contains(out, "status 409") {
		t.Fatalf("View() missing banner:\n%s", out)
	}

	m = sendAndRun(t, m, runes("d"))
	if m.banner != nil {
		t.Fatalf("banner not dismissed")
	}
	if len(log.actions) != 0 {
		t.Fatalf("dismissing key also dispatched %v", log.actions)
	}
}

func TestDescribeError(t *testing.T) {
	transport := &talks.TransportError{Method: http.MethodGet, URL: "http://x/talks", Err: errors.New("refused")}
	if got := describeError(transport); !strings.Contains(got, "unreachable") {
		t.Fatalf("describeError(transport) = %q", got)
	}
	if got := describeError(errors.New("boom")); got != "boom" {
		t.Fatalf("describeError(plain) = %q, want boom", got)
	}
}

func TestCycleThemePersists(t *testing.T) {
	m, _, p := newTestModel(t)

	m = sendAndRun(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := p.LoadTheme(); got != "Kanagawa" {
		t.Fatalf("persisted theme = %q, want Kanagawa", got)
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = send(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help overlay not dismissed")
	}
}
