package app

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/skillshare/internal/effects"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

type recordingEffector struct {
	mu   sync.Mutex
	cmds []state.Command
}

func (r *recordingEffector) Execute(cmd state.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
}

func (r *recordingEffector) commands() []state.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]state.Command(nil), r.cmds...)
}

type memoryNames struct {
	name    string
	saved   []string
	saveErr error
}

func (m *memoryNames) LoadName() string { return m.name }

func (m *memoryNames) SaveName(name string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.name = name
	m.saved = append(m.saved, name)
	return nil
}

type recordingView struct {
	states []state.AppState
}

func (v *recordingView) Sync(s state.AppState) { v.states = append(v.states, s) }

func (v *recordingView) last() state.AppState { return v.states[len(v.states)-1] }

func newReadyCoordinator(t *testing.T, names *memoryNames, list []talks.Talk) (*Coordinator, *recordingEffector, *recordingView) {
	t.Helper()
	eff := &recordingEffector{}
	view := &recordingView{}
	c := NewCoordinator(eff, names, nil)
	c.SetView(view)
	c.Update(list)
	return c, eff, view
}

func TestCoordinator_DropsDispatchBeforeFirstPoll(t *testing.T) {
	eff := &recordingEffector{}
	view := &recordingView{}
	c := NewCoordinator(eff, &memoryNames{}, nil)
	c.SetView(view)

	c.Dispatch(state.NewTalk{Title: "Rust", Summary: "intro"})

	_, ready := c.State()
	assert.False(t, ready)
	assert.Empty(t, eff.commands())
	assert.Empty(t, view.states)
}

func TestCoordinator_FirstUpdateUsesPersistedName(t *testing.T) {
	c, _, view := newReadyCoordinator(t, &memoryNames{name: "Dana"}, []talks.Talk{{Title: "Go"}})

	got, ready := c.State()
	require.True(t, ready)
	assert.Equal(t, "Dana", got.User)
	assert.Equal(t, []talks.Talk{{Title: "Go"}}, got.Talks)
	require.Len(t, view.states, 1)
}

func TestCoordinator_FirstUpdateFallsBackToAnon(t *testing.T) {
	c, _, _ := newReadyCoordinator(t, &memoryNames{}, []talks.Talk{})
	got, _ := c.State()
	assert.Equal(t, state.DefaultUser, got.User)
}

func TestCoordinator_LaterUpdatesReplaceTalks(t *testing.T) {
	c, eff, view := newReadyCoordinator(t, &memoryNames{name: "Dana"}, []talks.Talk{})

	next := []talks.Talk{{Title: "Rust", Presenter: "Anon", Summary: "intro"}}
	c.Update(next)

	got, _ := c.State()
	assert.Equal(t, "Dana", got.User)
	assert.Equal(t, next, got.Talks)
	assert.Empty(t, eff.commands())
	assert.Len(t, view.states, 2)
}

func TestCoordinator_NewTalkRust(t *testing.T) {
	c, eff, view := newReadyCoordinator(t, &memoryNames{}, []talks.Talk{})
	before, _ := c.State()

	c.Dispatch(state.NewTalk{Title: "Rust", Summary: "intro"})

	after, _ := c.State()
	assert.Equal(t, before, after, "state is unchanged until the next poll")
	require.Len(t, eff.commands(), 1)
	cmd := eff.commands()[0]
	assert.Equal(t, state.PutTalk{Title: "Rust", Presenter: "Anon", Summary: "intro"}, cmd)
	assert.Equal(t, http.MethodPut, cmd.Method())
	assert.Equal(t, "/talks/Rust", cmd.Path())
	assert.Len(t, view.states, 2, "view synced after dispatch")
}

func TestCoordinator_DeleteTalkRust(t *testing.T) {
	list := []talks.Talk{{Title: "Rust", Presenter: "Anon", Summary: "intro"}}
	c, eff, _ := newReadyCoordinator(t, &memoryNames{}, list)

	c.Dispatch(state.DeleteTalk{Talk: "Rust"})

	after, _ := c.State()
	assert.Equal(t, list, after.Talks)
	require.Len(t, eff.commands(), 1)
	cmd := eff.commands()[0]
	assert.Equal(t, http.MethodDelete, cmd.Method())
	assert.Equal(t, "/talks/Rust", cmd.Path())
}

func TestCoordinator_SetUserPersistsAndAffectsLaterCommands(t *testing.T) {
	names := &memoryNames{}
	c, eff, view := newReadyCoordinator(t, names, []talks.Talk{})

	c.Dispatch(state.SetUser{User: "Dana"})
	c.Dispatch(state.NewComment{Talk: "Rust", Message: "nice"})

	assert.Equal(t, []string{"Dana"}, names.saved)
	assert.Equal(t, "Dana", view.last().User)
	require.Len(t, eff.commands(), 1)
	assert.Equal(t, state.PostComment{Talk: "Rust", Author: "Dana", Message: "nice"}, eff.commands()[0])
}

func TestCoordinator_SaveNameFailureIsReported(t *testing.T) {
	var reported []error
	reporter := effects.ReporterFunc(func(err error) { reported = append(reported, err) })
	names := &memoryNames{saveErr: errors.New("read-only file system")}

	c := NewCoordinator(&recordingEffector{}, names, reporter)
	c.Update([]talks.Talk{})
	c.Dispatch(state.SetUser{User: "Dana"})

	got, _ := c.State()
	assert.Equal(t, "Dana", got.User, "state still changes")
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], names.saveErr)
}

func TestCoordinator_SetViewSyncsExistingState(t *testing.T) {
	c := NewCoordinator(&recordingEffector{}, &memoryNames{name: "Dana"}, nil)
	c.Update([]talks.Talk{{Title: "Go"}})

	view := &recordingView{}
	c.SetView(view)
	require.Len(t, view.states, 1)
	assert.Equal(t, "Dana", view.last().User)
}

func TestCoordinator_ConcurrentDispatchesAreSerialized(t *testing.T) {
	eff := &recordingEffector{}
	c := NewCoordinator(eff, &memoryNames{}, nil)
	c.Update([]talks.Talk{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Dispatch(state.NewTalk{Title: "Rust"})
		}()
		go func() {
			defer wg.Done()
			c.Update([]talks.Talk{{Title: "Go"}})
		}()
	}
	wg.Wait()

	assert.Len(t, eff.commands(), 50)
	got, _ := c.State()
	assert.Equal(t, []talks.Talk{{Title: "Go"}}, got.Talks)
}
