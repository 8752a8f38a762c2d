package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/five82/skillshare/internal/effects"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

// View renders state. Sync is called with the Coordinator lock held, so it
// must not call Dispatch synchronously.
type View interface {
	Sync(s state.AppState)
}

// ViewFunc adapts a function to View.
type ViewFunc func(s state.AppState)

// Sync implements View.
func (f ViewFunc) Sync(s state.AppState) { f(s) }

// Effector runs commands produced by the reducer.
type Effector interface {
	Execute(cmd state.Command)
}

// NameStore persists the display name.
type NameStore interface {
	LoadName() string
	SaveName(name string) error
}

// Coordinator owns the application state and serializes every dispatch.
type Coordinator struct {
	mu       sync.Mutex
	state    state.AppState
	ready    bool
	view     View
	effects  Effector
	names    NameStore
	reporter effects.Reporter
}

// NewCoordinator wires a Coordinator. The view may be attached later with
// SetView.
func NewCoordinator(effector Effector, names NameStore, reporter effects.Reporter) *Coordinator {
	if reporter == nil {
		reporter = effects.ReporterFunc(func(error) {})
	}
	return &Coordinator{
		effects:  effector,
		names:    names,
		reporter: reporter,
	}
}

// SetView attaches the view. If state already exists it is synced at once.
func (c *Coordinator) SetView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	if c.ready {
		c.sync()
	}
}

// Dispatch reduces a, stores the next state, persists a display name
// change, hands any command to the effector and syncs the view. Actions
// arriving before the first talk list are dropped.
func (c *Coordinator) Dispatch(a state.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		log.Debug().Str("action", fmt.Sprintf("%T", a)).Msg("dispatch before first poll dropped")
		return
	}
	c.dispatch(a)
}

// Update receives talk lists from the sync loop. The first one builds the
// initial state from the persisted name; later ones dispatch SetTalks.
func (c *Coordinator) Update(list []talks.Talk) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		c.dispatch(state.SetTalks{Talks: list})
		return
	}
	user := ""
	if c.names != nil {
		user = c.names.LoadName()
	}
	c.state = state.New(user, list)
	c.ready = true
	log.Info().Str("user", c.state.User).Int("talks", len(list)).Msg("initial talk list received")
	c.sync()
}

// State returns a copy of the current state, and false before the first
// talk list arrived.
func (c *Coordinator) State() (state.AppState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone(), c.ready
}

func (c *Coordinator) dispatch(a state.Action) {
	next, cmd := state.Reduce(c.state, a)
	c.state = next

	if u, ok := a.(state.SetUser); ok && c.names != nil {
		if err := c.names.SaveName(u.User); err != nil {
			log.Warn().Err(err).Msg("persist display name failed")
			c.reporter.Report(fmt.Errorf("save display name: %w", err))
		}
	}
	if cmd != nil && c.effects != nil {
		c.effects.Execute(cmd)
	}
	c.sync()
}

func (c *Coordinator) sync() {
	if c.view == nil {
		return
	}
	c.view.Sync(c.state.Clone())
}
