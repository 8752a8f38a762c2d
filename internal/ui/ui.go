package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skillshare/internal/state"
)

// Program is the running terminal view. It satisfies the coordinator's
// View and the executor's Reporter.
type Program struct {
	ctx     context.Context
	program *tea.Program
}

// New builds the Bubble Tea program. Nothing is drawn until Run.
func New(opts Options) *Program {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Dispatch != nil {
		opts.Dispatch = newDispatchQueue(ctx, opts.Dispatch).Enqueue
	}
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	return &Program{ctx: ctx, program: p}
}

// Sync delivers a new state to the event loop.
func (p *Program) Sync(s state.AppState) {
	p.program.Send(stateMsg(s))
}

// Report shows err in the error banner.
func (p *Program) Report(err error) {
	if err == nil {
		return
	}
	p.program.Send(errorMsg{err: err})
}

// Run blocks until the user quits or the context is cancelled.
func (p *Program) Run() error {
	_, err := p.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && p.ctx.Err() != nil {
		return nil
	}
	return err
}
