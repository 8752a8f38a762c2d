package ui

import (
	"context"
	"sync"

	"github.com/five82/skillshare/internal/state"
)

// dispatchQueue hands actions to the coordinator from a single worker, in
// the order they were enqueued. Enqueue never blocks, so Update may call it
// while the coordinator is waiting on Program.Send.
type dispatchQueue struct {
	mu       sync.Mutex
	pending  []state.Action
	wake     chan struct{}
	dispatch func(state.Action)
}

func newDispatchQueue(ctx context.Context, dispatch func(state.Action)) *dispatchQueue {
	q := &dispatchQueue{
		wake:     make(chan struct{}, 1),
		dispatch: dispatch,
	}
	go q.run(ctx)
	return q
}

// Enqueue appends a and wakes the worker.
func (q *dispatchQueue) Enqueue(a state.Action) {
	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *dispatchQueue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}
		for {
			a, ok := q.next()
			if !ok {
				break
			}
			q.dispatch(a)
		}
	}
}

func (q *dispatchQueue) next() (state.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, false
	}
	a := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return a, true
}
