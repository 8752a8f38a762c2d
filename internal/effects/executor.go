// Package effects performs the network requests described by reducer
// commands.
//
// Commands are fire-and-forget: Execute returns immediately and the request
// runs on its own goroutine. Failures never reach the dispatcher; they go to
// a Reporter. Wait blocks until every started command has finished, which
// one-shot CLI commands use before exiting.
package effects

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/five82/skillshare/internal/metrics"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

// Reporter is the global user-visible error path.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

// Report implements Reporter.
func (f ReporterFunc) Report(err error) { f(err) }

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 5
	defaultRateBurst = 10
)

// Options configure an Executor. Zero values use defaults.
type Options struct {
	Timeout   time.Duration
	RateLimit float64 // commands per second
	RateBurst int
	Metrics   *metrics.Metrics
}

// Executor issues commands against the talk server.
type Executor struct {
	ctx      context.Context
	client   talks.Mutator
	reporter Reporter
	limiter  *rate.Limiter
	timeout  time.Duration
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
}

// NewExecutor builds an Executor whose requests are bound to ctx.
func NewExecutor(ctx context.Context, client talks.Mutator, reporter Reporter, opts Options) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = defaultRateBurst
	}
	if reporter == nil {
		reporter = ReporterFunc(func(error) {})
	}
	return &Executor{
		ctx:      ctx,
		client:   client,
		reporter: reporter,
		limiter:  rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		timeout:  opts.Timeout,
		metrics:  opts.Metrics,
	}
}

// Execute starts cmd in the background. A nil cmd is ignored.
func (e *Executor) Execute(cmd state.Command) {
	if cmd == nil {
		return
	}
	id := uuid.NewString()
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		logger := log.With().
			Str("command_id", id).
			Str("kind", cmd.Kind()).
			Str("method", cmd.Method()).
			Str("path", cmd.Path()).
			Logger()

		if err := e.run(cmd); err != nil {
			e.metrics.Command(cmd.Kind(), metrics.CommandError)
			logger.Warn().Err(err).Msg("command failed")
			e.reporter.Report(err)
			return
		}
		e.metrics.Command(cmd.Kind(), metrics.CommandOK)
		logger.Debug().Msg("command done")
	}()
}

// Wait blocks until all started commands have finished.
func (e *Executor) Wait() {
	e.wg.Wait()
}

func (e *Executor) run(cmd state.Command) error {
	if err := e.limiter.Wait(e.ctx); err != nil {
		return fmt.Errorf("%s %s: %w", cmd.Method(), cmd.Path(), err)
	}
	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	switch c := cmd.(type) {
	case state.PutTalk:
		return e.client.PutTalk(ctx, c.Title, c.Presenter, c.Summary)
	case state.RemoveTalk:
		return e.client.DeleteTalk(ctx, c.Title)
	case state.PostComment:
		return e.client.PostComment(ctx, c.Talk, c.Author, c.Message)
	}
	return fmt.Errorf("unsupported command %T", cmd)
}
