package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/five82/skillshare/internal/config"
	"github.com/five82/skillshare/internal/effects"
	"github.com/five82/skillshare/internal/longpoll"
	"github.com/five82/skillshare/internal/metrics"
	"github.com/five82/skillshare/internal/prefs"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
	"github.com/five82/skillshare/internal/ui"
)

// Deps are collaborators the caller may supply. Nil fields are created by
// Build.
type Deps struct {
	Names    *prefs.File
	Status   *state.SyncStatus
	Reporter effects.Reporter
}

// Services is the wired client: one talk list, one executor, one sync loop.
type Services struct {
	Config      config.Config
	Metrics     *metrics.Metrics
	Status      *state.SyncStatus
	Names       *prefs.File
	Fetcher     talks.Fetcher
	Poller      *longpoll.Poller
	Executor    *effects.Executor
	Coordinator *Coordinator
}

// Build wires clients, executor, coordinator and poller from cfg. Commands
// are bound to ctx.
func Build(ctx context.Context, cfg config.Config, deps Deps) (*Services, error) {
	pollClient, err := talks.NewClient(cfg.ServerURL, cfg.PollTimeout())
	if err != nil {
		return nil, fmt.Errorf("init talk client: %w", err)
	}
	cmdClient, err := talks.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init talk client: %w", err)
	}

	if deps.Status == nil {
		deps.Status = &state.SyncStatus{}
	}
	if deps.Names == nil {
		deps.Names = prefs.NewFile(cfg.PrefsPath)
	}

	m := metrics.New()
	exec := effects.NewExecutor(ctx, cmdClient, deps.Reporter, effects.Options{
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Metrics:   m,
	})
	poller := longpoll.New(pollClient, longpoll.Options{
		Wait:    cfg.Wait(),
		Backoff: cfg.RetryBackoff,
		Status:  deps.Status,
		Metrics: m,
	})

	return &Services{
		Config:      cfg,
		Metrics:     m,
		Status:      deps.Status,
		Names:       deps.Names,
		Fetcher:     pollClient,
		Poller:      poller,
		Executor:    exec,
		Coordinator: NewCoordinator(exec, deps.Names, deps.Reporter),
	}, nil
}

// ServeMetrics starts the Prometheus endpoint when metrics_addr is set.
func (s *Services) ServeMetrics(ctx context.Context) {
	addr := s.Config.MetricsAddr
	if addr == "" {
		return
	}
	go func() {
		if err := s.Metrics.Serve(ctx, addr); err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
}

// Run boots the terminal view until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	names := prefs.NewFile(cfg.PrefsPath)
	status := &state.SyncStatus{}

	var coord *Coordinator
	view := ui.New(ui.Options{
		Context:   ctx,
		ServerURL: cfg.ServerURL,
		Status:    status,
		Prefs:     names,
		Dispatch:  func(a state.Action) { coord.Dispatch(a) },
	})

	svc, err := Build(ctx, cfg, Deps{Names: names, Status: status, Reporter: view})
	if err != nil {
		return err
	}
	coord = svc.Coordinator
	coord.SetView(view)

	svc.ServeMetrics(ctx)
	done := svc.StartSync(ctx)

	err = view.Run()
	cancel()
	<-done
	svc.Executor.Wait()
	return err
}

// Oneshot initializes state from a single unconditional fetch, dispatches
// each action in order and waits for the resulting commands. It returns the
// final state and the reported errors, joined when there is more than one.
func Oneshot(ctx context.Context, cfg config.Config, actions ...state.Action) (state.AppState, error) {
	errs := &errorLog{}
	svc, err := Build(ctx, cfg, Deps{Reporter: errs})
	if err != nil {
		return state.AppState{}, err
	}
	if err := svc.Bootstrap(ctx); err != nil {
		return state.AppState{}, err
	}
	for _, a := range actions {
		svc.Coordinator.Dispatch(a)
	}
	svc.Executor.Wait()

	st, _ := svc.Coordinator.State()
	return st, errs.err()
}

type errorLog struct {
	mu   sync.Mutex
	errs []error
}

func (l *errorLog) Report(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *errorLog) err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.errs) == 0 {
		return nil
	}
	if len(l.errs) == 1 {
		return l.errs[0]
	}
	return errors.Join(l.errs...)
}
