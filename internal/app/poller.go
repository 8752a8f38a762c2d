package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/five82/skillshare/internal/metrics"
	"github.com/five82/skillshare/internal/talks"
)

// StartSync launches the long-poll loop feeding the coordinator. The
// returned channel closes once the loop has stopped.
func (s *Services) StartSync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := s.Poller.Run(ctx, s.Coordinator.Update)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("sync loop stopped")
			return
		}
		log.Debug().Msg("sync loop stopped")
	}()
	return done
}

// Bootstrap performs one unconditional fetch and hands the list to the
// coordinator. One-shot commands use it instead of the sync loop.
func (s *Services) Bootstrap(ctx context.Context) error {
	poll, err := s.Fetcher.FetchTalks(ctx, talks.Conditional{})
	if err != nil {
		s.Status.RecordFailure(err)
		s.Metrics.Poll(metrics.PollError)
		return fmt.Errorf("fetch talks: %w", err)
	}
	s.Status.RecordChange()
	s.Metrics.Poll(metrics.PollUpdated)
	s.Metrics.Talks(len(poll.Talks))
	s.Coordinator.Update(poll.Talks)
	return nil
}
