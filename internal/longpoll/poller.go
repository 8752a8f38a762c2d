// Package longpoll keeps a talk list in sync with the server using
// conditional long-poll requests.
//
// The loop has two states. Without a sync token it sends plain GET /talks
// requests. Once a response carried an ETag it sends that tag in
// If-None-Match together with Prefer: wait=N, and the server holds the
// request until the list changes or N seconds elapse.
//
//   - transport or status failure: log, sleep the fixed backoff, retry with
//     the same token
//   - 304: retry immediately, no backoff
//   - anything else: store the new token, hand the list to the callback
//
// The token lives in Run's frame and is never shared. Run stops only when
// its context is cancelled.
package longpoll

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/skillshare/internal/metrics"
	"github.com/five82/skillshare/internal/state"
	"github.com/five82/skillshare/internal/talks"
)

const (
	// DefaultWait is the server-side hold hint sent with conditional polls.
	DefaultWait = 90 * time.Second
	// DefaultBackoff is the pause after a failed poll.
	DefaultBackoff = 500 * time.Millisecond
)

// UpdateFunc receives each new talk list.
type UpdateFunc func(list []talks.Talk)

// Options configure a Poller. Zero values use defaults.
type Options struct {
	Wait    time.Duration
	Backoff time.Duration
	Status  *state.SyncStatus
	Metrics *metrics.Metrics
}

// Poller runs the long-poll loop against a Fetcher.
type Poller struct {
	fetcher talks.Fetcher
	wait    time.Duration
	backoff time.Duration
	status  *state.SyncStatus
	metrics *metrics.Metrics
	sleep   func(ctx context.Context, d time.Duration) error
}

// New builds a Poller.
func New(fetcher talks.Fetcher, opts Options) *Poller {
	if opts.Wait <= 0 {
		opts.Wait = DefaultWait
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Status == nil {
		opts.Status = &state.SyncStatus{}
	}
	return &Poller{
		fetcher: fetcher,
		wait:    opts.Wait,
		backoff: opts.Backoff,
		status:  opts.Status,
		metrics: opts.Metrics,
		sleep:   sleepContext,
	}
}

// Status returns the store the loop reports into.
func (p *Poller) Status() *state.SyncStatus {
	return p.status
}

// Run polls until ctx is cancelled and returns ctx.Err().
func (p *Poller) Run(ctx context.Context, update UpdateFunc) error {
	var tag string
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		poll, err := p.fetcher.FetchTalks(ctx, talks.Conditional{ETag: tag, Wait: p.wait})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			attempt++
			p.status.RecordFailure(err)
			p.metrics.Poll(metrics.PollError)
			log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", p.backoff).Msg("talk poll failed")
			if err := p.sleep(ctx, p.backoff); err != nil {
				return err
			}
			continue
		}
		attempt = 0

		if poll.NotModified {
			p.status.RecordNotModified()
			p.metrics.Poll(metrics.PollNotModified)
			continue
		}

		tag = poll.ETag
		p.status.RecordChange()
		p.metrics.Poll(metrics.PollUpdated)
		p.metrics.Talks(len(poll.Talks))
		log.Debug().Str("etag", tag).Int("talks", len(poll.Talks)).Msg("talk list changed")
		update(poll.Talks)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
