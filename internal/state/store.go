package state

import (
	"fmt"
	"sync"
	"time"
)

// SyncSnapshot describes the health of the long-poll loop for display.
type SyncSnapshot struct {
	Live                bool // at least one talk list has been received
	LastUpdated         time.Time
	LastChange          time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether the server has been unreachable for multiple polls.
func (s SyncSnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// SyncStatus coordinates concurrent updates to the sync snapshot. The zero
// value is ready to use.
type SyncStatus struct {
	mu       sync.RWMutex
	snapshot SyncSnapshot
}

// RecordChange notes a poll that delivered a new talk list.
func (s *SyncStatus) RecordChange() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.Live = true
	s.snapshot.LastUpdated = now
	s.snapshot.LastChange = now
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// RecordNotModified notes a long poll that ended without changes.
func (s *SyncStatus) RecordNotModified() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// RecordFailure keeps the previous data but records err for visibility.
func (s *SyncStatus) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current snapshot.
func (s *SyncStatus) Snapshot() SyncSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
