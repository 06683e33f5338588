// Package snapshot holds the single currently published host snapshot.
package snapshot

import (
	"sync/atomic"
	"time"

	"sysglance/internal/stats"
)

// entry pairs a snapshot with its publish time. The pair is published
// as one pointer swap, so readers always observe a matching pair.
type entry struct {
	snap      *stats.Snapshot
	published int64 // unix seconds
}

// Store is a lock-free single-slot cache with a fixed TTL. Get and Put
// complete in bounded time regardless of concurrent callers, and a
// snapshot handed out by Get stays valid across later Puts.
type Store struct {
	slot       atomic.Pointer[entry]
	ttlSeconds int64
	now        func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, time.Now)
}

// NewStoreWithClock lets callers supply the clock. Production code uses
// NewStore; tests pin time to exercise the expiry boundary.
func NewStoreWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		ttlSeconds: int64(ttl / time.Second),
		now:        now,
	}
}

// Get returns the published snapshot if one exists and its age has not
// exceeded the TTL. An age of exactly the TTL still counts as fresh.
func (s *Store) Get() (*stats.Snapshot, bool) {
	e := s.slot.Load()
	if e == nil {
		return nil, false
	}

	if s.now().Unix()-e.published > s.ttlSeconds {
		return nil, false
	}

	return e.snap, true
}

// Put publishes a snapshot, replacing the current one and resetting the
// staleness clock.
func (s *Store) Put(snap *stats.Snapshot) {
	s.slot.Store(&entry{
		snap:      snap,
		published: s.now().Unix(),
	})
}
