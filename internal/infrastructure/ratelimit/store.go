package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor is one client's token bucket and the last time it was used
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store is a thread-safe set of per-key token buckets. Idle buckets are
// evicted by a janitor goroutine that runs until Close.
type Store struct {
	visitors map[string]*visitor
	mutex    sync.Mutex

	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewStore creates a store allowing perMinute requests per key, with a
// burst of the same size. Buckets idle for longer than idleTTL are dropped.
func NewStore(perMinute int, idleTTL time.Duration) *Store {
	return newStore(perMinute, idleTTL, idleTTL/2, time.Now)
}

func newStore(perMinute int, idleTTL, sweepEvery time.Duration, now func() time.Time) *Store {
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}

	s := &Store{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
		idle:     idleTTL,
		now:      now,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	go s.cleanupIdle(sweepEvery)

	return s
}

// Allow reports whether key may make a request now, consuming a token if so
func (s *Store) Allow(key string) bool {
	s.mutex.Lock()
	v, exists := s.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = s.now()
	s.mutex.Unlock()

	return v.limiter.Allow()
}

// Size returns the number of tracked keys
func (s *Store) Size() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.visitors)
}

// Close stops the janitor goroutine and waits for it to exit. It is safe to
// call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
}

// cleanupIdle removes idle buckets periodically
func (s *Store) cleanupIdle(every time.Duration) {
	defer close(s.stopped)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Store) evictIdle() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-s.idle)
	for key, v := range s.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(s.visitors, key)
		}
	}
}
