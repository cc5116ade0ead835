// Package runstore keeps finished simulation results in memory so the ledger,
// chart and stream endpoints can serve them after the simulate call returns.
package runstore

import (
	"sync"
	"time"

	"lendsim/internal/sim"

	"github.com/google/uuid"
)

// StoredRun is one finished simulation kept for later retrieval.
type StoredRun struct {
	ID        string
	CreatedAt time.Time
	Result    *sim.Result
}

type entry struct {
	run       *StoredRun
	expiresAt time.Time
}

// Store is an in-memory, TTL-bounded run store. Results are not persisted
// across restarts.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]*entry
	ttl   time.Duration
	close chan struct{}
}

const defaultTTL = 1 * time.Hour

// NewStore creates a store whose entries expire after ttl (default 1h when
// ttl <= 0). A background sweep removes expired entries.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	s := &Store{
		runs:  make(map[string]*entry),
		ttl:   ttl,
		close: make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Put stores a result under a fresh run ID.
func (s *Store) Put(res *sim.Result) *StoredRun {
	run := &StoredRun{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Result:    res,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = &entry{run: run, expiresAt: run.CreatedAt.Add(s.ttl)}
	return run
}

// Get retrieves a run if present and not expired.
func (s *Store) Get(id string) (*StoredRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.runs[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.run, true
}

// Close stops the background sweep.
func (s *Store) Close() {
	close(s.close)
}

func (s *Store) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.close:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, e := range s.runs {
				if now.After(e.expiresAt) {
					delete(s.runs, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
