package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"kelly-montecarlo/internal/storage"
)

type entry struct {
	run       *storage.Run
	expiresAt time.Time
}

// RunStore is an in-memory storage.RunStore with optional expiry.
type RunStore struct {
	mu   sync.RWMutex
	data map[string]*entry
	ttl  time.Duration
	now  func() time.Time
}

// NewRunStore creates a store whose entries expire after ttl. ttl <= 0 keeps
// entries forever.
func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		data: make(map[string]*entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

var _ storage.RunStore = (*RunStore)(nil)

// Save stores a copy of run. Returns ErrDuplicateKey if the ID is live.
func (s *RunStore) Save(_ context.Context, run *storage.Run) error {
	if run == nil || run.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.data[run.ID]; ok && !s.expired(e) {
		return storage.ErrDuplicateKey
	}

	stored := *run
	e := &entry{run: &stored}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.data[run.ID] = e
	return nil
}

// Get returns a copy of the run, or ErrNotFound if missing or expired.
func (s *RunStore) Get(_ context.Context, id string) (*storage.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || s.expired(e) {
		return nil, storage.ErrNotFound
	}
	cp := *e.run
	return &cp, nil
}

func (s *RunStore) List(_ context.Context, limit int) ([]*storage.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.Run, 0, len(s.data))
	for _, e := range s.data {
		if s.expired(e) {
			continue
		}
		cp := *e.run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Prune removes expired entries and returns how many were dropped.
func (s *RunStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, e := range s.data {
		if s.expired(e) {
			delete(s.data, id)
			dropped++
		}
	}
	return dropped
}

// StartJanitor prunes expired entries every interval until ctx is done.
func (s *RunStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Prune()
			}
		}
	}()
}

func (s *RunStore) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}
