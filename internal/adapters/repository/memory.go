package repository

import (
	"context"
	"sync"
	"time"

	"github.com/podiumlab/podium/internal/domain/model"
	"github.com/podiumlab/podium/pkg/metrics"
)

// MemoryStore is the in-memory Store implementation. One writer path
// (the loader) and many reader paths (renders, stats) share it under a
// read-write lock.
type MemoryStore struct {
	mu       sync.RWMutex
	rows     []model.Row
	loadedAt time.Time
	now      func() time.Time
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the time source, useful in tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace swaps in a new dataset.
func (s *MemoryStore) Replace(_ context.Context, rows []model.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.loadedAt = s.now()
	metrics.UpdateRowsLoaded(len(rows))
	metrics.UpdateLastLoad(s.loadedAt.Unix())
}

// Snapshot returns the current dataset.
func (s *MemoryStore) Snapshot(_ context.Context) []model.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Count returns the number of rows in the current dataset.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// LastLoad returns when the dataset was last replaced.
func (s *MemoryStore) LastLoad(_ context.Context) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
