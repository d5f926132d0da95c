package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps codes in process memory. Entries are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	opts    options
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{
		entries: make(map[string]Entry),
		opts:    o,
	}
}

// Issue stores a fresh code for recipient, replacing any pending one
func (s *MemoryStore) Issue(_ context.Context, recipient string) (Entry, error) {
	entry, err := s.opts.newEntry()
	if err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	s.entries[recipient] = entry
	s.mu.Unlock()

	return entry, nil
}

// Confirm consumes the pending code for recipient if supplied matches it
func (s *MemoryStore) Confirm(_ context.Context, recipient, supplied string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[recipient]
	if !ok {
		return ErrNoPendingCode
	}
	if !s.opts.now().Before(entry.ExpiresAt) {
		delete(s.entries, recipient)
		return ErrNoPendingCode
	}
	if !matches(entry.Code, supplied) {
		return ErrCodeMismatch
	}

	delete(s.entries, recipient)
	return nil
}

// Expire drops the pending code for recipient
func (s *MemoryStore) Expire(_ context.Context, recipient string) error {
	s.mu.Lock()
	delete(s.entries, recipient)
	s.mu.Unlock()
	return nil
}

// Sweep removes expired entries and returns how many were dropped
func (s *MemoryStore) Sweep() int {
	now := s.opts.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for recipient, entry := range s.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(s.entries, recipient)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries held, expired or not
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
