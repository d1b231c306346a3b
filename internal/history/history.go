package history

import (
	"errors"
	"sync"

	"github.com/drperfidious/netstatus/internal/domain"
)

// DefaultCapacity bounds the in-memory window when no capacity is configured.
const DefaultCapacity = 500

// ErrOutOfOrder is returned when an append would break the non-decreasing
// timestamp ordering of the history. It indicates a programming defect in
// the caller, not a runtime condition to tolerate.
var ErrOutOfOrder = errors.New("history: record timestamp precedes latest record")

// Store is a capacity-bounded, time-ordered buffer of check records.
// A single writer appends; any number of readers take snapshot copies.
type Store struct {
	mu       sync.RWMutex
	capacity int
	records  []domain.CheckRecord
}

func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		records:  make([]domain.CheckRecord, 0, capacity),
	}
}

// Append adds a record at the tail, evicting the oldest record when the
// store is full. Records must arrive in non-decreasing timestamp order.
func (s *Store) Append(rec domain.CheckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.records); n > 0 && rec.Timestamp.Before(s.records[n-1].Timestamp) {
		return ErrOutOfOrder
	}
	if len(s.records) == s.capacity {
		copy(s.records, s.records[1:])
		s.records = s.records[:s.capacity-1]
	}
	s.records = append(s.records, rec)
	return nil
}

// Snapshot returns an independent copy of the current contents, oldest first.
func (s *Store) Snapshot() []domain.CheckRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CheckRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Latest returns the most recent record, or false if the store is empty.
func (s *Store) Latest() (domain.CheckRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return domain.CheckRecord{}, false
	}
	return s.records[len(s.records)-1], true
}

// Recent returns up to n records in newest-first order.
func (s *Store) Recent(n int) []domain.CheckRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.records) == 0 {
		return nil
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]domain.CheckRecord, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Len reports the number of records currently retained.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
