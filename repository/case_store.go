package repository

import (
	"fmt"
	"sync"
	"time"

	"commandcenter-backend/models"

	"github.com/google/uuid"
)

// CaseStore is the in-memory snapshot of every case collection. Mutations
// go through its methods; reads return deep copies so callers can compute
// over them without holding the lock.
type CaseStore struct {
	mu   sync.RWMutex
	data models.Snapshot
	now  func() time.Time
}

// StoreOption configures a CaseStore
type StoreOption func(*CaseStore)

// WithClock sets the clock used to stamp created entities
func WithClock(now func() time.Time) StoreOption {
	return func(s *CaseStore) {
		s.now = now
	}
}

// LoadCaseStore validates snap and creates a store seeded with it
func LoadCaseStore(snap models.Snapshot, opts ...StoreOption) (*CaseStore, error) {
	if err := ValidateSnapshot(snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return NewCaseStore(snap, opts...), nil
}

// NewCaseStore creates a store seeded with a copy of snap. The snapshot is
// trusted; use LoadCaseStore for data from outside the program.
func NewCaseStore(snap models.Snapshot, opts ...StoreOption) *CaseStore {
	s := &CaseStore{
		data: snap.Clone(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of every collection
func (s *CaseStore) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// CaseRecord returns the judgment record
func (s *CaseStore) CaseRecord() models.CaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.data.Case
	rec.DomesticationTargets = append([]string(nil), rec.DomesticationTargets...)
	return rec
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func invalid(field string, value any) error {
	return fmt.Errorf("%w: %s %v", ErrInvalidValue, field, value)
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func duplicate(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrDuplicateID)
}
