package inmemory

import (
	"context"
	"sync"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"
)

// PositionStore is a map-backed implementation of ports.PositionStore.
type PositionStore struct {
	mu        sync.RWMutex
	positions map[kernel.UUID]ports.PositionRecord
}

// NewPositionStore creates an empty position store.
func NewPositionStore() *PositionStore {
	return &PositionStore{positions: make(map[kernel.UUID]ports.PositionRecord)}
}

// Set stores the record unless a newer one is already held.
func (s *PositionStore) Set(_ context.Context, missionID kernel.UUID, record ports.PositionRecord) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.positions[missionID]; ok && !record.ReportedAt.After(existing.ReportedAt) {
		return nil
	}
	s.positions[missionID] = record
	return nil
}

// Get returns the stored record for a mission.
func (s *PositionStore) Get(_ context.Context, missionID kernel.UUID) (ports.PositionRecord, error) {
	if err := missionID.Validate(); err != nil {
		return ports.PositionRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.positions[missionID]
	if !ok {
		return ports.PositionRecord{}, errs.NewObjectNotFoundError("missionId", missionID)
	}
	return record, nil
}

// Delete removes the stored record, if any.
func (s *PositionStore) Delete(_ context.Context, missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, missionID)
	return nil
}
