package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"
)

// missionSnapshot is the stored form of a mission: plain fields, no shared
// pointers with the caller's aggregate.
type missionSnapshot struct {
	id                 kernel.UUID
	missionType        mission.Type
	merchantID         *kernel.UUID
	originAddress      string
	origin             kernel.GeoPoint
	destinationAddress string
	destination        kernel.GeoPoint
	estimate           mission.Estimate
	status             mission.Status
	tripState          mission.TripState
	courierID          *kernel.UUID
	position           *kernel.GeoPoint
	positionAt         time.Time
	createdAt          time.Time
}

// MissionStore is a thread-safe in-memory mission repository plus the unit
// of work machinery around it. Transactions buffer writes and apply them on
// Commit.
type MissionStore struct {
	mu       sync.RWMutex
	missions map[kernel.UUID]missionSnapshot
}

// NewMissionStore creates an empty mission store.
func NewMissionStore() *MissionStore {
	return &MissionStore{missions: make(map[kernel.UUID]missionSnapshot)}
}

// Create returns a unit of work over this store.
func (s *MissionStore) Create() *UnitOfWork {
	return &UnitOfWork{store: s}
}

func snapshotOf(m *mission.Mission) missionSnapshot {
	snap := missionSnapshot{
		id:                 m.ID(),
		missionType:        m.Type(),
		originAddress:      m.OriginAddress(),
		origin:             m.Origin(),
		destinationAddress: m.DestinationAddress(),
		destination:        m.Destination(),
		estimate:           m.Estimate(),
		status:             m.Status(),
		tripState:          m.TripState(),
		positionAt:         m.PositionAt(),
		createdAt:          m.CreatedAt(),
	}
	if m.MerchantID() != nil {
		id := *m.MerchantID()
		snap.merchantID = &id
	}
	if m.CourierID() != nil {
		id := *m.CourierID()
		snap.courierID = &id
	}
	if m.Position() != nil {
		p := *m.Position()
		snap.position = &p
	}
	return snap
}

func (s missionSnapshot) restore() (*mission.Mission, error) {
	return mission.RestoreMission(
		s.id, s.missionType, s.merchantID,
		s.originAddress, s.origin,
		s.destinationAddress, s.destination,
		s.estimate, s.status, s.tripState,
		s.courierID, s.position, s.positionAt, s.createdAt,
	)
}

// UnitOfWork buffers writes until Commit. Reads see committed state plus
// the transaction's own buffered writes.
type UnitOfWork struct {
	store   *MissionStore
	active  bool
	pending map[kernel.UUID]missionSnapshot
}

// Begin starts the transaction.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return errs.NewValueIsInvalidError("transaction already active")
	}
	u.active = true
	u.pending = make(map[kernel.UUID]missionSnapshot)
	return nil
}

// Commit applies buffered writes atomically.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return errs.NewValueIsInvalidError("no active transaction")
	}

	u.store.mu.Lock()
	for id, snap := range u.pending {
		u.store.missions[id] = snap
	}
	u.store.mu.Unlock()

	u.active = false
	u.pending = nil
	return nil
}

// Rollback discards buffered writes. Rolling back an already finished
// transaction is a no-op, matching the deferred-rollback handler pattern.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.active = false
	u.pending = nil
	return nil
}

// MissionRepository returns the repository bound to this transaction.
func (u *UnitOfWork) MissionRepository() ports.MissionRepository {
	return &missionRepository{uow: u}
}

type missionRepository struct {
	uow *UnitOfWork
}

func (r *missionRepository) Add(_ context.Context, aggregate *mission.Mission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := r.find(aggregate.ID()); err == nil {
		return errs.NewValueIsInvalidError("mission already exists")
	}

	r.uow.pending[aggregate.ID()] = snapshotOf(aggregate)
	return nil
}

func (r *missionRepository) Update(_ context.Context, aggregate *mission.Mission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := r.find(aggregate.ID()); err != nil {
		return err
	}

	r.uow.pending[aggregate.ID()] = snapshotOf(aggregate)
	return nil
}

func (r *missionRepository) Get(_ context.Context, id kernel.UUID) (*mission.Mission, error) {
	snap, err := r.find(id)
	if err != nil {
		return nil, err
	}
	return snap.restore()
}

func (r *missionRepository) GetAllPending(_ context.Context) ([]*mission.Mission, error) {
	return r.collect(func(s missionSnapshot) bool {
		return s.status == mission.StatusPending
	})
}

func (r *missionRepository) GetAllActive(_ context.Context) ([]*mission.Mission, error) {
	return r.collect(func(s missionSnapshot) bool {
		return s.status.IsActive()
	})
}

func (r *missionRepository) find(id kernel.UUID) (missionSnapshot, error) {
	if snap, ok := r.uow.pending[id]; ok {
		return snap, nil
	}

	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	if snap, ok := r.uow.store.missions[id]; ok {
		return snap, nil
	}
	return missionSnapshot{}, errs.NewObjectNotFoundError("missionId", id)
}

func (r *missionRepository) collect(match func(missionSnapshot) bool) ([]*mission.Mission, error) {
	r.uow.store.mu.RLock()
	snapshots := make([]missionSnapshot, 0)
	for id, snap := range r.uow.store.missions {
		if _, overridden := r.uow.pending[id]; overridden {
			continue
		}
		if match(snap) {
			snapshots = append(snapshots, snap)
		}
	}
	r.uow.store.mu.RUnlock()

	for _, snap := range r.uow.pending {
		if match(snap) {
			snapshots = append(snapshots, snap)
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].createdAt.Before(snapshots[j].createdAt)
	})

	missions := make([]*mission.Mission, 0, len(snapshots))
	for _, snap := range snapshots {
		m, err := snap.restore()
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, nil
}
