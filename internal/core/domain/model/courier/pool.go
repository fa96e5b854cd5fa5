package courier

import (
	"sync"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/errs"
)

// Pool is the in-memory registry of signed-on couriers. All methods are
// safe for concurrent use; reads take the shared lock so position updates
// and heartbeats do not serialize behind each other's dispatch scans.
type Pool struct {
	mu       sync.RWMutex
	couriers map[kernel.UUID]*Availability
}

// NewPool creates an empty courier pool.
func NewPool() *Pool {
	return &Pool{couriers: make(map[kernel.UUID]*Availability)}
}

// SignOn registers a courier as available. Signing on while already signed
// on resets the record: position and capacity are taken from the new
// sign-on and the active-mission count starts at zero.
func (p *Pool) SignOn(courierID kernel.UUID, position kernel.GeoPoint, capacity int, now time.Time) error {
	availability, err := NewAvailability(courierID, position, capacity, now)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.couriers[courierID] = availability
	return nil
}

// SignOff removes a courier from the pool. Missions already assigned to the
// courier are untouched; signing off only stops new assignments.
func (p *Pool) SignOff(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.couriers[courierID]; !ok {
		return errs.NewObjectNotFoundError("courierId", courierID)
	}
	delete(p.couriers, courierID)
	return nil
}

// Heartbeat refreshes a courier's liveness timestamp.
func (p *Pool) Heartbeat(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	availability, ok := p.couriers[courierID]
	if !ok {
		return errs.NewObjectNotFoundError("courierId", courierID)
	}
	availability.Heartbeat(now)
	return nil
}

// UpdatePosition moves a signed-on courier. Position reports double as
// heartbeats. Reports from couriers that are not signed on are dropped
// silently: couriers keep streaming positions briefly after sign-off.
func (p *Pool) UpdatePosition(courierID kernel.UUID, position kernel.GeoPoint, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	availability, ok := p.couriers[courierID]
	if !ok {
		return nil
	}
	return availability.UpdatePosition(position, now)
}

// Get returns a snapshot of one courier's availability.
func (p *Pool) Get(courierID kernel.UUID) (Availability, error) {
	if err := courierID.Validate(); err != nil {
		return Availability{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	availability, ok := p.couriers[courierID]
	if !ok {
		return Availability{}, errs.NewObjectNotFoundError("courierId", courierID)
	}
	return *availability, nil
}

// Candidates returns snapshots of every courier with spare capacity, in no
// particular order. Ranking them is the dispatcher's job.
func (p *Pool) Candidates() []Availability {
	p.mu.RLock()
	defer p.mu.RUnlock()

	candidates := make([]Availability, 0, len(p.couriers))
	for _, availability := range p.couriers {
		if availability.CanAccept() {
			candidates = append(candidates, *availability)
		}
	}
	return candidates
}

// Book reserves one unit of the courier's capacity after a successful
// assignment. Booking a courier that signed off mid-dispatch is not an
// error: the assignment stands, the courier just stops receiving new ones.
func (p *Pool) Book(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	availability, ok := p.couriers[courierID]
	if !ok {
		return nil
	}
	return availability.IncrementActive()
}

// Release frees one unit of the courier's capacity when a mission reaches a
// terminal status.
func (p *Pool) Release(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if availability, ok := p.couriers[courierID]; ok {
		availability.DecrementActive()
	}
	return nil
}

// PruneStale signs off every courier that has been silent longer than
// maxAge and returns their IDs.
func (p *Pool) PruneStale(now time.Time, maxAge time.Duration) []kernel.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()

	var pruned []kernel.UUID
	for id, availability := range p.couriers {
		if availability.IsStale(now, maxAge) {
			delete(p.couriers, id)
			pruned = append(pruned, id)
		}
	}
	return pruned
}

// Size returns the number of signed-on couriers.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.couriers)
}
