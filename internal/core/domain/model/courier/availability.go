package courier

import (
	"errors"
	"fmt"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/guard"
)

// ErrAvailabilityIsNotConstructed is returned when using an improperly
// initialized Availability.
var ErrAvailabilityIsNotConstructed = errors.New(
	"Availability must be created via NewAvailability constructor")

// defaultCapacity is the number of missions a courier works at once unless
// the sign-on says otherwise.
const defaultCapacity = 1

// Availability is one courier's presence record: last known position, how
// many missions they currently work, and liveness timestamps. It is owned
// by the Pool and must only be mutated while holding the pool lock.
type Availability struct {
	courierID       kernel.UUID
	position        kernel.GeoPoint
	capacity        int
	activeMissions  int
	signedOnAt      time.Time
	lastHeartbeatAt time.Time

	guard guard.ConstructorGuard
}

// NewAvailability creates a presence record for a courier signing on at the
// given position. A non-positive capacity falls back to the default of one
// concurrent mission.
func NewAvailability(courierID kernel.UUID, position kernel.GeoPoint, capacity int, now time.Time) (*Availability, error) {
	if err := errors.Join(courierID.Validate(), position.Validate()); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &Availability{
		courierID:       courierID,
		position:        position,
		capacity:        capacity,
		signedOnAt:      now,
		lastHeartbeatAt: now,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Availability was created through the constructor.
func (a *Availability) Validate() error {
	if a == nil {
		return ErrAvailabilityIsNotConstructed
	}
	return a.guard.Validate(ErrAvailabilityIsNotConstructed)
}

// CourierID returns the courier this record belongs to.
func (a *Availability) CourierID() kernel.UUID {
	return a.courierID
}

// Position returns the courier's last known position.
func (a *Availability) Position() kernel.GeoPoint {
	return a.position
}

// Capacity returns how many missions the courier may work concurrently.
func (a *Availability) Capacity() int {
	return a.capacity
}

// ActiveMissions returns how many missions the courier currently works.
func (a *Availability) ActiveMissions() int {
	return a.activeMissions
}

// SignedOnAt returns when the courier signed on. Used as the dispatch
// tie-break: between equally distant couriers the longest-waiting one wins.
func (a *Availability) SignedOnAt() time.Time {
	return a.signedOnAt
}

// LastHeartbeatAt returns the last time the courier showed signs of life.
func (a *Availability) LastHeartbeatAt() time.Time {
	return a.lastHeartbeatAt
}

// CanAccept reports whether the courier has spare capacity for one more
// mission.
func (a *Availability) CanAccept() bool {
	return a.activeMissions < a.capacity
}

// IncrementActive books one more mission onto the courier.
func (a *Availability) IncrementActive() error {
	if !a.CanAccept() {
		return errs.NewValueIsOutOfRangeError("activeMissions", a.activeMissions+1, 0, a.capacity)
	}
	a.activeMissions++
	return nil
}

// DecrementActive releases one mission from the courier. Releasing below
// zero is clamped: a sign-off race may release a mission that was never
// booked on this record.
func (a *Availability) DecrementActive() {
	if a.activeMissions > 0 {
		a.activeMissions--
	}
}

// UpdatePosition moves the courier and refreshes the heartbeat.
func (a *Availability) UpdatePosition(position kernel.GeoPoint, now time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}
	a.position = position
	a.lastHeartbeatAt = now
	return nil
}

// Heartbeat refreshes the liveness timestamp without moving the courier.
func (a *Availability) Heartbeat(now time.Time) {
	a.lastHeartbeatAt = now
}

// IsStale reports whether the courier has been silent longer than maxAge.
func (a *Availability) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(a.lastHeartbeatAt) > maxAge
}

// DistanceKmTo returns the great-circle distance from the courier's last
// known position to the given point.
func (a *Availability) DistanceKmTo(point kernel.GeoPoint) (float64, error) {
	return a.position.DistanceKm(point)
}

// String implements fmt.Stringer for logs.
func (a *Availability) String() string {
	return fmt.Sprintf("courier %s at %s (%d/%d missions)",
		a.courierID, a.position, a.activeMissions, a.capacity)
}
