package mission

import (
	"errors"
	"fmt"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/guard"
)

// Domain errors for mission construction.
var (
	// ErrMissionIsNotConstructed is returned when a Mission instance was not
	// created through NewMission or RestoreMission.
	ErrMissionIsNotConstructed = errors.New("Mission must be created via NewMission or RestoreMission constructors")
	// ErrOriginAddressIsRequired is returned when the origin address is empty.
	ErrOriginAddressIsRequired = errs.NewValueIsRequiredError("originAddress")
	// ErrDestinationAddressIsRequired is returned when the destination address is empty.
	ErrDestinationAddressIsRequired = errs.NewValueIsRequiredError("destinationAddress")
	// ErrMerchantIsRequired is returned when a delivery-type mission has no merchant.
	ErrMerchantIsRequired = errs.NewValueIsRequiredError("merchantId")
)

// Estimate carries the figures produced by the pricing collaborator at
// mission creation. They are immutable once set and never recomputed.
type Estimate struct {
	Price           float64
	CourierEarnings float64
	DistanceKm      float64
	Minutes         int
}

// Validate checks that all estimate figures are non-negative.
func (e Estimate) Validate() error {
	if e.Price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedPrice", fmt.Errorf("%f is negative", e.Price))
	}
	if e.CourierEarnings < 0 {
		return errs.NewValueIsInvalidErrorWithCause("courierEarnings", fmt.Errorf("%f is negative", e.CourierEarnings))
	}
	if e.DistanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDistanceKm", fmt.Errorf("%f is negative", e.DistanceKm))
	}
	if e.Minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedMinutes", fmt.Errorf("%d is negative", e.Minutes))
	}
	return nil
}

// Mission is the aggregate root for one delivery or ride job tracked
// end-to-end. It owns the status and trip-state machines and is the last
// line of defense for their invariants, even if callers misbehave.
//
// Invariants:
//   - status and trip state never regress except via the explicit CANCELLED
//     transition, which is terminal
//   - the trip state is undefined while PENDING or terminal and always
//     defined while ON_WAY
//   - the assigned courier is immutable once set; reassignment requires
//     cancel and recreate
//   - the stored courier position only moves forward in time
type Mission struct {
	id                 kernel.UUID
	missionType        Type
	merchantID         *kernel.UUID
	originAddress      string
	origin             kernel.GeoPoint
	destinationAddress string
	destination        kernel.GeoPoint
	estimate           Estimate
	status             Status
	tripState          TripState
	courierID          *kernel.UUID
	position           *kernel.GeoPoint
	positionAt         time.Time
	createdAt          time.Time

	guard guard.ConstructorGuard
}

// NewMission creates a mission in PENDING status with no courier and an
// undefined trip state.
//
// Validation rules:
//   - id must be a valid UUID and missionType a recognized type
//   - delivery-type missions (everything except RIDE) require a merchant
//   - both addresses must be non-empty and both coordinates valid
//   - estimate figures must be non-negative
//
// Errors from all failed rules are aggregated.
func NewMission(
	id kernel.UUID,
	missionType Type,
	merchantID *kernel.UUID,
	originAddress string,
	origin kernel.GeoPoint,
	destinationAddress string,
	destination kernel.GeoPoint,
	estimate Estimate,
	createdAt time.Time,
) (*Mission, error) {
	m := &Mission{
		status:    StatusPending,
		tripState: TripNone,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setType(missionType),
		m.setMerchantID(merchantID, missionType),
		m.setOriginAddress(originAddress),
		m.setOrigin(origin),
		m.setDestinationAddress(destinationAddress),
		m.setDestination(destination),
		m.setEstimate(estimate),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMission reconstructs a mission from persistent storage, preserving
// its full operational state. Unlike NewMission it accepts any legal
// (status, tripState, courier) combination and verifies their consistency.
func RestoreMission(
	id kernel.UUID,
	missionType Type,
	merchantID *kernel.UUID,
	originAddress string,
	origin kernel.GeoPoint,
	destinationAddress string,
	destination kernel.GeoPoint,
	estimate Estimate,
	status Status,
	tripState TripState,
	courierID *kernel.UUID,
	position *kernel.GeoPoint,
	positionAt time.Time,
	createdAt time.Time,
) (*Mission, error) {
	m := &Mission{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setType(missionType),
		m.setMerchantID(merchantID, missionType),
		m.setOriginAddress(originAddress),
		m.setOrigin(origin),
		m.setDestinationAddress(destinationAddress),
		m.setDestination(destination),
		m.setEstimate(estimate),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := validateStateConsistency(status, tripState, courierID != nil); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		id := *courierID
		m.courierID = &id
	}
	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
		p := *position
		m.position = &p
		m.positionAt = positionAt
	}

	m.status = status
	m.tripState = tripState
	return m, nil
}

// validateStateConsistency enforces the cross-field rules between status,
// trip state, and courier assignment.
func validateStateConsistency(status Status, tripState TripState, hasCourier bool) error {
	if !status.IsActive() && !tripState.IsNone() {
		return errs.NewValueIsInvalidErrorWithCause("tripState",
			fmt.Errorf("trip state %s is not allowed while status is %s", tripState, status))
	}
	if status == StatusOnWay && tripState.IsNone() {
		return errs.NewValueIsInvalidErrorWithCause("tripState",
			fmt.Errorf("trip state is required while status is %s", status))
	}
	if status == StatusPending && hasCourier {
		return errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("a %s mission cannot have a courier", status))
	}
	if (status.IsActive() || status == StatusDelivered) && !hasCourier {
		return errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("a %s mission requires a courier", status))
	}
	return nil
}

// Validate ensures the Mission was created through a constructor.
func (m *Mission) Validate() error {
	if m == nil {
		return ErrMissionIsNotConstructed
	}
	return m.guard.Validate(ErrMissionIsNotConstructed)
}

// IsEqual compares two missions by their unique identifiers.
func (m *Mission) IsEqual(other *Mission) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the mission's unique identifier.
func (m *Mission) ID() kernel.UUID {
	return m.id
}

// Type returns the mission type, fixed at creation.
func (m *Mission) Type() Type {
	return m.missionType
}

// MerchantID returns the merchant, or nil for RIDE missions without one.
func (m *Mission) MerchantID() *kernel.UUID {
	return m.merchantID
}

// OriginAddress returns the pickup address.
func (m *Mission) OriginAddress() string {
	return m.originAddress
}

// Origin returns the pickup coordinate.
func (m *Mission) Origin() kernel.GeoPoint {
	return m.origin
}

// DestinationAddress returns the drop-off address.
func (m *Mission) DestinationAddress() string {
	return m.destinationAddress
}

// Destination returns the drop-off coordinate.
func (m *Mission) Destination() kernel.GeoPoint {
	return m.destination
}

// Estimate returns the pricing figures computed at creation.
func (m *Mission) Estimate() Estimate {
	return m.estimate
}

// Status returns the coarse lifecycle status.
func (m *Mission) Status() Status {
	return m.status
}

// TripState returns the courier-side trip state, TripNone when undefined.
func (m *Mission) TripState() TripState {
	return m.tripState
}

// CourierID returns the assigned courier, or nil while unassigned.
func (m *Mission) CourierID() *kernel.UUID {
	return m.courierID
}

// Position returns the last accepted courier position, or nil before the
// first report.
func (m *Mission) Position() *kernel.GeoPoint {
	return m.position
}

// PositionAt returns the timestamp of the last accepted position report.
func (m *Mission) PositionAt() time.Time {
	return m.positionAt
}

// CreatedAt returns the mission creation time.
func (m *Mission) CreatedAt() time.Time {
	return m.createdAt
}

// AssignCourier commits the dispatcher's choice exactly once and advances
// the mission to ACCEPTED. Delivery-type missions enter TO_MERCHANT; RIDE
// missions stay without a trip state until pickup confirmation.
//
// Retrying with the courier that already holds the mission is an idempotent
// no-op and returns no event. A different courier fails with
// AlreadyAssignedError, which the dispatcher absorbs as the benign lost
// side of the assignment race.
func (m *Mission) AssignCourier(courierID kernel.UUID, now time.Time) (*Event, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	if m.courierID != nil {
		if m.courierID.IsEqual(courierID) {
			return nil, nil
		}
		return nil, errs.NewAlreadyAssignedError(m.id.String(), m.courierID.String())
	}

	if m.status.IsTerminal() {
		return nil, errs.NewTerminalStateError(m.status.String())
	}
	if m.status != StatusPending {
		return nil, errs.NewIllegalTransitionErrorWithCause(m.stateLabel(), StatusAccepted.String(),
			errors.New("courier assignment requires a pending mission"))
	}

	prevStatus, prevTrip := m.status, m.tripState
	assigned := courierID
	m.courierID = &assigned
	m.status = StatusAccepted
	if m.missionType.HasMerchantLeg() {
		m.tripState = TripToMerchant
	}

	event := newEvent(m.id, prevStatus, prevTrip, m.status, m.tripState, SystemActor(), now)
	return &event, nil
}

// ApplyTransition atomically checks the proposed (status, tripState) pair
// against the transition tables and commits it. At least one of the desired
// values must be supplied; nil means "keep the current value".
//
// Legality rules:
//   - terminal missions accept nothing (TerminalStateError)
//   - status follows only the edges of the coarse table; ACCEPTED is
//     entered exclusively through AssignCourier
//   - the trip state advances one step at a time and only while the
//     mission is active; RIDE missions enter the chain at TO_CUSTOMER
//   - DELIVERED and CANCELLED clear the trip state
//
// On success the committed Event to fan out is returned. Authorization of
// the actor against the edge is the lifecycle controller's concern, not the
// aggregate's.
func (m *Mission) ApplyTransition(actor Actor, desiredStatus *Status, desiredTripState *TripState, now time.Time) (Event, error) {
	if err := actor.Validate(); err != nil {
		return Event{}, err
	}
	if desiredStatus == nil && desiredTripState == nil {
		return Event{}, errs.NewValueIsRequiredError("desiredStatus or desiredTripState")
	}

	if m.status.IsTerminal() {
		return Event{}, errs.NewTerminalStateError(m.status.String())
	}

	targetStatus := m.status
	if desiredStatus != nil {
		if err := desiredStatus.Validate(); err != nil {
			return Event{}, err
		}
		targetStatus = *desiredStatus
	}

	targetTrip := m.tripState
	if desiredTripState != nil {
		if err := desiredTripState.Validate(); err != nil {
			return Event{}, err
		}
		targetTrip = *desiredTripState
	}

	if targetStatus == m.status && targetTrip == m.tripState {
		return Event{}, errs.NewIllegalTransitionErrorWithCause(m.stateLabel(), stateLabel(targetStatus, targetTrip),
			errors.New("transition does not change state"))
	}

	if targetStatus != m.status {
		if targetStatus == StatusAccepted {
			return Event{}, errs.NewIllegalTransitionErrorWithCause(m.stateLabel(), targetStatus.String(),
				errors.New("ACCEPTED is entered via courier assignment"))
		}
		if !m.status.CanTransitionTo(targetStatus) {
			return Event{}, errs.NewIllegalTransitionError(m.stateLabel(), stateLabel(targetStatus, targetTrip))
		}
	}

	if targetStatus.IsTerminal() {
		if desiredTripState != nil {
			return Event{}, errs.NewIllegalTransitionErrorWithCause(m.stateLabel(), stateLabel(targetStatus, targetTrip),
				errors.New("terminal status does not carry a trip state"))
		}
		targetTrip = TripNone
	} else {
		if targetTrip != m.tripState {
			if !targetStatus.IsActive() || !m.canAdvanceTrip(targetTrip) {
				return Event{}, errs.NewIllegalTransitionError(m.stateLabel(), stateLabel(targetStatus, targetTrip))
			}
		}
		if targetStatus == StatusOnWay && targetTrip.IsNone() {
			// pickup confirmation for rides enters the chain here
			targetTrip = m.missionType.InitialTripState()
		}
	}

	prevStatus, prevTrip := m.status, m.tripState
	m.status = targetStatus
	m.tripState = targetTrip

	return newEvent(m.id, prevStatus, prevTrip, m.status, m.tripState, actor, now), nil
}

// canAdvanceTrip reports whether the trip state may move to next from the
// current state, honoring the type's entry point into the chain.
func (m *Mission) canAdvanceTrip(next TripState) bool {
	if m.tripState.IsNone() {
		return !m.missionType.HasMerchantLeg() && next == m.missionType.InitialTripState()
	}
	return m.tripState.CanAdvanceTo(next)
}

// RecordPosition ingests a courier position report.
//
// Reports from any courier other than the assigned one fail with
// UnauthorizedActionError. Reports with a timestamp not newer than the last
// accepted one, or arriving while the mission is not active, are dropped
// silently: the return value reports whether the position was accepted.
func (m *Mission) RecordPosition(courierID kernel.UUID, point kernel.GeoPoint, at time.Time) (bool, error) {
	if err := errors.Join(courierID.Validate(), point.Validate()); err != nil {
		return false, err
	}
	if at.IsZero() {
		return false, errs.NewValueIsRequiredError("timestamp")
	}

	if m.courierID == nil || !m.courierID.IsEqual(courierID) {
		return false, errs.NewUnauthorizedActionError(
			fmt.Sprintf("courier %s", courierID),
			fmt.Sprintf("report position for mission %s", m.id))
	}

	if !m.status.IsActive() {
		return false, nil
	}
	if m.position != nil && !at.After(m.positionAt) {
		return false, nil
	}

	p := point
	m.position = &p
	m.positionAt = at
	return true, nil
}

// DistanceToDestinationKm returns the great-circle distance between the
// last accepted courier position and the destination. Fails with
// NoPositionError before the first accepted report.
func (m *Mission) DistanceToDestinationKm() (float64, error) {
	if m.position == nil {
		return 0, errs.NewNoPositionError(m.id.String())
	}
	return m.position.DistanceKm(m.destination)
}

// stateLabel renders the current (status, tripState) pair for error messages.
func (m *Mission) stateLabel() string {
	return stateLabel(m.status, m.tripState)
}

func stateLabel(status Status, tripState TripState) string {
	if tripState.IsNone() {
		return status.String()
	}
	return fmt.Sprintf("%s/%s", status, tripState)
}

func (m *Mission) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Mission) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.missionType = t
	return nil
}

func (m *Mission) setMerchantID(merchantID *kernel.UUID, t Type) error {
	if merchantID == nil {
		if t.HasMerchantLeg() {
			return ErrMerchantIsRequired
		}
		return nil
	}
	if err := merchantID.Validate(); err != nil {
		return err
	}
	id := *merchantID
	m.merchantID = &id
	return nil
}

func (m *Mission) setOriginAddress(address string) error {
	if address == "" {
		return ErrOriginAddressIsRequired
	}
	m.originAddress = address
	return nil
}

func (m *Mission) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	m.origin = origin
	return nil
}

func (m *Mission) setDestinationAddress(address string) error {
	if address == "" {
		return ErrDestinationAddressIsRequired
	}
	m.destinationAddress = address
	return nil
}

func (m *Mission) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	m.destination = destination
	return nil
}

func (m *Mission) setEstimate(estimate Estimate) error {
	if err := estimate.Validate(); err != nil {
		return err
	}
	m.estimate = estimate
	return nil
}
