package ports

import (
	"context"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
)

// EventPublisher hands a committed transition event to the notification
// pipeline. Publish must never block the caller: the command handler has
// already committed, and notification delivery is best-effort.
type EventPublisher interface {
	Publish(event mission.Event)
}

// Subscriber identifies one party interested in a mission's transitions.
type Subscriber struct {
	ID   kernel.UUID
	Role mission.Role
}

// SubscriberResolver resolves the parties to notify about an event.
// Subscriber identities live outside this service, so resolution is a port.
type SubscriberResolver interface {
	Resolve(ctx context.Context, event mission.Event) ([]Subscriber, error)
}

// Notification is one rendered payload for one subscriber.
type Notification struct {
	Subscriber        Subscriber
	MissionID         kernel.UUID
	PreviousStatus    string
	NewStatus         string
	PreviousTripState string
	NewTripState      string
	ActorRole         string
	OccurredAt        time.Time
}

// NotificationTransport delivers notifications to subscribers. Failures are
// the caller's to log and drop; they never reach the lifecycle controller.
type NotificationTransport interface {
	Send(ctx context.Context, notification Notification) error
}
