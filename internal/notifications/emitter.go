// Package notifications fans committed transition events out to
// subscribers. Delivery is best-effort by design: state transitions are
// authoritative once committed, and nothing that happens here may flow
// back into the lifecycle controller.
package notifications

import (
	"context"
	"log/slog"
	"sync/atomic"

	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
)

// Emitter consumes transition events from a bounded queue and delivers one
// notification per subscriber per event.
//
// Publish never blocks: when the queue is full the event is dropped and
// counted, favoring command latency over notification completeness under
// burst load.
type Emitter struct {
	resolver  ports.SubscriberResolver
	transport ports.NotificationTransport
	queue     chan mission.Event
	log       *slog.Logger

	dropped atomic.Uint64
}

// NewEmitter creates an emitter with the given queue capacity.
func NewEmitter(
	resolver ports.SubscriberResolver,
	transport ports.NotificationTransport,
	queueSize int,
	log *slog.Logger,
) *Emitter {
	return &Emitter{
		resolver:  resolver,
		transport: transport,
		queue:     make(chan mission.Event, queueSize),
		log:       log,
	}
}

// Publish enqueues an event for delivery, implementing ports.EventPublisher.
// A full queue drops the event.
func (e *Emitter) Publish(event mission.Event) {
	select {
	case e.queue <- event:
	default:
		e.dropped.Add(1)
		e.log.Warn("notification queue full, event dropped",
			"missionId", event.MissionID().String(),
			"newStatus", event.NewStatus().String())
	}
}

// Run consumes the queue until the context is cancelled. Call it from a
// dedicated goroutine.
func (e *Emitter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-e.queue:
			e.deliver(ctx, event)
		}
	}
}

// deliver resolves the subscribers for one event and sends each a
// notification. Every failure is logged and dropped.
func (e *Emitter) deliver(ctx context.Context, event mission.Event) {
	subscribers, err := e.resolver.Resolve(ctx, event)
	if err != nil {
		e.log.ErrorContext(ctx, "subscriber resolution failed",
			"missionId", event.MissionID().String(), "error", err)
		return
	}

	for _, subscriber := range subscribers {
		notification := render(event, subscriber)
		if err := e.transport.Send(ctx, notification); err != nil {
			e.log.ErrorContext(ctx, "notification delivery failed",
				"missionId", event.MissionID().String(),
				"subscriberId", subscriber.ID.String(),
				"role", subscriber.Role.String(),
				"error", err)
		}
	}
}

// Dropped reports how many events have been discarded on a full queue.
func (e *Emitter) Dropped() uint64 {
	return e.dropped.Load()
}

// render builds the payload for one subscriber.
func render(event mission.Event, subscriber ports.Subscriber) ports.Notification {
	return ports.Notification{
		Subscriber:        subscriber,
		MissionID:         event.MissionID(),
		PreviousStatus:    event.PreviousStatus().String(),
		NewStatus:         event.NewStatus().String(),
		PreviousTripState: event.PreviousTripState().String(),
		NewTripState:      event.NewTripState().String(),
		ActorRole:         event.Actor().Role().String(),
		OccurredAt:        event.OccurredAt(),
	}
}
