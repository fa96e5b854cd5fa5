// Package rabbitmq delivers subscriber notifications through a RabbitMQ
// topic exchange. Downstream channels (push, SMS, partner webhooks) bind
// their own queues by routing key.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"missions/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// NotificationTransport publishes one message per notification to a topic
// exchange, implementing ports.NotificationTransport.
type NotificationTransport struct {
	channel  *amqp091.Channel
	exchange string
}

// notificationMessage is the wire payload published for each subscriber.
type notificationMessage struct {
	SubscriberID      string    `json:"subscriberId"`
	SubscriberRole    string    `json:"subscriberRole"`
	MissionID         string    `json:"missionId"`
	PreviousStatus    string    `json:"previousStatus"`
	NewStatus         string    `json:"newStatus"`
	PreviousTripState string    `json:"previousTripState,omitempty"`
	NewTripState      string    `json:"newTripState,omitempty"`
	ActorRole         string    `json:"actorRole"`
	OccurredAt        time.Time `json:"occurredAt"`
}

// NewNotificationTransport declares the exchange and returns a transport
// bound to it.
func NewNotificationTransport(channel *amqp091.Channel, exchange string) (*NotificationTransport, error) {
	err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &NotificationTransport{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Send publishes the notification. The routing key carries the subscriber
// role so each channel consumes only the audience it serves.
func (t *NotificationTransport) Send(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(notificationMessage{
		SubscriberID:      notification.Subscriber.ID.String(),
		SubscriberRole:    notification.Subscriber.Role.String(),
		MissionID:         notification.MissionID.String(),
		PreviousStatus:    notification.PreviousStatus,
		NewStatus:         notification.NewStatus,
		PreviousTripState: notification.PreviousTripState,
		NewTripState:      notification.NewTripState,
		ActorRole:         notification.ActorRole,
		OccurredAt:        notification.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	routingKey := fmt.Sprintf("mission.notify.%s", notification.Subscriber.Role)
	err = t.channel.PublishWithContext(ctx,
		t.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    notification.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
