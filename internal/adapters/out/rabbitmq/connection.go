package rabbitmq

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	connectAttempts = 10
	connectBackoff  = 3 * time.Second
)

// Connect dials the broker and opens a channel, retrying while the broker
// is still starting up.
func Connect(url string, log *slog.Logger) (*amqp091.Connection, *amqp091.Channel, error) {
	var (
		conn *amqp091.Connection
		err  error
	)

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		conn, err = amqp091.Dial(url)
		if err == nil {
			var channel *amqp091.Channel
			channel, err = conn.Channel()
			if err == nil {
				return conn, channel, nil
			}
			_ = conn.Close()
		}
		log.Warn("rabbitmq not ready, retrying",
			"attempt", attempt, "maxAttempts", connectAttempts, "error", err)
		time.Sleep(connectBackoff)
	}

	return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
}
