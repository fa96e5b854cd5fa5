package cmd

import "time"

// Config carries everything the composition root needs to wire the
// application. String fields come straight from the environment; typed
// fields are parsed by the caller.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	RabbitMQURL          string
	NotificationExchange string

	// ArrivalThresholdKm is the distance below which a courier heading to
	// the customer triggers the ARRIVING advance.
	ArrivalThresholdKm float64

	// NotificationQueueSize bounds the emitter's in-flight event queue.
	NotificationQueueSize int

	// PositionTTL is how long a courier position stays in the hot store
	// without updates.
	PositionTTL time.Duration

	// DispatchCronSpec and SweepCronSpec are cron expressions with a
	// seconds field.
	DispatchCronSpec string
	SweepCronSpec    string

	// CourierStaleAfter is the heartbeat age after which the sweep job
	// signs a courier off.
	CourierStaleAfter time.Duration
}
