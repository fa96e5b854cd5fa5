package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"missions/cmd"
	"missions/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gorm_postgres.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := cmd.NewRedisClient(configs)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	rmqConn, rmqChannel, err := rabbitmq.Connect(configs.RabbitMQURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitmq: %v", err)
	}
	defer rmqConn.Close()

	transport, err := rabbitmq.NewNotificationTransport(rmqChannel, configs.NotificationExchange)
	if err != nil {
		log.Fatalf("Failed to set up notification transport: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, transport, logger)

	emitterCtx, stopEmitter := context.WithCancel(context.Background())
	defer stopEmitter()
	go app.Emitter().Run(emitterCtx)

	dispatchJob := app.CreateMissionDispatchJob()
	if err := dispatchJob.Start(); err != nil {
		log.Fatalf("Failed to start dispatch job: %v", err)
	}
	defer dispatchJob.Stop()

	sweepJob := app.CreateCourierSweepJob()
	if err := sweepJob.Start(); err != nil {
		log.Fatalf("Failed to start courier sweep job: %v", err)
	}
	defer sweepJob.Stop()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:             goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:           goDotEnvVariable("RABBITMQ_URL"),
		NotificationExchange:  envOrDefault("NOTIFICATION_EXCHANGE", "mission.notifications"),
		ArrivalThresholdKm:    envFloat("ARRIVAL_THRESHOLD_KM", 0.3),
		NotificationQueueSize: envInt("NOTIFICATION_QUEUE_SIZE", 1024),
		PositionTTL:           envDuration("POSITION_TTL", time.Hour),
		DispatchCronSpec:      envOrDefault("DISPATCH_CRON_SPEC", "*/5 * * * * *"),
		SweepCronSpec:         envOrDefault("SWEEP_CRON_SPEC", "*/30 * * * * *"),
		CourierStaleAfter:     envDuration("COURIER_STALE_AFTER", 2*time.Minute),
	}
	return config
}

func postgresDSN(config cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
