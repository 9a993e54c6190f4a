package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blenbot/flight-booking/api"
	"github.com/blenbot/flight-booking/config"
	"github.com/blenbot/flight-booking/internal/auth"
	"github.com/blenbot/flight-booking/internal/bootstrap"
	"github.com/blenbot/flight-booking/internal/cache"
	"github.com/blenbot/flight-booking/internal/kafka"
	"github.com/blenbot/flight-booking/internal/repository"
	"github.com/blenbot/flight-booking/internal/service/booking"
	"github.com/blenbot/flight-booking/internal/service/flights"
	"github.com/blenbot/flight-booking/internal/service/payments"
	"github.com/blenbot/flight-booking/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL())
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	svcs := api.Services{
		Users:   users.NewUserService(userRepo, tokens, logger),
		Flights: flights.NewFlightService(flightRepo, redisCache),
		Bookings: booking.NewBookingService(
			bookingRepo,
			flightRepo,
			redisCache,
			producer,
			cfg.Kafka.BookingEventsTopic,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithLogger(logger),
		),
		Payments: payments.NewPaymentService(paymentRepo, bookingRepo, producer, cfg.Kafka.NotificationsTopic, logger),
	}

	router := api.NewRouter(svcs, tokens, logger)

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, logger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
