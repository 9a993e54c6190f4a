package booking

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/kafka"
	"github.com/blenbot/flight-booking/internal/repository"
)

var ErrInvalidSeats = errors.New("seats must be positive")

type BookingUseCase interface {
	Book(ctx context.Context, userID, flightID int64, seats int) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *slog.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book reserves seats on a flight. The availability check, the seat debit
// and the booking insert happen in one transaction inside the repository,
// so two concurrent calls racing for the last seat cannot both succeed.
// The total price is frozen from the flight price read here.
func (s *BookingService) Book(ctx context.Context, userID, flightID int64, seats int) (*domain.Booking, error) {
	if seats <= 0 {
		return nil, ErrInvalidSeats
	}

	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:          userID,
		FlightID:        flightID,
		Seats:           seats,
		TotalPriceCents: flight.PriceCents * int64(seats),
	}
	if err := s.bookings.CreateConfirmed(ctx, booking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if err := s.publish(ctx, kafka.EventBookingCreated, booking); err != nil {
		s.logger.Warn("failed to publish booking_created", "booking_id", booking.ID, "error", err)
	}
	return booking, nil
}

// Cancel transitions a confirmed booking owned by userID to cancelled and
// re-credits its seats atomically. Cancelling an already cancelled booking
// fails with repository.ErrAlreadyCancelled and re-credits nothing.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, clamped, err := s.bookings.Cancel(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if clamped {
		s.logger.Error("seat re-credit clamped to total_seats, inventory counts are corrupted",
			"booking_id", booking.ID, "flight_id", booking.FlightID, "seats", booking.Seats)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if err := s.publish(ctx, kafka.EventBookingCancelled, booking); err != nil {
		s.logger.Warn("failed to publish booking_cancelled", "booking_id", booking.ID, "error", err)
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return s.bookings.GetForUser(ctx, bookingID, userID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		FlightID:        booking.FlightID,
		Seats:           booking.Seats,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		OccurredAt:      time.Now(),
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
