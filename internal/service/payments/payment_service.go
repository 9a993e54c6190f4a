package payments

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

var (
	ErrMissingCardFields = errors.New("card fields are required")
	ErrBookingNotPayable = errors.New("booking is not confirmed")
	ErrAmountMismatch    = errors.New("amount does not match booking total")
)

type PaymentUseCase interface {
	Record(ctx context.Context, userID int64, payment *domain.Payment) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// PaymentService records mock payments. A payment is accepted only for a
// confirmed booking owned by the caller; recording happens outside the
// reservation transaction, so a failed payment leaves the booking intact
// and cancellable.
type PaymentService struct {
	payments repository.PaymentRepository
	bookings repository.BookingRepository
	producer Producer
	topic    string
	logger   *slog.Logger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	producer Producer,
	topic string,
	logger *slog.Logger,
) *PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{payments: payments, bookings: bookings, producer: producer, topic: topic, logger: logger}
}

func (s *PaymentService) Record(ctx context.Context, userID int64, payment *domain.Payment) error {
	if payment.CardNumber == "" || payment.CardType == "" || payment.NameOnCard == "" {
		return ErrMissingCardFields
	}

	booking, err := s.bookings.GetForUser(ctx, payment.BookingID, userID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return ErrBookingNotPayable
	}
	if payment.AmountCents != booking.TotalPriceCents {
		return ErrAmountMismatch
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return err
	}

	if s.producer != nil && s.topic != "" {
		event := kafka.BookingEvent{
			Type:            kafka.EventPaymentRecorded,
			BookingID:       booking.ID,
			UserID:          booking.UserID,
			FlightID:        booking.FlightID,
			Seats:           booking.Seats,
			TotalPriceCents: booking.TotalPriceCents,
			Status:          string(booking.Status),
			OccurredAt:      time.Now(),
		}
		if err := s.producer.Publish(ctx, s.topic, strconv.FormatInt(booking.ID, 10), event); err != nil {
			s.logger.Warn("failed to publish payment_recorded", "booking_id", booking.ID, "error", err)
		}
	}
	return nil
}

var _ PaymentUseCase = (*PaymentService)(nil)
