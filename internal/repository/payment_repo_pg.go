package repository

import (
	"context"
	"errors"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, card_type, card_number, expiration_date, cvv, name_on_card, amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		payment.BookingID, payment.CardType, payment.CardNumber, payment.ExpirationDate, payment.CVV, payment.NameOnCard, payment.AmountCents).
		Scan(&payment.ID, &payment.CreatedAt)
}

func (r *PGPaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT id, booking_id, card_type, card_number, expiration_date, cvv, name_on_card, amount_cents, created_at FROM payments WHERE booking_id=$1`, bookingID)
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.BookingID, &p.CardType, &p.CardNumber, &p.ExpirationDate, &p.CVV, &p.NameOnCard, &p.AmountCents, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
