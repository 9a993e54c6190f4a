package repository

import (
	"context"
	"errors"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// CreateConfirmed inserts a confirmed booking and debits the flight's
	// available seats as a single transaction. Returns ErrNotFound if the
	// flight is absent or soft-deleted, ErrInsufficientSeats if fewer than
	// booking.Seats are available.
	CreateConfirmed(ctx context.Context, booking *domain.Booking) error
	GetForUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// Cancel transitions a confirmed booking to cancelled and re-credits
	// its seats in the same transaction. The returned flag reports whether
	// the re-credit had to be clamped to total_seats, which indicates
	// corrupted inventory counts.
	Cancel(ctx context.Context, id, userID int64) (*domain.Booking, bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, seats, total_price_cents, status, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Seats, &b.TotalPriceCents, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The availability check and the debit are one conditional update, so
	// two concurrent bookings against the same flight serialize on the row
	// and the second one sees the first one's debit.
	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now()
		WHERE id=$1 AND deleted_at IS NULL AND available_seats >= $2`, booking.FlightID, booking.Seats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1 AND deleted_at IS NULL)`, booking.FlightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInsufficientSeats
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, seats, total_price_cents, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.FlightID, booking.Seats, booking.TotalPriceCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND user_id=$2`, id, userID)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id, userID int64) (*domain.Booking, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE id=$2 AND user_id=$3 AND status=$4
		RETURNING `+bookingColumns, domain.BookingStatusCancelled, id, userID, domain.BookingStatusConfirmed)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1 AND user_id=$2)`, id, userID).Scan(&exists); err != nil {
				return nil, false, err
			}
			if !exists {
				return nil, false, ErrNotFound
			}
			return nil, false, ErrAlreadyCancelled
		}
		return nil, false, err
	}

	// Re-credit never legitimately exceeds total_seats since it matches a
	// previous debit. Clamp anyway and report it so the caller can flag
	// corrupted counts.
	var available, total int
	if err := tx.QueryRow(ctx, `SELECT available_seats, total_seats FROM flights WHERE id=$1 FOR UPDATE`, b.FlightID).Scan(&available, &total); err != nil {
		return nil, false, err
	}
	restored := available + b.Seats
	clamped := restored > total
	if clamped {
		restored = total
	}
	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats=$2, updated_at=now() WHERE id=$1`, b.FlightID, restored); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &b, clamped, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
