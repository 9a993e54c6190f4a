package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Flight, int64, error)
	Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	SoftDelete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline_name, source, destination, departure_time, arrival_time, total_seats, available_seats, price_cents, status, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.AirlineName, &f.Source, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context, limit, offset int) ([]domain.Flight, int64, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE deleted_at IS NULL ORDER BY departure_time LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, 0, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE deleted_at IS NULL`
	args := make([]interface{}, 0, 5)

	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += fmt.Sprintf(" AND source ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND destination ILIKE $%d", len(args))
	}
	if !filter.DepartureDate.IsZero() {
		args = append(args, filter.DepartureDate)
		query += fmt.Sprintf(" AND DATE(departure_time) = DATE($%d)", len(args))
	}
	if filter.PriceMinCents > 0 {
		args = append(args, filter.PriceMinCents)
		query += fmt.Sprintf(" AND price_cents >= $%d", len(args))
	}
	if filter.PriceMaxCents > 0 {
		args = append(args, filter.PriceMaxCents)
		query += fmt.Sprintf(" AND price_cents <= $%d", len(args))
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 AND deleted_at IS NULL`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	// A new flight starts fully available.
	flight.AvailableSeats = flight.TotalSeats
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	return r.db.QueryRow(ctx, `INSERT INTO flights (airline_name, source, destination, departure_time, arrival_time, total_seats, available_seats, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $7, $8)
		RETURNING id, available_seats, created_at, updated_at`,
		flight.AirlineName, flight.Source, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.TotalSeats, flight.PriceCents, flight.Status).
		Scan(&flight.ID, &flight.AvailableSeats, &flight.CreatedAt, &flight.UpdatedAt)
}

// Update replaces flight fields. Reducing total_seats below the seats
// currently held by confirmed bookings is rejected, and available_seats
// is recomputed from the confirmed seat sum so the inventory invariant
// holds after the edit.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var currentID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM flights WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, flight.ID).Scan(&currentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	var booked int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE flight_id=$1 AND status=$2`, flight.ID, domain.BookingStatusConfirmed).Scan(&booked); err != nil {
		return err
	}
	if flight.TotalSeats < booked {
		return ErrSeatsBelowBooked
	}

	flight.AvailableSeats = flight.TotalSeats - booked
	if err := tx.QueryRow(ctx, `UPDATE flights SET airline_name=$1, source=$2, destination=$3, departure_time=$4, arrival_time=$5, total_seats=$6, available_seats=$7, price_cents=$8, status=$9, updated_at=now()
		WHERE id=$10
		RETURNING updated_at`,
		flight.AirlineName, flight.Source, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.TotalSeats, flight.AvailableSeats, flight.PriceCents, flight.Status, flight.ID).
		Scan(&flight.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET deleted_at=now(), updated_at=now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
