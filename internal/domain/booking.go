package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking holds seats on a flight. TotalPriceCents is frozen at booking
// time and is not recomputed if the flight price changes later.
type Booking struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	FlightID        int64         `json:"flight_id"`
	Seats           int           `json:"seats"`
	TotalPriceCents int64         `json:"total_price_cents"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
