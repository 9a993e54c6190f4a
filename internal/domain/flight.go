package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusBoarding  FlightStatus = "boarding"
	FlightStatusDeparted  FlightStatus = "departed"
	FlightStatusArrived   FlightStatus = "arrived"
	FlightStatusCancelled FlightStatus = "cancelled"
)

type Flight struct {
	ID             int64        `json:"id"`
	AirlineName    string       `json:"airline_name"`
	Source         string       `json:"source"`
	Destination    string       `json:"destination"`
	DepartureTime  time.Time    `json:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats int          `json:"available_seats"`
	PriceCents     int64        `json:"price_cents"`
	Status         FlightStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	DeletedAt      *time.Time   `json:"-"`
}

// FlightSearch holds optional filters for flight search. Zero values
// mean the filter is not applied.
type FlightSearch struct {
	Source        string
	Destination   string
	DepartureDate time.Time
	PriceMinCents int64
	PriceMaxCents int64
}
