package domain

import "time"

// Payment is a mock payment record tied to a booking. Card fields are
// persisted as-is, no settlement happens.
type Payment struct {
	ID             int64     `json:"id"`
	BookingID      int64     `json:"booking_id"`
	CardType       string    `json:"card_type"`
	CardNumber     string    `json:"-"`
	ExpirationDate string    `json:"-"`
	CVV            string    `json:"-"`
	NameOnCard     string    `json:"name_on_card"`
	AmountCents    int64     `json:"amount_cents"`
	CreatedAt      time.Time `json:"created_at"`
}
