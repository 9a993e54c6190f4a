package email

import (
	"context"
	"fmt"

	"github.com/blenbot/flight-booking/internal/kafka"
)

// Sender is a mock notification sender, it only logs what it would send.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case kafka.EventBookingCreated:
		fmt.Printf("send email to user %d: booking %d confirmed for flight %d (%d seats, %d cents)\n",
			event.UserID, event.BookingID, event.FlightID, event.Seats, event.TotalPriceCents)
	case kafka.EventBookingCancelled:
		fmt.Printf("send email to user %d: booking %d cancelled, %d seats returned\n",
			event.UserID, event.BookingID, event.Seats)
	case kafka.EventPaymentRecorded:
		fmt.Printf("send email to user %d: payment recorded for booking %d (%d cents)\n",
			event.UserID, event.BookingID, event.TotalPriceCents)
	}
	return nil
}
