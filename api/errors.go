package api

import (
	"errors"
	"net/http"

	"github.com/blenbot/flight-booking/internal/repository"
	"github.com/blenbot/flight-booking/internal/service/booking"
	"github.com/blenbot/flight-booking/internal/service/flights"
	"github.com/blenbot/flight-booking/internal/service/payments"
	"github.com/blenbot/flight-booking/internal/service/users"
	"github.com/gin-gonic/gin"
)

// respondErr maps service and repository errors to HTTP responses.
// Unknown errors become a generic 500 so storage details never leak.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrInsufficientSeats):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrAlreadyCancelled),
		errors.Is(err, repository.ErrSeatsBelowBooked),
		errors.Is(err, repository.ErrInvalidResetCode),
		errors.Is(err, booking.ErrInvalidSeats),
		errors.Is(err, flights.ErrInvalidSchedule),
		errors.Is(err, flights.ErrInvalidPrice),
		errors.Is(err, flights.ErrInvalidSeats),
		errors.Is(err, flights.ErrMissingFields),
		errors.Is(err, users.ErrMissingFields),
		errors.Is(err, payments.ErrMissingCardFields),
		errors.Is(err, payments.ErrBookingNotPayable),
		errors.Is(err, payments.ErrAmountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
