package repository

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrEmailTaken        = errors.New("email already registered")
	ErrSeatsBelowBooked  = errors.New("total seats below confirmed bookings")
	ErrInvalidResetCode  = errors.New("invalid or expired reset code")
)
