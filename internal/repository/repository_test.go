package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

// The SQL paths need a live Postgres; here we only pin the constructors
// to their concrete Postgres implementations.
func TestConstructors(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.IsType(t, &PGFlightRepository{}, NewFlightRepository(pool))
	assert.IsType(t, &PGBookingRepository{}, NewBookingRepository(pool))
	assert.IsType(t, &PGUserRepository{}, NewUserRepository(pool))
	assert.IsType(t, &PGPaymentRepository{}, NewPaymentRepository(pool))
}
