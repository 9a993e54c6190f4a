package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blenbot/flight-booking/config"
	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches the public flight list. Booking and admin mutations
// invalidate it so stale availability is bounded by the TTL at worst.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

// flightPage is the cached payload. The total flight count is stored
// with the page so cache hits report the same count the repository would.
type flightPage struct {
	Flights []domain.Flight `json:"flights"`
	Total   int64           `json:"total"`
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, int64, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	var page flightPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, 0, err
	}
	return page.Flights, page.Total, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight, total int64) error {
	payload, err := json.Marshal(flightPage{Flights: flights, Total: total})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func flightsKey() string {
	return "cache:flights"
}
