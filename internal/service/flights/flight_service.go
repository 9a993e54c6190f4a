package flights

import (
	"context"
	"errors"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/repository"
)

var (
	ErrInvalidSchedule = errors.New("departure time must be before arrival time")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidSeats    = errors.New("total seats must be positive")
	ErrMissingFields   = errors.New("missing required fields")
)

type FlightUseCase interface {
	List(ctx context.Context, page, limit int) ([]domain.Flight, int64, error)
	Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, int64, error)
	SetFlights(ctx context.Context, flights []domain.Flight, total int64) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

// List returns one page of flights plus the total count. The first page
// with the default limit is served from the cache when possible.
func (s *FlightService) List(ctx context.Context, page, limit int) ([]domain.Flight, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	cacheable := page == 1 && limit == 10
	if cacheable && s.cache != nil {
		if cached, total, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, total, nil
		}
	}

	flights, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if cacheable && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights, total)
	}
	return flights, total, nil
}

func (s *FlightService) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	return s.repo.Search(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := validate(flight); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := validate(flight); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func validate(flight *domain.Flight) error {
	if flight.AirlineName == "" || flight.Source == "" || flight.Destination == "" ||
		flight.DepartureTime.IsZero() || flight.ArrivalTime.IsZero() {
		return ErrMissingFields
	}
	if !flight.DepartureTime.Before(flight.ArrivalTime) {
		return ErrInvalidSchedule
	}
	if flight.PriceCents <= 0 {
		return ErrInvalidPrice
	}
	if flight.TotalSeats <= 0 {
		return ErrInvalidSeats
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
