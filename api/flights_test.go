package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/repository"
	"github.com/blenbot/flight-booking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, page, limit int) ([]domain.Flight, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]domain.Flight), args.Get(1).(int64), args.Error(2)
}

func (m *MockFlightUseCase) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightUseCase) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newFlightRouter(service flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewFlightHandler(service)
	handler.Register(router.Group("/flights"))
	admin := router.Group("/admin/flights", asUser(1, domain.UserRoleAdmin), AdminOnly())
	handler.RegisterAdmin(admin)
	return router
}

func TestFlightHandler_List(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	result := []domain.Flight{{ID: 1}, {ID: 2}}
	mockService.On("List", mock.Anything, 2, 10).Return(result, int64(25), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/flights?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp flightListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Flights, 2)
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, int64(3), resp.TotalPages)
}

func TestFlightHandler_List_Defaults(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("List", mock.Anything, 1, 10).Return([]domain.Flight{}, int64(0), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/flights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_List_ClampsBadPaging(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	// A zero limit must not reach the total_pages division.
	mockService.On("List", mock.Anything, 1, 10).Return([]domain.Flight{{ID: 1}}, int64(25), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/flights?page=-1&limit=0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp flightListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, int64(3), resp.TotalPages)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_AdminList(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("List", mock.Anything, 1, 10).Return([]domain.Flight{{ID: 1}}, int64(1), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/flights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_Search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	expected := domain.FlightSearch{
		Source:        "Ber",
		Destination:   "Lis",
		DepartureDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PriceMaxCents: 20000,
	}
	mockService.On("Search", mock.Anything, expected).Return([]domain.Flight{{ID: 1}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/flights/search?source=Ber&destination=Lis&date=2026-09-01&price_max=20000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_Search_BadDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/flights/search?date=01-09-2026", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_Get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/flights/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_Create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("Create", mock.Anything, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()

	body := bytes.NewBufferString(`{
		"airline_name": "AirGo",
		"source": "Berlin",
		"destination": "Lisbon",
		"departure_time": "2026-09-01T10:00:00Z",
		"arrival_time": "2026-09-01T13:00:00Z",
		"total_seats": 180,
		"price_cents": 12900
	}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/flights", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_Create_InvalidSchedule(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("Create", mock.Anything, mock.Anything).Return(flights.ErrInvalidSchedule).Once()

	body := bytes.NewBufferString(`{
		"airline_name": "AirGo",
		"source": "Berlin",
		"destination": "Lisbon",
		"departure_time": "2026-09-01T13:00:00Z",
		"arrival_time": "2026-09-01T10:00:00Z",
		"total_seats": 180,
		"price_cents": 12900
	}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/flights", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightHandler_Update_SeatsBelowBooked(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("Update", mock.Anything, mock.Anything).Return(repository.ErrSeatsBelowBooked).Once()

	body := bytes.NewBufferString(`{
		"airline_name": "AirGo",
		"source": "Berlin",
		"destination": "Lisbon",
		"departure_time": "2026-09-01T10:00:00Z",
		"arrival_time": "2026-09-01T13:00:00Z",
		"total_seats": 1,
		"price_cents": 12900
	}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/flights/4", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightHandler_Delete(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := newFlightRouter(mockService)

	mockService.On("Delete", mock.Anything, int64(4)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/admin/flights/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFlightHandler_AdminGuard(t *testing.T) {
	mockService := &MockFlightUseCase{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewFlightHandler(mockService)
	admin := router.Group("/admin/flights", asUser(2, domain.UserRoleCustomer), AdminOnly())
	handler.RegisterAdmin(admin)

	req := httptest.NewRequest(http.MethodDelete, "/admin/flights/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Delete")
}
