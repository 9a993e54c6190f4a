package api

import (
	"net/http"
	"time"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id"`
	Seats    int   `json:"seats"`
}

type bookingResponse struct {
	ID              int64  `json:"id"`
	FlightID        int64  `json:"flight_id"`
	Seats           int    `json:"seats"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

// @Summary  Book seats on a flight
// @Param    req  body  createBookingRequest  true  "payload"
// @Success  201  {object}  bookingResponse
// @Failure  400  {object}  map[string]string  "invalid seats"
// @Failure  404  {object}  map[string]string  "flight not found"
// @Failure  409  {object}  map[string]string  "not enough seats"
// @Router   /bookings [post]
func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Book(c.Request.Context(), currentUserID(c), req.FlightID, req.Seats)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(result))
}

// @Summary  List own bookings, newest first
// @Success  200  {array}  bookingResponse
// @Router   /bookings [get]
func (h *BookingHandler) list(c *gin.Context) {
	result, err := h.service.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(result))
	for _, b := range result {
		out = append(out, toBookingResponse(&b))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary  Get own booking
// @Param    id  path  int  true  "Booking ID"
// @Success  200  {object}  bookingResponse
// @Router   /bookings/{id} [get]
func (h *BookingHandler) get(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	result, err := h.service.GetForUser(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(result))
}

// @Summary  Cancel own booking, seats return to inventory
// @Param    id  path  int  true  "Booking ID"
// @Success  200  {object}  bookingResponse
// @Failure  400  {object}  map[string]string  "already cancelled"
// @Failure  404  {object}  map[string]string
// @Router   /bookings/{id} [delete]
func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	result, err := h.service.Cancel(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(result))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		FlightID:        b.FlightID,
		Seats:           b.Seats,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}
