package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

type flightRequest struct {
	AirlineName   string    `json:"airline_name"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	TotalSeats    int       `json:"total_seats"`
	PriceCents    int64     `json:"price_cents"`
	Status        string    `json:"status"`
}

type flightListResponse struct {
	Flights    []domain.Flight `json:"flights"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int64           `json:"total_pages"`
}

// @Summary  List flights (paginated)
// @Param    page   query  int  false  "page number"
// @Param    limit  query  int  false  "page size"
// @Success  200  {object}  flightListResponse
// @Router   /flights [get]
func (h *FlightHandler) list(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), 10)
	// Clamp before the total_pages division below, a zero limit must not
	// reach it.
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	result, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, flightListResponse{
		Flights:    result,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	})
}

// @Summary  Search flights
// @Param    source       query  string  false  "source substring"
// @Param    destination  query  string  false  "destination substring"
// @Param    date         query  string  false  "departure date (YYYY-MM-DD)"
// @Param    price_min    query  int     false  "min price in cents"
// @Param    price_max    query  int     false  "max price in cents"
// @Success  200  {array}  domain.Flight
// @Router   /flights/search [get]
func (h *FlightHandler) search(c *gin.Context) {
	filter := domain.FlightSearch{
		Source:        c.Query("source"),
		Destination:   c.Query("destination"),
		PriceMinCents: int64(parseIntDefault(c.Query("price_min"), 0)),
		PriceMaxCents: int64(parseIntDefault(c.Query("price_max"), 0)),
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.DepartureDate = parsed
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary  Get flight
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {object}  domain.Flight
// @Failure  404  {object}  map[string]string
// @Router   /flights/{id} [get]
func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

// @Summary  Create flight (admin)
// @Param    req  body  flightRequest  true  "payload"
// @Success  201  {object}  domain.Flight
// @Router   /admin/flights [post]
func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := req.toDomain()
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

// @Summary  Update flight (admin)
// @Param    id   path  int            true  "Flight ID"
// @Param    req  body  flightRequest  true  "payload"
// @Success  200  {object}  domain.Flight
// @Failure  400  {object}  map[string]string  "seats below confirmed bookings"
// @Router   /admin/flights/{id} [put]
func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := req.toDomain()
	flight.ID = id
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

// @Summary  Soft-delete flight (admin)
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {object}  map[string]string
// @Router   /admin/flights/{id} [delete]
func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight deleted"})
}

func (r flightRequest) toDomain() *domain.Flight {
	status := domain.FlightStatus(r.Status)
	if r.Status == "" {
		status = domain.FlightStatusScheduled
	}
	return &domain.Flight{
		AirlineName:   r.AirlineName,
		Source:        r.Source,
		Destination:   r.Destination,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		TotalSeats:    r.TotalSeats,
		PriceCents:    r.PriceCents,
		Status:        status,
	}
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
