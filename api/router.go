package api

import (
	"log/slog"
	"net/http"

	"github.com/blenbot/flight-booking/internal/auth"
	"github.com/blenbot/flight-booking/internal/service/booking"
	"github.com/blenbot/flight-booking/internal/service/flights"
	"github.com/blenbot/flight-booking/internal/service/payments"
	"github.com/blenbot/flight-booking/internal/service/users"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Services struct {
	Users    users.UserUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Payments payments.PaymentUseCase
}

func NewRouter(svcs Services, tokens *auth.TokenManager, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandler := NewUserHandler(svcs.Users)
	flightHandler := NewFlightHandler(svcs.Flights)
	bookingHandler := NewBookingHandler(svcs.Bookings)
	paymentHandler := NewPaymentHandler(svcs.Payments)

	userHandler.Register(r.Group("/users"))
	flightHandler.Register(r.Group("/flights"))

	authed := r.Group("/", AuthRequired(tokens))
	userHandler.RegisterProfile(authed.Group("users"))
	bookingHandler.Register(authed.Group("bookings"))
	paymentHandler.Register(authed.Group("payments"))

	admin := r.Group("/admin", AuthRequired(tokens), AdminOnly())
	flightHandler.RegisterAdmin(admin.Group("/flights"))
	userHandler.RegisterAdmin(admin)

	return r
}
