package api

import (
	"net/http"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/service/payments"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
}

func NewPaymentHandler(service payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.record)
}

type recordPaymentRequest struct {
	BookingID      int64  `json:"booking_id"`
	CardType       string `json:"card_type"`
	CardNumber     string `json:"card_number"`
	ExpirationDate string `json:"expiration_date"`
	CVV            string `json:"cvv"`
	NameOnCard     string `json:"name_on_card"`
	AmountCents    int64  `json:"amount_cents"`
}

// @Summary  Record a mock payment for an own confirmed booking
// @Param    req  body  recordPaymentRequest  true  "payload"
// @Success  201  {object}  map[string]interface{}
// @Failure  400  {object}  map[string]string  "booking not payable / amount mismatch"
// @Failure  404  {object}  map[string]string  "booking not found"
// @Router   /payments [post]
func (h *PaymentHandler) record(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := &domain.Payment{
		BookingID:      req.BookingID,
		CardType:       req.CardType,
		CardNumber:     req.CardNumber,
		ExpirationDate: req.ExpirationDate,
		CVV:            req.CVV,
		NameOnCard:     req.NameOnCard,
		AmountCents:    req.AmountCents,
	}
	if err := h.service.Record(c.Request.Context(), currentUserID(c), payment); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "payment recorded",
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"amount":     payment.AmountCents,
	})
}
