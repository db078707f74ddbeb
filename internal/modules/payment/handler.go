package payment

import (
	"io"
	"net/http"
	"strconv"

	"petmarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/payment-intent", h.CreateIntent)
}

// RegisterWebhookRoutes mounts the gateway callback. No JWT here; the
// Stripe signature is the authentication.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook/stripe", h.StripeWebhook)
}

func (h *Handler) CreateIntent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	res, err := h.service.CreateIntent(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrUnauthorized:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the booking owner can pay for it")
		case ErrAlreadyProcessed:
			response.Error(c, http.StatusConflict, "ALREADY_PROCESSED", "A payment intent already exists for this booking")
		case ErrNotPayable:
			response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", "Booking must be confirmed before payment")
		case ErrGateway:
			response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway unavailable, try again")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create payment intent")
		}
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Failed to read request body")
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		if err == ErrBadSignature {
			response.Error(c, http.StatusBadRequest, "BAD_SIGNATURE", "Invalid webhook signature")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process webhook")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"received": true})
}
