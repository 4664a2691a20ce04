package api

import (
	"errors"
	"net/http"

	resdto "carshare/internal/handler/dto/response"
	"carshare/internal/handler/httperr"
	"carshare/internal/handler/middleware"
	"carshare/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Create checkout session
// @Description Start a payment checkout for a pending booking; only its renter may pay
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /bookings/{id}/checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	session, err := h.cmds.CreateCheckoutSession(c.Request.Context(), bookingID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrCheckoutForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the renter can pay for this booking", nil)
		case errors.Is(err, commands.ErrBookingNotPending):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking is not awaiting payment", nil)
		case errors.Is(err, commands.ErrGatewayUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payments are not available", nil)
		case errors.Is(err, commands.ErrGatewayFailure):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider error", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.CheckoutSessionResponse{
		SessionID:   session.SessionID,
		RedirectURL: session.RedirectURL,
	})
}

// @Summary Stripe webhook
// @Description Receive payment outcome events from Stripe
// @Tags payments
// @Accept json
// @Success 200 "OK"
// @Failure 400 {object} map[string]string
// @Router /webhooks/stripe [post]
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read payload", nil)
		return
	}
	signature := c.GetHeader("Stripe-Signature")

	if err := h.cmds.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, commands.ErrWebhookInvalid) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook signature", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to process webhook", nil)
		return
	}

	c.Status(http.StatusOK)
}
