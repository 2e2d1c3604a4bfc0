package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/models"
	"ticketsmaster/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// SavePaymentMethod - POST /api/users/payment
func (h *PaymentHandler) SavePaymentMethod(e *core.RequestEvent) error {
	var req models.SavePaymentRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	id, err := h.payments.Save(e.Request.Context(), req.PaymentInfo)
	if err != nil {
		slog.Error("save payment method failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusCreated, map[string]string{
		"message": "Payment method saved successfully",
		"id":      id,
	})
}
