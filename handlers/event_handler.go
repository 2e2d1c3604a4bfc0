package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/internal/status"
	"ticketsmaster/models"
	"ticketsmaster/monitoring"
	"ticketsmaster/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List - GET /api/events
func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.events.List(e.Request.Context())
	if err != nil {
		slog.Error("list events failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusOK, events)
}

// Get - GET /api/events/{id}
func (h *EventHandler) Get(e *core.RequestEvent) error {
	event, err := h.events.Get(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", nil)
	}

	return e.JSON(http.StatusOK, event)
}

// Create - POST /api/events
func (h *EventHandler) Create(e *core.RequestEvent) error {
	var input models.EventInput
	if err := e.BindBody(&input); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.events.Create(e.Request.Context(), input)
	if err != nil {
		if errors.Is(err, status.ErrMissingFields) {
			return apis.NewBadRequestError("Name, date and location are required", nil)
		}
		slog.Error("create event failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusCreated, event)
}

// Update - PUT /api/events/{id}
func (h *EventHandler) Update(e *core.RequestEvent) error {
	var input models.EventInput
	if err := e.BindBody(&input); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.events.Update(e.Request.Context(), e.Request.PathValue("id"), input)
	if err != nil {
		if errors.Is(err, status.ErrEventNotFound) {
			return apis.NewNotFoundError("Event not found", nil)
		}
		slog.Error("update event failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusOK, event)
}

// Delete - DELETE /api/events/{id}
func (h *EventHandler) Delete(e *core.RequestEvent) error {
	if err := h.events.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
		if errors.Is(err, status.ErrEventNotFound) {
			return apis.NewNotFoundError("Event not found", nil)
		}
		slog.Error("delete event failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{
		"message": "Event deleted successfully",
	})
}

// Reset - POST /api/events/reset
func (h *EventHandler) Reset(e *core.RequestEvent) error {
	events, err := h.events.Reset(e.Request.Context())
	if err != nil {
		slog.Error("reset events failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message": "Events reset successfully",
		"events":  events,
	})
}

// Purchase - POST /api/events/{id}/purchase
func (h *EventHandler) Purchase(e *core.RequestEvent) error {
	var req models.PurchaseRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Quantity <= 0 {
		return apis.NewBadRequestError("Quantity must be positive", nil)
	}

	result, err := h.events.Purchase(e.Request.Context(), e.Request.PathValue("id"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, status.ErrEventNotFound):
			return apis.NewNotFoundError("Event not found", nil)
		case errors.Is(err, status.ErrSoldOut):
			return apis.NewApiError(http.StatusConflict, "Not enough tickets available", nil)
		default:
			slog.Error("purchase failed", "event", e.Request.PathValue("id"), "error", err)
			return serverError(err)
		}
	}

	monitoring.TrackPurchase(result.Quantity)
	slog.Info("tickets purchased",
		"event", result.EventID,
		"user", authUser(e).Id,
		"quantity", result.Quantity,
	)

	return e.JSON(http.StatusOK, result)
}
