package models

import (
	"time"
)

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Event struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Date             string    `json:"date"`
	Location         string    `json:"location"`
	Position         *Position `json:"position,omitempty"`
	Description      string    `json:"description,omitempty"`
	Price            float64   `json:"price"`
	AvailableTickets int       `json:"availableTickets"`
	CreatedAt        time.Time `json:"createdAt"`
}

// EventInput carries the writable event fields. Pointer fields distinguish
// "omitted" from zero values so creation defaults and partial updates work
// off the same payload.
type EventInput struct {
	Name             *string   `json:"name"`
	Date             *string   `json:"date"`
	Location         *string   `json:"location"`
	Position         *Position `json:"position"`
	Description      *string   `json:"description"`
	Price            *float64  `json:"price"`
	AvailableTickets *int      `json:"availableTickets"`
}

type PurchaseRequest struct {
	Quantity int `json:"quantity"`
}

type PurchaseResult struct {
	EventID          string `json:"eventId"`
	Quantity         int    `json:"quantity"`
	Total            string `json:"total"`
	RemainingTickets int    `json:"remainingTickets"`
}
