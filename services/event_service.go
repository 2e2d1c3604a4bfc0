package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"ticketsmaster/internal/realtime"
	"ticketsmaster/internal/status"
	"ticketsmaster/models"
)

const (
	defaultPrice            = 0
	defaultAvailableTickets = 100
)

type EventService struct {
	app      core.App
	notifier *realtime.Notifier
}

func NewEventService(app core.App, notifier *realtime.Notifier) *EventService {
	return &EventService{
		app:      app,
		notifier: notifier,
	}
}

// List returns all events ordered by creation time, most recent first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	records := []*core.Record{}
	if err := s.app.RecordQuery("events").
		OrderBy("created DESC").
		All(&records); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	events := make([]models.Event, len(records))
	for i, record := range records {
		events[i] = eventFromRecord(record)
	}

	return events, nil
}

func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return models.Event{}, status.ErrEventNotFound
	}

	return eventFromRecord(record), nil
}

// Create persists a new event, applying the price and ticket-count defaults
// when those fields are omitted.
func (s *EventService) Create(ctx context.Context, input models.EventInput) (models.Event, error) {
	if strPtrEmpty(input.Name) || strPtrEmpty(input.Date) || strPtrEmpty(input.Location) {
		return models.Event{}, status.ErrMissingFields
	}

	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return models.Event{}, fmt.Errorf("Create: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", *input.Name)
	record.Set("date", *input.Date)
	record.Set("location", *input.Location)
	if input.Description != nil {
		record.Set("description", *input.Description)
	}
	if input.Position != nil {
		record.Set("position", input.Position)
	}

	price := float64(defaultPrice)
	if input.Price != nil {
		price = *input.Price
	}
	record.Set("price", price)

	tickets := defaultAvailableTickets
	if input.AvailableTickets != nil {
		tickets = *input.AvailableTickets
	}
	record.Set("available_tickets", tickets)

	if err := s.app.Save(record); err != nil {
		return models.Event{}, fmt.Errorf("Create: save: %w", err)
	}

	s.notifier.EventChanged("event_created", record.Id)

	return eventFromRecord(record), nil
}

// Update replaces the provided fields on an existing event.
func (s *EventService) Update(ctx context.Context, id string, input models.EventInput) (models.Event, error) {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return models.Event{}, status.ErrEventNotFound
	}

	if input.Name != nil {
		record.Set("name", *input.Name)
	}
	if input.Date != nil {
		record.Set("date", *input.Date)
	}
	if input.Location != nil {
		record.Set("location", *input.Location)
	}
	if input.Description != nil {
		record.Set("description", *input.Description)
	}
	if input.Position != nil {
		record.Set("position", input.Position)
	}
	if input.Price != nil {
		record.Set("price", *input.Price)
	}
	if input.AvailableTickets != nil {
		record.Set("available_tickets", *input.AvailableTickets)
	}

	if err := s.app.Save(record); err != nil {
		return models.Event{}, fmt.Errorf("Update: save: %w", err)
	}

	s.notifier.EventChanged("event_updated", record.Id)

	return eventFromRecord(record), nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return status.ErrEventNotFound
	}

	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	s.notifier.EventChanged("event_deleted", id)

	return nil
}

// Reset clears the whole catalog and re-inserts the sample set. The two
// steps are intentionally separate writes: a concurrent reader can observe
// an empty catalog mid-reset, same as deleting and recreating by hand.
func (s *EventService) Reset(ctx context.Context) ([]models.Event, error) {
	records, err := s.app.FindAllRecords("events")
	if err != nil {
		return nil, fmt.Errorf("Reset: list: %w", err)
	}

	for _, record := range records {
		if err := s.app.Delete(record); err != nil {
			return nil, fmt.Errorf("Reset: delete %s: %w", record.Id, err)
		}
	}

	if err := s.insertSamples(); err != nil {
		return nil, fmt.Errorf("Reset: %w", err)
	}

	s.notifier.EventsReset()

	return s.List(ctx)
}

// SeedIfEmpty inserts the sample set only when the collection holds no
// events, so restarts never duplicate it.
func (s *EventService) SeedIfEmpty(ctx context.Context) error {
	total, err := s.app.CountRecords("events")
	if err != nil {
		return fmt.Errorf("SeedIfEmpty: count: %w", err)
	}
	if total > 0 {
		return nil
	}

	if err := s.insertSamples(); err != nil {
		return fmt.Errorf("SeedIfEmpty: %w", err)
	}

	slog.Info("sample events seeded", "count", len(sampleEvents))
	return nil
}

// Purchase decrements the ticket counter inside a store transaction so two
// concurrent buyers cannot both take the last tickets.
func (s *EventService) Purchase(ctx context.Context, id string, quantity int) (models.PurchaseResult, error) {
	var result models.PurchaseResult

	err := s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("events", id)
		if err != nil {
			return status.ErrEventNotFound
		}

		available := record.GetInt("available_tickets")
		if available < quantity {
			return status.ErrSoldOut
		}

		record.Set("available_tickets", available-quantity)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save: %w", err)
		}

		total := decimal.NewFromFloat(record.GetFloat("price")).
			Mul(decimal.NewFromInt(int64(quantity)))

		result = models.PurchaseResult{
			EventID:          id,
			Quantity:         quantity,
			Total:            total.StringFixed(2),
			RemainingTickets: available - quantity,
		}
		return nil
	})
	if err != nil {
		return models.PurchaseResult{}, err
	}

	s.notifier.EventChanged("event_updated", id)

	return result, nil
}

func (s *EventService) insertSamples() error {
	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return err
	}

	for _, sample := range sampleEvents {
		record := core.NewRecord(collection)
		record.Set("name", sample.Name)
		record.Set("date", sample.Date)
		record.Set("location", sample.Location)
		record.Set("description", sample.Description)
		record.Set("price", sample.Price)
		record.Set("available_tickets", sample.AvailableTickets)

		if err := s.app.Save(record); err != nil {
			return fmt.Errorf("insert sample %q: %w", sample.Name, err)
		}
	}

	return nil
}

func strPtrEmpty(s *string) bool {
	return s == nil || *s == ""
}

var sampleEvents = []models.Event{
	{Name: "Valentine's Day Gala", Date: "2026-02-14", Location: "Grand Ballroom", Description: "Romantic evening with live music and dinner", Price: 150, AvailableTickets: 50},
	{Name: "Couple's Night Out", Date: "2026-02-14", Location: "City Center", Description: "Special Valentine's couple event", Price: 75, AvailableTickets: 100},
	{Name: "Sweetheart Concert", Date: "2026-02-14", Location: "Music Hall", Description: "Love songs and romantic melodies", Price: 120, AvailableTickets: 75},
	{Name: "Tech Conference 2026", Date: "2026-04-05", Location: "Convention Center", Description: "Latest technology trends and innovations", Price: 299, AvailableTickets: 200},
	{Name: "Spring Music Festival", Date: "2026-03-20", Location: "Central Park", Description: "Annual spring music celebration", Price: 85, AvailableTickets: 500},
	{Name: "Championship Finals", Date: "2026-05-15", Location: "Mega Arena", Description: "Sports championship final match", Price: 200, AvailableTickets: 1000},
	{Name: "Summer Beach Party", Date: "2026-06-21", Location: "Sunset Beach", Description: "Beach party with live DJ", Price: 50, AvailableTickets: 300},
	{Name: "Corporate Summit", Date: "2026-07-10", Location: "Business Tower", Description: "Annual corporate networking event", Price: 500, AvailableTickets: 150},
	{Name: "Food & Wine Festival", Date: "2026-08-15", Location: "Expo Center", Description: "Culinary delights and wine tasting", Price: 95, AvailableTickets: 400},
	{Name: "Halloween Horror Night", Date: "2026-10-31", Location: "Haunted Mansion", Description: "Spooky Halloween celebration", Price: 65, AvailableTickets: 200},
}
