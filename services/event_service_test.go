package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketsmaster/internal/status"
	"ticketsmaster/models"
)

func createTestEvent(t *testing.T, svc *EventService, name string) models.Event {
	t.Helper()

	event, err := svc.Create(context.Background(), models.EventInput{
		Name:     strPtr(name),
		Date:     strPtr("2026-09-01"),
		Location: strPtr("Test Hall"),
	})
	require.NoError(t, err)
	return event
}

func TestEventService_Create_AppliesDefaults(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	event := createTestEvent(t, svc, "Defaults Show")

	assert.Equal(t, float64(0), event.Price)
	assert.Equal(t, 100, event.AvailableTickets)
	assert.NotEmpty(t, event.ID)
}

func TestEventService_Create_ExplicitValuesWin(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	event, err := svc.Create(context.Background(), models.EventInput{
		Name:             strPtr("Priced Show"),
		Date:             strPtr("2026-09-01"),
		Location:         strPtr("Test Hall"),
		Description:      strPtr("with an explicit price"),
		Position:         &models.Position{Lat: 17.96, Lng: 102.61},
		Price:            floatPtr(49.5),
		AvailableTickets: intPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, 49.5, event.Price)
	assert.Equal(t, 10, event.AvailableTickets)
	require.NotNil(t, event.Position)
	assert.Equal(t, 17.96, event.Position.Lat)
}

func TestEventService_Create_MissingFields(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	_, err := svc.Create(context.Background(), models.EventInput{
		Name: strPtr("No Venue"),
		Date: strPtr("2026-09-01"),
	})
	assert.ErrorIs(t, err, status.ErrMissingFields)

	_, err = svc.Create(context.Background(), models.EventInput{
		Name:     strPtr(""),
		Date:     strPtr("2026-09-01"),
		Location: strPtr("Test Hall"),
	})
	assert.ErrorIs(t, err, status.ErrMissingFields)
}

func TestEventService_List_NewestFirst(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	createTestEvent(t, svc, "first")
	time.Sleep(10 * time.Millisecond) // created has millisecond precision
	createTestEvent(t, svc, "second")

	events, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Name)
	assert.Equal(t, "first", events[1].Name)
}

func TestEventService_Get_NotFound(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, status.ErrEventNotFound)
}

func TestEventService_Update_PartialFields(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	event := createTestEvent(t, svc, "Original Name")

	updated, err := svc.Update(context.Background(), event.ID, models.EventInput{
		Price: floatPtr(25),
	})
	require.NoError(t, err)

	// only the provided field changes
	assert.Equal(t, float64(25), updated.Price)
	assert.Equal(t, "Original Name", updated.Name)
	assert.Equal(t, 100, updated.AvailableTickets)
}

func TestEventService_Update_NotFound(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	_, err := svc.Update(context.Background(), "missing", models.EventInput{
		Price: floatPtr(25),
	})
	assert.ErrorIs(t, err, status.ErrEventNotFound)
}

func TestEventService_Delete(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	event := createTestEvent(t, svc, "Short Lived")

	require.NoError(t, svc.Delete(context.Background(), event.ID))

	_, err := svc.Get(context.Background(), event.ID)
	assert.ErrorIs(t, err, status.ErrEventNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), event.ID), status.ErrEventNotFound)
}

func TestEventService_SeedIfEmpty(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	require.NoError(t, svc.SeedIfEmpty(context.Background()))

	events, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, len(sampleEvents))

	// a second call must not duplicate the samples
	require.NoError(t, svc.SeedIfEmpty(context.Background()))

	events, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, len(sampleEvents))
}

func TestEventService_SeedIfEmpty_SkipsNonEmptyCatalog(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	createTestEvent(t, svc, "Existing Event")

	require.NoError(t, svc.SeedIfEmpty(context.Background()))

	events, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventService_Reset_ReplacesCatalog(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	custom := createTestEvent(t, svc, "Custom Event")

	events, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, len(sampleEvents))

	for _, event := range events {
		assert.NotEqual(t, custom.ID, event.ID)
	}
}

func TestEventService_Purchase_DecrementsTickets(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	event, err := svc.Create(context.Background(), models.EventInput{
		Name:             strPtr("Big Match"),
		Date:             strPtr("2026-09-01"),
		Location:         strPtr("Arena"),
		Price:            floatPtr(19.99),
		AvailableTickets: intPtr(5),
	})
	require.NoError(t, err)

	result, err := svc.Purchase(context.Background(), event.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, event.ID, result.EventID)
	assert.Equal(t, 3, result.Quantity)
	assert.Equal(t, "59.97", result.Total)
	assert.Equal(t, 2, result.RemainingTickets)

	stored, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableTickets)
}

func TestEventService_Purchase_SoldOut(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	event, err := svc.Create(context.Background(), models.EventInput{
		Name:             strPtr("Small Venue"),
		Date:             strPtr("2026-09-01"),
		Location:         strPtr("Club"),
		AvailableTickets: intPtr(2),
	})
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), event.ID, 3)
	assert.ErrorIs(t, err, status.ErrSoldOut)

	// the failed purchase must not touch the counter
	stored, err := svc.Get(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableTickets)

	// buying the exact remainder succeeds
	result, err := svc.Purchase(context.Background(), event.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RemainingTickets)
}

func TestEventService_Purchase_UnknownEvent(t *testing.T) {
	app := setupTestApp(t)
	svc := NewEventService(app, testNotifier())

	_, err := svc.Purchase(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, status.ErrEventNotFound)
}
