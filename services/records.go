package services

import (
	"log/slog"

	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/models"
)

func userFromRecord(record *core.Record) models.User {
	return models.User{
		ID:        record.Id,
		Name:      record.GetString("name"),
		Email:     record.GetString("email"),
		Username:  record.GetString("username"),
		Role:      record.GetString("role"),
		CreatedAt: record.GetDateTime("created").Time(),
	}
}

func eventFromRecord(record *core.Record) models.Event {
	event := models.Event{
		ID:               record.Id,
		Name:             record.GetString("name"),
		Date:             record.GetString("date"),
		Location:         record.GetString("location"),
		Description:      record.GetString("description"),
		Price:            record.GetFloat("price"),
		AvailableTickets: record.GetInt("available_tickets"),
		CreatedAt:        record.GetDateTime("created").Time(),
	}

	raw := record.GetString("position")
	if raw != "" && raw != "null" {
		var pos models.Position
		if err := record.UnmarshalJSONField("position", &pos); err != nil {
			slog.Warn("invalid stored position", "event", record.Id, "error", err)
		} else {
			event.Position = &pos
		}
	}

	return event
}
