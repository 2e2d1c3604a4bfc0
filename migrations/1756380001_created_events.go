package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
			},
			// free-text date, matching the public contract
			&core.TextField{
				Name:     "date",
				Required: true,
			},
			&core.TextField{
				Name:     "location",
				Required: true,
			},
			&core.JSONField{
				Name: "position",
			},
			&core.TextField{
				Name: "description",
			},
			&core.NumberField{
				Name: "price",
			},
			&core.NumberField{
				Name:    "available_tickets",
				OnlyInt: true,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
