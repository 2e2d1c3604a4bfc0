package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("payment_methods")

		collection.Fields.Add(
			&core.TextField{
				Name: "card_number",
			},
			&core.TextField{
				Name: "card_expiry",
			},
			&core.TextField{
				Name: "card_cvv",
			},
			&core.TextField{
				Name: "card_name",
			},
			&core.TextField{
				Name: "card_type",
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("payment_methods")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
