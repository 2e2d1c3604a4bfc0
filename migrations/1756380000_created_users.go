package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		// drop the stock auth collection; authentication is handled by the
		// API itself with bcrypt hashes and bearer tokens
		if existing, err := app.FindCollectionByNameOrId("users"); err == nil {
			if err := app.Delete(existing); err != nil {
				return err
			}
		}

		collection := core.NewBaseCollection("users")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
			},
			&core.EmailField{
				Name:     "email",
				Required: true,
			},
			&core.TextField{
				Name:     "username",
				Required: true,
			},
			&core.TextField{
				Name:     "password_hash",
				Required: true,
			},
			&core.SelectField{
				Name:      "role",
				Values:    []string{"user", "admin"},
				MaxSelect: 1,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		// email and username must be unique across all users
		collection.AddIndex("idx_users_email", true, "email", "")
		collection.AddIndex("idx_users_username", true, "username", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
