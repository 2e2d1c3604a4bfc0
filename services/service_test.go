package services

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ticketsmaster/config"
	"ticketsmaster/internal/realtime"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

// setupTestApp starts an isolated app with the same collections the
// migrations create in production.
func setupTestApp(t *testing.T) *tests.TestApp {
	t.Helper()

	app, err := tests.NewTestApp(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	if existing, err := app.FindCollectionByNameOrId("users"); err == nil {
		require.NoError(t, app.Delete(existing))
	}

	users := core.NewBaseCollection("users")
	users.Fields.Add(
		&core.TextField{Name: "name", Required: true},
		&core.EmailField{Name: "email", Required: true},
		&core.TextField{Name: "username", Required: true},
		&core.TextField{Name: "password_hash", Required: true},
		&core.SelectField{Name: "role", Values: []string{"user", "admin"}, MaxSelect: 1},
		&core.AutodateField{Name: "created", OnCreate: true},
	)
	users.AddIndex("idx_users_email", true, "email", "")
	users.AddIndex("idx_users_username", true, "username", "")
	require.NoError(t, app.Save(users))

	events := core.NewBaseCollection("events")
	events.Fields.Add(
		&core.TextField{Name: "name", Required: true},
		&core.TextField{Name: "date", Required: true},
		&core.TextField{Name: "location", Required: true},
		&core.JSONField{Name: "position"},
		&core.TextField{Name: "description"},
		&core.NumberField{Name: "price"},
		&core.NumberField{Name: "available_tickets", OnlyInt: true},
		&core.AutodateField{Name: "created", OnCreate: true},
	)
	require.NoError(t, app.Save(events))

	payments := core.NewBaseCollection("payment_methods")
	payments.Fields.Add(
		&core.TextField{Name: "card_number"},
		&core.TextField{Name: "card_expiry"},
		&core.TextField{Name: "card_cvv"},
		&core.TextField{Name: "card_name"},
		&core.TextField{Name: "card_type"},
		&core.AutodateField{Name: "created", OnCreate: true},
	)
	require.NoError(t, app.Save(payments))

	return app
}

func testNotifier() *realtime.Notifier {
	// empty keys return a disabled notifier, publishes are no-ops
	return realtime.NewNotifier("", "", "")
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
