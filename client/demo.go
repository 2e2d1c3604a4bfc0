package client

import (
	"ticketsmaster/models"
)

// Demo credentials accepted while the API server is unreachable.
const (
	demoUsername      = "user"
	demoPassword      = "pass"
	demoAdminUsername = "admin"
	demoAdminPassword = "admin123"

	demoToken = "demo-token"
)

// DemoEvents returns the fixed offline dataset shown when the server
// cannot be reached.
func DemoEvents() []models.Event {
	return []models.Event{
		{ID: "demo-1", Name: "Concert Night", Date: "2023-12-01", Location: "Stadium A", Price: 50, AvailableTickets: 100},
		{ID: "demo-2", Name: "Festival Fun", Date: "2023-12-15", Location: "Park B", Price: 35, AvailableTickets: 200},
		{ID: "demo-3", Name: "Theater Show", Date: "2023-12-20", Location: "Theater C", Price: 75, AvailableTickets: 50},
	}
}

func verifyDemoCredentials(username, password string, adminOnly bool) (models.User, bool) {
	switch {
	case username == demoAdminUsername && password == demoAdminPassword:
		return models.User{ID: "demo-admin", Name: "Demo Admin", Username: demoAdminUsername, Role: "admin"}, true
	case !adminOnly && username == demoUsername && password == demoPassword:
		return models.User{ID: "demo-user", Name: "Demo User", Username: demoUsername, Role: "user"}, true
	default:
		return models.User{}, false
	}
}
