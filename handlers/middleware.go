package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/internal/status"
	"ticketsmaster/services"
)

const authUserKey = "authUser"

type Middleware struct {
	auth *services.AuthService
}

func NewMiddleware(auth *services.AuthService) *Middleware {
	return &Middleware{auth: auth}
}

// RequireAdmin gates a handler behind a valid bearer token whose subject
// currently holds the admin role. The role is re-read from storage on every
// request, so a downgrade locks the user out immediately.
func (m *Middleware) RequireAdmin(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := bearerToken(e.Request)
		if token == "" {
			return apis.NewUnauthorizedError("Access denied. No token provided.", nil)
		}

		user, err := m.auth.VerifyAdmin(e.Request.Context(), token)
		if err != nil {
			if errors.Is(err, status.ErrAdminOnly) {
				return apis.NewForbiddenError("Access denied. Admin only.", nil)
			}
			return apis.NewUnauthorizedError("Invalid token.", nil)
		}

		e.Set(authUserKey, user)
		return next(e)
	}
}

// RequireAuth gates a handler behind any valid bearer token.
func (m *Middleware) RequireAuth(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := bearerToken(e.Request)
		if token == "" {
			return apis.NewUnauthorizedError("Access denied. No token provided.", nil)
		}

		user, err := m.auth.VerifyUser(e.Request.Context(), token)
		if err != nil {
			return apis.NewUnauthorizedError("Invalid token.", nil)
		}

		e.Set(authUserKey, user)
		return next(e)
	}
}

func authUser(e *core.RequestEvent) *core.Record {
	user, _ := e.Get(authUserKey).(*core.Record)
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func serverError(err error) error {
	return apis.NewApiError(http.StatusInternalServerError, "Server error", err)
}
