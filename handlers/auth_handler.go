package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/internal/status"
	"ticketsmaster/models"
	"ticketsmaster/monitoring"
	"ticketsmaster/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register - POST /api/users/register
func (h *AuthHandler) Register(e *core.RequestEvent) error {
	var req models.RegisterRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	userID, err := h.auth.Register(e.Request.Context(), req)
	if err != nil {
		if errors.Is(err, status.ErrUserExists) {
			monitoring.TrackAuthAttempt("register", "conflict")
			return apis.NewBadRequestError("User already exists", nil)
		}
		slog.Error("register failed", "error", err)
		return serverError(err)
	}

	monitoring.TrackAuthAttempt("register", "success")

	return e.JSON(http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"userId":  userID,
	})
}

// Login - POST /api/users/login
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	return h.login(e, "login", h.auth.Login, "Invalid credentials", "Login successful")
}

// AdminLogin - POST /api/admin/login
func (h *AuthHandler) AdminLogin(e *core.RequestEvent) error {
	return h.login(e, "admin_login", h.auth.AdminLogin, "Invalid admin credentials", "Admin login successful")
}

func (h *AuthHandler) login(
	e *core.RequestEvent,
	kind string,
	authenticate func(ctx context.Context, username, password string) (models.User, string, error),
	failMessage, okMessage string,
) error {
	var req models.LoginRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	user, token, err := authenticate(e.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, status.ErrInvalidCredentials) {
			monitoring.TrackAuthAttempt(kind, "failure")
			return apis.NewBadRequestError(failMessage, nil)
		}
		slog.Error("login failed", "kind", kind, "error", err)
		return serverError(err)
	}

	monitoring.TrackAuthAttempt(kind, "success")

	return e.JSON(http.StatusOK, models.LoginResponse{
		Message: okMessage,
		Token:   token,
		User:    user,
	})
}
