package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticketsmaster/internal/status"
	"ticketsmaster/services"
)

type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(users *services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers - GET /api/admin/users
func (h *AdminHandler) ListUsers(e *core.RequestEvent) error {
	users, err := h.users.List(e.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		return serverError(err)
	}

	return e.JSON(http.StatusOK, users)
}

// DeleteUser - DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.users.Delete(e.Request.Context(), id); err != nil {
		if errors.Is(err, status.ErrUserNotFound) {
			return apis.NewNotFoundError("User not found", nil)
		}
		slog.Error("delete user failed", "user", id, "error", err)
		return serverError(err)
	}

	slog.Info("user deleted", "user", id, "admin", authUser(e).Id)

	return e.JSON(http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}
