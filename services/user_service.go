package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/crypto/bcrypt"

	"ticketsmaster/config"
	"ticketsmaster/internal/status"
	"ticketsmaster/models"
)

type UserService struct {
	app core.App
	cfg *config.Config
}

func NewUserService(app core.App, cfg *config.Config) *UserService {
	return &UserService{
		app: app,
		cfg: cfg,
	}
}

// List returns all users. Password hashes never leave the record layer.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	records := []*core.Record{}
	if err := s.app.RecordQuery("users").
		OrderBy("created DESC").
		All(&records); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	users := make([]models.User, len(records))
	for i, record := range records {
		users[i] = userFromRecord(record)
	}

	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("users", id)
	if err != nil {
		return status.ErrUserNotFound
	}

	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	return nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when no user with
// the admin username exists yet.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.app.FindFirstRecordByFilter(
		"users",
		"username = {:username}",
		dbx.Params{"username": "admin"},
	)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("EnsureDefaultAdmin: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("EnsureDefaultAdmin: hash password: %w", err)
	}

	collection, err := s.app.FindCollectionByNameOrId("users")
	if err != nil {
		return fmt.Errorf("EnsureDefaultAdmin: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", "System Administrator")
	record.Set("email", "admin@ticketsmaster.com")
	record.Set("username", "admin")
	record.Set("password_hash", string(hash))
	record.Set("role", "admin")

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("EnsureDefaultAdmin: save: %w", err)
	}

	slog.Info("default admin user created", "username", "admin")
	return nil
}
