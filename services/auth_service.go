package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/crypto/bcrypt"

	"ticketsmaster/config"
	"ticketsmaster/internal/status"
	"ticketsmaster/models"
)

// Claims is the bearer token payload. The role claim is informational only:
// authorization always re-reads the stored role so a downgrade takes effect
// on the user's next request, not at token expiry.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	app core.App
	cfg *config.Config
}

func NewAuthService(app core.App, cfg *config.Config) *AuthService {
	return &AuthService{
		app: app,
		cfg: cfg,
	}
}

// Register creates a new user with the user role and returns its id.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	_, err := s.app.FindFirstRecordByFilter(
		"users",
		"email = {:email} || username = {:username}",
		dbx.Params{"email": req.Email, "username": req.Username},
	)
	if err == nil {
		return "", status.ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("Register: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("Register: hash password: %w", err)
	}

	collection, err := s.app.FindCollectionByNameOrId("users")
	if err != nil {
		return "", fmt.Errorf("Register: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", req.Name)
	record.Set("email", req.Email)
	record.Set("username", req.Username)
	record.Set("password_hash", string(hash))
	record.Set("role", "user")

	if err := s.app.Save(record); err != nil {
		return "", fmt.Errorf("Register: save: %w", err)
	}

	return record.Id, nil
}

// Login authenticates by username and password and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	return s.login(ctx, "username = {:username}", dbx.Params{"username": username}, password)
}

// AdminLogin is Login restricted to users holding the admin role.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (models.User, string, error) {
	return s.login(ctx,
		"username = {:username} && role = 'admin'",
		dbx.Params{"username": username},
		password,
	)
}

func (s *AuthService) login(_ context.Context, filter string, params dbx.Params, password string) (models.User, string, error) {
	record, err := s.app.FindFirstRecordByFilter("users", filter, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", status.ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("login: lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(record.GetString("password_hash")),
		[]byte(password),
	); err != nil {
		return models.User{}, "", status.ErrInvalidCredentials
	}

	token, err := s.issueToken(record)
	if err != nil {
		return models.User{}, "", fmt.Errorf("login: issue token: %w", err)
	}

	return userFromRecord(record), token, nil
}

func (s *AuthService) issueToken(record *core.Record) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: record.Id,
		Role:   record.GetString("role"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   record.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken validates the token signature and expiry and returns its claims.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, status.ErrInvalidToken
	}
	return claims, nil
}

// VerifyUser resolves the token subject to a stored user record.
func (s *AuthService) VerifyUser(ctx context.Context, tokenStr string) (*core.Record, error) {
	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	record, err := s.app.FindRecordById("users", claims.UserID)
	if err != nil {
		return nil, status.ErrInvalidToken
	}

	return record, nil
}

// VerifyAdmin resolves the token subject and checks its current stored role.
func (s *AuthService) VerifyAdmin(ctx context.Context, tokenStr string) (*core.Record, error) {
	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	record, err := s.app.FindRecordById("users", claims.UserID)
	if err != nil || record.GetString("role") != "admin" {
		return nil, status.ErrAdminOnly
	}

	return record, nil
}
