package status

import "errors"

var (
	ErrUserExists         = errors.New("user: already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
	ErrAdminOnly          = errors.New("auth: admin role required")
	ErrEventNotFound      = errors.New("event: not found")
	ErrMissingFields      = errors.New("event: name, date and location are required")
	ErrUserNotFound       = errors.New("user: not found")
	ErrSoldOut            = errors.New("event: not enough tickets available")
)
