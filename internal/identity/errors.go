package identity

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when registering a duplicate username.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRole is returned when a role value is not recognized.
	ErrInvalidRole = errors.New("invalid role")
)
