package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is the single error returned for every token
	// verification failure. Expired and forged tokens are deliberately
	// indistinguishable to the caller.
	ErrInvalidToken = errors.New("invalid token")
	ErrAdminOnly    = errors.New("admin role required")
)
