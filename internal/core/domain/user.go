package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is the account record persisted in the users collection.
//
// PasswordHash is never serialized: it stays out of HTTP responses and out
// of the JWT user snapshot.
type User struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	DateOfBirth  time.Time      `json:"dateOfBirth"`
	Address      map[string]any `json:"address,omitempty"`
	Role         string         `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
