package ports

import (
	"context"
	"time"

	"github.com/PankajGoutam/User-Api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth time.Time
	Address     map[string]any
	// Role defaults to USER when empty.
	Role string
}

// UpdateProfileInput carries a partial profile update. Nil pointers (and a
// nil Address) mean the field was not supplied.
type UpdateProfileInput struct {
	Name        *string
	Email       *string
	Password    *string
	DateOfBirth *time.Time
	Address     map[string]any
	Role        *string
}

// UserService defines the account use-cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token alongside the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// ListOthers returns all users except the caller.
	ListOthers(ctx context.Context, callerID string) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	// DeleteByEmail removes the account with the given email. Only ADMIN
	// callers may delete; the existence check runs before the role gate.
	DeleteByEmail(ctx context.Context, callerRole, email string) error
}
