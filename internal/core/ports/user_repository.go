package ports

import (
	"context"
	"time"

	"github.com/PankajGoutam/User-Api/internal/core/domain"
)

// UpdateFields carries the partial update applied to a user document.
// Nil pointers (and a nil Address) mean "leave unchanged".
type UpdateFields struct {
	Name         *string
	Email        *string
	PasswordHash *string
	DateOfBirth  *time.Time
	Address      map[string]any
	Role         *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListExcept returns every user except the one with the given id.
	ListExcept(ctx context.Context, id string) ([]*domain.User, error)
	// Update applies the given fields to the user with the given id and
	// returns the updated document.
	Update(ctx context.Context, id string, fields UpdateFields) (*domain.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
