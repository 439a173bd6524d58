package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/PankajGoutam/User-Api/internal/core/domain"
	"github.com/PankajGoutam/User-Api/internal/core/ports"
)

// UserService implements the account use-cases on top of the record store,
// the credential hasher and the token issuer.
type UserService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher *PasswordHasher, tokens *TokenManager, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account with a hashed password. The email existence
// check runs before the insert; the unique index on email backstops the
// race between two concurrent registrations.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		DateOfBirth:  input.DateOfBirth,
		Address:      input.Address,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a bearer token embedding the
// user snapshot at time of login.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("email", user.Email).Msg("user logged in")
	return token, user, nil
}

// Profile re-fetches the caller's record by id, so the response is fresh
// even when the token snapshot is stale.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListOthers returns every user except the caller.
func (s *UserService) ListOthers(ctx context.Context, callerID string) ([]*domain.User, error) {
	return s.repo.ListExcept(ctx, callerID)
}

// UpdateProfile applies the supplied subset of fields. The password is
// re-hashed only when one was supplied; omitted fields keep their stored
// values.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	fields := ports.UpdateFields{
		Name:        input.Name,
		Email:       input.Email,
		DateOfBirth: input.DateOfBirth,
		Address:     input.Address,
		Role:        input.Role,
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

// DeleteByEmail removes the account with the given email. The lookup runs
// first so a missing target reports not-found even to non-admin callers;
// the ADMIN gate follows.
func (s *UserService) DeleteByEmail(ctx context.Context, callerRole, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return err
	}

	if callerRole != domain.RoleAdmin {
		return domain.ErrAdminOnly
	}

	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("user deleted")
	return nil
}
