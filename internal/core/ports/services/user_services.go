package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// UserSvcFacade exposes user registration and credential checks.
type UserSvcFacade interface {
	// RegisterUser creates a new user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser verifies email/password credentials. Invalid
	// credentials fail with apperrors.ErrUnauthorized.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// GetUserByID retrieves a user by their identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken returns a signed token and its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
