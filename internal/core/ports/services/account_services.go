package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// AccountSvcFacade exposes account management for the owning user.
type AccountSvcFacade interface {
	// CreateAccount creates a new account owned by the user.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves one of the user's accounts. Accessing another
	// user's account fails with apperrors.ErrForbidden.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of the user's accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)

	// DeactivateAccount marks one of the user's accounts as inactive.
	DeactivateAccount(ctx context.Context, userID string, accountID string) error
}
