package account

import (
	"context"

	accountRepo "cliniva/database/repository/account"
	"cliniva/models"
)

// AccountService handles registration and authentication of platform
// accounts.
type AccountService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, string, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// RegisterRequest carries a new account's details.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
	ClinicID string // staff only
}

// DefaultAccountService implements AccountService.
type DefaultAccountService struct {
	Repo accountRepo.Repository
}
