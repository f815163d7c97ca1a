package account

import (
	"context"
	"strings"
	"time"

	"cliniva/models"
	"cliniva/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// Register creates an account with a bcrypt password hash.
func (s *DefaultAccountService) Register(ctx context.Context, req RegisterRequest) (*models.Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, models.NewValidationError("name", "name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, models.NewValidationError("email", "a valid email address is required")
	}
	if len(req.Password) < 8 {
		return nil, models.NewValidationError("password", "password must be at least 8 characters")
	}
	switch req.Role {
	case models.RolePatient, models.RoleCaregiver:
	case models.RoleStaff:
		if req.ClinicID == "" {
			return nil, models.NewValidationError("clinicId", "staff accounts require a clinic")
		}
	default:
		return nil, models.NewValidationError("role", "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.Repo.Create(ctx, models.Account{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
		ClinicID:     req.ClinicID,
	})
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("account registered",
		zap.String("accountID", created.ID), zap.String("role", created.Role))
	return created, nil
}

// Authenticate verifies credentials and returns the account with a signed
// JWT. Credential failures are reported as forbidden without distinguishing
// unknown email from wrong password.
func (s *DefaultAccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, string, error) {
	account, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, "", &models.ForbiddenError{ActorID: email, Action: "authenticate"}
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", &models.ForbiddenError{ActorID: email, Action: "authenticate"}
	}
	token, err := utils.GenerateToken(account.ID, account.Role, tokenLifetime)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *DefaultAccountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return s.Repo.GetByID(ctx, id)
}
