package account

import (
	"context"
	"testing"

	"cliniva/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountRepo struct {
	accounts map[string]models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]models.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a models.Account) (*models.Account, error) {
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return nil, models.NewValidationError("email", "an account with this email already exists")
		}
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	f.accounts[a.ID] = a
	return &a, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "account", ID: id}
	}
	return &a, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, &models.NotFoundError{Resource: "account", ID: email}
}

func (f *fakeAccountRepo) EnsureIndexes() error { return nil }

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Name:     "Ada Example",
		Email:    "Ada@Example.com",
		Password: "correct horse battery",
		Role:     models.RolePatient,
	}
}

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	svc := &DefaultAccountService{Repo: newFakeAccountRepo()}

	created, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotContains(t, created.PasswordHash, "correct horse")
}

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultAccountService{Repo: newFakeAccountRepo()}
	var validation *models.ValidationError

	req := validRegistration()
	req.Name = "  "
	_, err := svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &validation)

	req = validRegistration()
	req.Email = "not-an-address"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &validation)

	req = validRegistration()
	req.Password = "short"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &validation)

	req = validRegistration()
	req.Role = "superuser"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &validation)

	req = validRegistration()
	req.Role = models.RoleStaff // staff without a clinic
	_, err = svc.Register(context.Background(), req)
	assert.ErrorAs(t, err, &validation)
}

func TestAuthenticate(t *testing.T) {
	svc := &DefaultAccountService{Repo: newFakeAccountRepo()}
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	acc, token, err := svc.Authenticate(context.Background(), "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, acc.Role)
	assert.NotEmpty(t, token)

	var forbidden *models.ForbiddenError
	_, _, err = svc.Authenticate(context.Background(), "ada@example.com", "wrong password")
	assert.ErrorAs(t, err, &forbidden)

	_, _, err = svc.Authenticate(context.Background(), "nobody@example.com", "correct horse battery")
	assert.ErrorAs(t, err, &forbidden)
}
