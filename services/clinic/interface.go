package clinic

import (
	"context"

	clinicRepo "cliniva/database/repository/clinic"
	"cliniva/models"
)

// ClinicService is the staff-facing administration surface for clinics,
// their professionals and the services they offer.
type ClinicService interface {
	CreateClinic(ctx context.Context, actorRole string, clinic models.Clinic) (*models.Clinic, error)
	GetClinic(ctx context.Context, id string) (*models.Clinic, error)

	AddProfessional(ctx context.Context, actorRole string, p models.Professional) (*models.Professional, error)
	ListProfessionals(ctx context.Context, clinicID string) ([]models.Professional, error)

	AddOffering(ctx context.Context, actorRole string, o models.ServiceOffering) (*models.ServiceOffering, error)
	ListOfferings(ctx context.Context, clinicID string, activeOnly bool) ([]models.ServiceOffering, error)
	SetOfferingActive(ctx context.Context, actorRole, id string, active bool) error
}

// DefaultClinicService implements ClinicService.
type DefaultClinicService struct {
	Repo clinicRepo.Repository
}
