package clinic

import (
	"context"
	"strings"
	"time"

	"cliniva/config"
	"cliniva/models"
	"cliniva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func requireStaff(actorRole, action string) error {
	if actorRole != models.RoleStaff {
		return &models.ForbiddenError{ActorID: actorRole, Action: action}
	}
	return nil
}

// CreateClinic registers a new tenant. Staff only.
func (s *DefaultClinicService) CreateClinic(ctx context.Context, actorRole string, clinic models.Clinic) (*models.Clinic, error) {
	if err := requireStaff(actorRole, "createClinic"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(clinic.Name) == "" {
		return nil, models.NewValidationError("name", "clinic name is required")
	}
	if clinic.SlotStepMinutes < 0 || clinic.MinServiceDurationMinutes < 0 {
		return nil, models.NewValidationError("slotStepMinutes", "scheduling overrides must not be negative")
	}
	clinic.ID = uuid.New().String()
	clinic.Active = true
	clinic.CreatedAt = time.Now()

	created, err := s.Repo.CreateClinic(ctx, clinic)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("clinic created", zap.String("clinicID", created.ID))
	return created, nil
}

func (s *DefaultClinicService) GetClinic(ctx context.Context, id string) (*models.Clinic, error) {
	return s.Repo.GetClinic(ctx, id)
}

// AddProfessional attaches a practitioner to a clinic. Staff only.
func (s *DefaultClinicService) AddProfessional(ctx context.Context, actorRole string, p models.Professional) (*models.Professional, error) {
	if err := requireStaff(actorRole, "addProfessional"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.FullName) == "" {
		return nil, models.NewValidationError("fullName", "professional name is required")
	}
	if _, err := s.Repo.GetClinic(ctx, p.ClinicID); err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	p.Active = true
	p.CreatedAt = time.Now()
	return s.Repo.CreateProfessional(ctx, p)
}

func (s *DefaultClinicService) ListProfessionals(ctx context.Context, clinicID string) ([]models.Professional, error) {
	return s.Repo.ListProfessionals(ctx, clinicID)
}

// AddOffering publishes a bookable service. Staff only. Duration is checked
// against the clinic's minimum (or the platform default when unset).
func (s *DefaultClinicService) AddOffering(ctx context.Context, actorRole string, o models.ServiceOffering) (*models.ServiceOffering, error) {
	if err := requireStaff(actorRole, "addOffering"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(o.Name) == "" {
		return nil, models.NewValidationError("name", "offering name is required")
	}
	clinic, err := s.Repo.GetClinic(ctx, o.ClinicID)
	if err != nil {
		return nil, err
	}
	minDuration := clinic.MinServiceDurationMinutes
	if minDuration <= 0 {
		minDuration = config.AppConfig.MinServiceDuration
	}
	if o.DurationMinutes < minDuration {
		return nil, models.NewValidationError("durationMinutes", "duration is below the clinic minimum")
	}
	o.ID = uuid.New().String()
	o.Active = true
	o.CreatedAt = time.Now()

	created, err := s.Repo.CreateOffering(ctx, o)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("service offering added",
		zap.String("offeringID", created.ID), zap.String("clinicID", created.ClinicID))
	return created, nil
}

func (s *DefaultClinicService) ListOfferings(ctx context.Context, clinicID string, activeOnly bool) ([]models.ServiceOffering, error) {
	return s.Repo.ListOfferings(ctx, clinicID, activeOnly)
}

// SetOfferingActive flips an offering's visibility to bookers. Existing
// reservations keep pointing at it either way.
func (s *DefaultClinicService) SetOfferingActive(ctx context.Context, actorRole, id string, active bool) error {
	if err := requireStaff(actorRole, "setOfferingActive"); err != nil {
		return err
	}
	return s.Repo.SetOfferingActive(ctx, id, active)
}
