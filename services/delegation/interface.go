package delegation

import (
	"context"

	accountRepo "cliniva/database/repository/account"
	caregiverRepo "cliniva/database/repository/caregiver"
	"cliniva/models"
)

// DelegationService owns caregiver-patient links and answers every "may
// actor X perform action A for patient P" question. Default is deny-all:
// without a link carrying the right permission bit, a caregiver can do
// nothing.
type DelegationService interface {
	Authorize(ctx context.Context, actorID, patientID, clinicID, action string) error
	GrantLink(ctx context.Context, req GrantLinkRequest) (*models.CaregiverLink, error)
	RevokeLink(ctx context.Context, linkID, revokedBy string) error
	ListPatientLinks(ctx context.Context, patientID, requestedBy string) ([]models.CaregiverLink, error)
}

// GrantLinkRequest carries the explicit linking action.
type GrantLinkRequest struct {
	CaregiverID      string
	PatientID        string
	RelationshipType string
	Permissions      models.CaregiverPermissions
	AuthDocRef       string
}

// DefaultDelegationService implements DelegationService.
type DefaultDelegationService struct {
	Links    caregiverRepo.Repository
	Accounts accountRepo.Repository
}
