package delegation

import (
	"context"

	"cliniva/models"
	"cliniva/utils"

	"go.uber.org/zap"
)

// Authorize allows a patient to act for themselves and staff of the clinic
// concerned to act for any patient there. Staff carry no platform-wide grant:
// the bypass applies only when the action's clinic matches the account's own,
// and patient-scoped reads with no clinic context never take it. Anyone else
// needs a caregiver link to the patient with the matching permission bit set.
func (s *DefaultDelegationService) Authorize(ctx context.Context, actorID, patientID, clinicID, action string) error {
	if actorID == "" || patientID == "" {
		return &models.ForbiddenError{ActorID: actorID, Action: action}
	}
	if actorID == patientID {
		return nil
	}

	if clinicID != "" {
		if account, err := s.Accounts.GetByID(ctx, actorID); err == nil &&
			account.IsStaff() && account.ClinicID == clinicID {
			return nil
		}
	}

	link, err := s.Links.GetByPair(ctx, actorID, patientID)
	if err != nil {
		return err
	}
	if link == nil || !link.Permissions.Allows(action) {
		return &models.ForbiddenError{ActorID: actorID, Action: action}
	}
	return nil
}

// GrantLink creates a caregiver link with exactly the given permission set.
// An authorization document is recorded when provided; requiring one for
// non-family relationships is a clinic policy hook, not enforced here.
func (s *DefaultDelegationService) GrantLink(ctx context.Context, req GrantLinkRequest) (*models.CaregiverLink, error) {
	if req.CaregiverID == "" || req.PatientID == "" {
		return nil, models.NewValidationError("caregiverId", "caregiver and patient are required")
	}
	if req.CaregiverID == req.PatientID {
		return nil, models.NewValidationError("caregiverId", "a patient cannot be their own caregiver")
	}
	if !models.ValidRelationship(req.RelationshipType) {
		return nil, models.NewValidationError("relationshipType", "unknown relationship type")
	}

	link, err := s.Links.Create(ctx, models.CaregiverLink{
		CaregiverID:      req.CaregiverID,
		PatientID:        req.PatientID,
		RelationshipType: req.RelationshipType,
		Permissions:      req.Permissions,
		AuthDocRef:       req.AuthDocRef,
	})
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("caregiver link granted",
		zap.String("linkID", link.ID),
		zap.String("caregiverID", link.CaregiverID),
		zap.String("patientID", link.PatientID),
		zap.String("relationship", link.RelationshipType))
	return link, nil
}

// RevokeLink destroys a link. Only the patient, clinic staff, or a caregiver
// who themselves holds a full-permission link to the same patient may revoke.
func (s *DefaultDelegationService) RevokeLink(ctx context.Context, linkID, revokedBy string) error {
	link, err := s.Links.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	if !s.mayRevoke(ctx, link, revokedBy) {
		return &models.ForbiddenError{ActorID: revokedBy, Action: "revokeLink"}
	}
	if err := s.Links.Delete(ctx, link.ID); err != nil {
		return err
	}
	utils.GetLogger().Info("caregiver link revoked",
		zap.String("linkID", link.ID), zap.String("revokedBy", revokedBy))
	return nil
}

func (s *DefaultDelegationService) mayRevoke(ctx context.Context, link *models.CaregiverLink, revokedBy string) bool {
	if revokedBy == link.PatientID {
		return true
	}
	if account, err := s.Accounts.GetByID(ctx, revokedBy); err == nil && account.IsStaff() {
		return true
	}
	own, err := s.Links.GetByPair(ctx, revokedBy, link.PatientID)
	return err == nil && own != nil && own.Permissions.IsFull()
}

// ListPatientLinks returns the patient's relationship set. Visible to the
// patient and clinic staff only; caregivers hold a reference to their own
// link, not to the set.
func (s *DefaultDelegationService) ListPatientLinks(ctx context.Context, patientID, requestedBy string) ([]models.CaregiverLink, error) {
	if requestedBy != patientID {
		account, err := s.Accounts.GetByID(ctx, requestedBy)
		if err != nil || !account.IsStaff() {
			return nil, &models.ForbiddenError{ActorID: requestedBy, Action: "listLinks"}
		}
	}
	return s.Links.ListByPatient(ctx, patientID)
}
