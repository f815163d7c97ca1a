package records

import (
	"context"
	"strings"
	"time"

	"cliniva/models"
	"cliniva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resultsFolder = "patient_results"

// UploadResult stores the document and records its metadata against the
// patient. The actor needs the uploadResults delegation.
func (s *DefaultRecordService) UploadResult(ctx context.Context, req UploadResultRequest) (*models.PatientRecord, error) {
	if err := s.Auth.Authorize(ctx, req.ActorID, req.PatientID, req.ClinicID, models.ActionUploadResults); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, models.NewValidationError("title", "a document title is required")
	}

	publicID, err := s.Storage.UploadFile(ctx, req.LocalFilePath, resultsFolder)
	if err != nil {
		return nil, err
	}

	record, err := s.Repo.Create(ctx, models.PatientRecord{
		ID:         uuid.New().String(),
		PatientID:  req.PatientID,
		ClinicID:   req.ClinicID,
		UploadedBy: req.ActorID,
		Title:      req.Title,
		FileRef:    publicID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		// Orphaned uploads are cheap to drop right away.
		if delErr := s.Storage.DeleteFile(ctx, publicID); delErr != nil {
			utils.GetLogger().Warn("failed to clean up orphaned upload",
				zap.String("publicID", publicID), zap.Error(delErr))
		}
		return nil, err
	}

	utils.GetLogger().Info("patient result uploaded",
		zap.String("recordID", record.ID),
		zap.String("patientID", req.PatientID),
		zap.String("uploadedBy", req.ActorID))
	return record, nil
}

// ListResults returns the patient's result documents, newest first. The list
// spans clinics, so only the patient or a caregiver holding viewHistory may
// read it; no staff bypass applies.
func (s *DefaultRecordService) ListResults(ctx context.Context, actorID, patientID string) ([]models.PatientRecord, error) {
	if err := s.Auth.Authorize(ctx, actorID, patientID, "", models.ActionViewHistory); err != nil {
		return nil, err
	}
	return s.Repo.ListByPatient(ctx, patientID)
}

// ResultDownloadURL issues a short-lived signed URL for one of the patient's
// documents.
func (s *DefaultRecordService) ResultDownloadURL(ctx context.Context, actorID, patientID, publicID string) (string, error) {
	if err := s.Auth.Authorize(ctx, actorID, patientID, "", models.ActionViewHistory); err != nil {
		return "", err
	}
	records, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if r.FileRef == publicID {
			return s.Storage.GetSecureDownloadURL(ctx, publicID, s.URLTTL)
		}
	}
	return "", &models.NotFoundError{Resource: "patientRecord", ID: publicID}
}
