package records

import (
	"context"
	"time"

	recordsRepo "cliniva/database/repository/records"
	"cliniva/models"
	"cliniva/services/scheduling"
	"cliniva/services/storage"
)

// RecordService manages uploaded patient result documents. Every operation
// checks delegation before touching the patient's records.
type RecordService interface {
	UploadResult(ctx context.Context, req UploadResultRequest) (*models.PatientRecord, error)
	ListResults(ctx context.Context, actorID, patientID string) ([]models.PatientRecord, error)
	ResultDownloadURL(ctx context.Context, actorID, patientID, publicID string) (string, error)
}

// UploadResultRequest describes a document being attached to a patient.
// ClinicID names the clinic the result originates from; staff uploaders are
// authorized against it.
type UploadResultRequest struct {
	ActorID       string
	PatientID     string
	ClinicID      string
	Title         string
	LocalFilePath string
}

// DefaultRecordService implements RecordService.
type DefaultRecordService struct {
	Repo    recordsRepo.Repository
	Storage storage.StorageService
	Auth    scheduling.Authorizer
	URLTTL  time.Duration
}
