// File: database/repository/records/interface.go
package recordsRepo

import (
	"context"

	"cliniva/database"
	"cliniva/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores metadata of uploaded patient result documents.
type Repository interface {
	Create(ctx context.Context, record models.PatientRecord) (*models.PatientRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.PatientRecord, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo constructs a new MongoDB patient record Repository.
func NewMongoRecordRepo() Repository {
	return &mongoRecordRepo{
		coll: database.DB().Collection("patient_records"),
	}
}
