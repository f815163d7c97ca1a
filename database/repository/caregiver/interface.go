// File: database/repository/caregiver/interface.go
package caregiverRepo

import (
	"context"

	"cliniva/database"
	"cliniva/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores caregiver-patient links. At most one link exists per
// (caregiver, patient) pair.
type Repository interface {
	Create(ctx context.Context, link models.CaregiverLink) (*models.CaregiverLink, error)
	GetByID(ctx context.Context, id string) (*models.CaregiverLink, error)
	GetByPair(ctx context.Context, caregiverID, patientID string) (*models.CaregiverLink, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.CaregiverLink, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoCaregiverRepo struct {
	coll *mongo.Collection
}

// NewMongoCaregiverRepo constructs a new MongoDB caregiver-link Repository.
func NewMongoCaregiverRepo() Repository {
	return &mongoCaregiverRepo{
		coll: database.DB().Collection("caregiver_links"),
	}
}
