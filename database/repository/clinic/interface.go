// File: database/repository/clinic/interface.go
package clinicRepo

import (
	"context"

	"cliniva/database"
	"cliniva/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores clinics, their professionals and their service offerings.
type Repository interface {
	CreateClinic(ctx context.Context, clinic models.Clinic) (*models.Clinic, error)
	GetClinic(ctx context.Context, id string) (*models.Clinic, error)

	CreateProfessional(ctx context.Context, p models.Professional) (*models.Professional, error)
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	ListProfessionals(ctx context.Context, clinicID string) ([]models.Professional, error)

	CreateOffering(ctx context.Context, o models.ServiceOffering) (*models.ServiceOffering, error)
	GetOffering(ctx context.Context, id string) (*models.ServiceOffering, error)
	ListOfferings(ctx context.Context, clinicID string, activeOnly bool) ([]models.ServiceOffering, error)
	SetOfferingActive(ctx context.Context, id string, active bool) error
}

type mongoClinicRepo struct {
	clinics       *mongo.Collection
	professionals *mongo.Collection
	offerings     *mongo.Collection
}

// NewMongoClinicRepo constructs a new MongoDB clinic Repository.
func NewMongoClinicRepo() Repository {
	db := database.DB()
	return &mongoClinicRepo{
		clinics:       db.Collection("clinics"),
		professionals: db.Collection("professionals"),
		offerings:     db.Collection("service_offerings"),
	}
}
