// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"cliniva/database"
	"cliniva/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores the recurring weekly open-hours configuration. A save
// replaces the professional's whole week; windows have no independent
// lifecycle.
type Repository interface {
	ReplaceWeek(ctx context.Context, clinicID, professionalID string, windows []models.AvailabilityWindow) error
	GetWindow(ctx context.Context, professionalID string, weekday int) (*models.AvailabilityWindow, error)
	GetWeek(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error)
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB availability Repository.
func NewMongoAvailabilityRepo() Repository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability_windows"),
	}
}
