// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"time"

	"cliniva/database"
	"cliniva/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence contract of the reservation ledger. The
// ledger serializes writes per (professional, date); InsertIfFree is the
// cross-process backstop that re-checks overlap inside a transaction.
type Repository interface {
	InsertIfFree(ctx context.Context, r models.Reservation, now time.Time, holdTTL time.Duration) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListBlockingForDay(ctx context.Context, professionalID, date string, now time.Time, holdTTL time.Duration) ([]models.Reservation, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Reservation, error)
	TransitionStatus(ctx context.Context, id string, from []string, to string) error
	CancelExpiredHold(ctx context.Context, id string, cutoff time.Time) error
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB reservation Repository.
func NewMongoReservationRepo() Repository {
	return &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
}
