// File: database/repository/account/interface.go
package accountRepo

import (
	"context"

	"cliniva/database"
	"cliniva/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores platform accounts (patients, caregivers, clinic staff).
type Repository interface {
	Create(ctx context.Context, account models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	EnsureIndexes() error
}

type mongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo constructs a new MongoDB account Repository.
func NewMongoAccountRepo() Repository {
	return &mongoAccountRepo{
		coll: database.DB().Collection("accounts"),
	}
}
