// File: database/repository/account/account_mongo.go
package accountRepo

import (
	"context"
	"fmt"
	"time"

	"cliniva/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAccountRepo) Create(ctx context.Context, account models.Account) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewValidationError("email", "an account with this email already exists")
		}
		return nil, fmt.Errorf("insert account failed: %w", err)
	}
	return &account, nil
}

func (r *mongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "account", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *mongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "account", ID: email}
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// EnsureIndexes creates the necessary indexes on the accounts collection.
func (r *mongoAccountRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}
