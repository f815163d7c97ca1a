// File: database/repository/caregiver/caregiver_mongo.go
package caregiverRepo

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

func (r *mongoCaregiverRepo) Create(ctx context.Context, link models.CaregiverLink) (*models.CaregiverLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	link.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, link); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewValidationError("caregiverId", "a link between this caregiver and patient already exists")
		}
		return nil, fmt.Errorf("insert caregiver link failed: %w", err)
	}
	return &link, nil
}

func (r *mongoCaregiverRepo) GetByID(ctx context.Context, id string) (*models.CaregiverLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var link models.CaregiverLink
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&link)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "caregiverLink", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *mongoCaregiverRepo) GetByPair(ctx context.Context, caregiverID, patientID string) (*models.CaregiverLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var link models.CaregiverLink
	err := r.coll.FindOne(ctx, bson.M{"caregiver_id": caregiverID, "patient_id": patientID}).Decode(&link)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *mongoCaregiverRepo) ListByPatient(ctx context.Context, patientID string) ([]models.CaregiverLink, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.CaregiverLink
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCaregiverRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete caregiver link failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return &models.NotFoundError{Resource: "caregiverLink", ID: id}
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the caregiver links collection.
func (r *mongoCaregiverRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "caregiver_id", Value: 1}, {Key: "patient_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_caregiver_patient"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}},
			Options: options.Index().SetName("patient_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create caregiver link indexes: %w", err)
	}
	return nil
}
