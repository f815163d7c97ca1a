// File: database/repository/availability/availability_mongo.go
package availabilityRepo

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

// ReplaceWeek deletes the professional's windows and writes the new set in
// one transaction, so readers never observe a half-saved week.
func (r *mongoAvailabilityRepo) ReplaceWeek(ctx context.Context, clinicID, professionalID string, windows []models.AvailabilityWindow) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	docs := make([]interface{}, 0, len(windows))
	for _, w := range windows {
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		w.ClinicID = clinicID
		w.ProfessionalID = professionalID
		w.UpdatedAt = now
		docs = append(docs, w)
	}

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.DeleteMany(sc, bson.M{"professional_id": professionalID}); err != nil {
			return fmt.Errorf("clear week failed: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert week failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

func (r *mongoAvailabilityRepo) GetWindow(ctx context.Context, professionalID string, weekday int) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var w models.AvailabilityWindow
	err := r.coll.FindOne(ctx, bson.M{"professional_id": professionalID, "weekday": weekday}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *mongoAvailabilityRepo) GetWeek(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"professional_id": professionalID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.AvailabilityWindow
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the necessary indexes on the availability collection.
func (r *mongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "weekday", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_professional_weekday"),
		},
		{
			Keys:    bson.D{{Key: "clinic_id", Value: 1}},
			Options: options.Index().SetName("clinic_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
