// File: database/repository/clinic/clinic_mongo.go
package clinicRepo

import (
	"context"
	"fmt"
	"time"

	"cliniva/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoClinicRepo) CreateClinic(ctx context.Context, clinic models.Clinic) (*models.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if clinic.ID == "" {
		clinic.ID = uuid.New().String()
	}
	clinic.CreatedAt = time.Now()
	if _, err := r.clinics.InsertOne(ctx, clinic); err != nil {
		return nil, fmt.Errorf("insert clinic failed: %w", err)
	}
	return &clinic, nil
}

func (r *mongoClinicRepo) GetClinic(ctx context.Context, id string) (*models.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var clinic models.Clinic
	err := r.clinics.FindOne(ctx, bson.M{"id": id}).Decode(&clinic)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "clinic", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *mongoClinicRepo) CreateProfessional(ctx context.Context, p models.Professional) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	if _, err := r.professionals.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert professional failed: %w", err)
	}
	return &p, nil
}

func (r *mongoClinicRepo) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	err := r.professionals.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "professional", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoClinicRepo) ListProfessionals(ctx context.Context, clinicID string) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.professionals.Find(ctx, bson.M{"clinic_id": clinicID, "active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Professional
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoClinicRepo) CreateOffering(ctx context.Context, o models.ServiceOffering) (*models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = time.Now()
	if _, err := r.offerings.InsertOne(ctx, o); err != nil {
		return nil, fmt.Errorf("insert service offering failed: %w", err)
	}
	return &o, nil
}

func (r *mongoClinicRepo) GetOffering(ctx context.Context, id string) (*models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o models.ServiceOffering
	err := r.offerings.FindOne(ctx, bson.M{"id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "serviceOffering", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *mongoClinicRepo) ListOfferings(ctx context.Context, clinicID string, activeOnly bool) ([]models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"clinic_id": clinicID}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.offerings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.ServiceOffering
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetOfferingActive flips an offering's active flag. Existing reservations
// referencing the offering are untouched.
func (r *mongoClinicRepo) SetOfferingActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.offerings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return fmt.Errorf("update offering failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Resource: "serviceOffering", ID: id}
	}
	return nil
}
