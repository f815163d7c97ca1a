// File: database/repository/reservation/reservation_mongo.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"cliniva/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// blockingFilter matches reservations that still occupy their interval:
// confirmed, or held with held_at inside the TTL window.
func blockingFilter(professionalID, date string, now time.Time, holdTTL time.Duration) bson.M {
	return bson.M{
		"professional_id": professionalID,
		"date":            date,
		"$or": bson.A{
			bson.M{"status": models.ReservationConfirmed},
			bson.M{
				"status":  models.ReservationHeld,
				"held_at": bson.M{"$gt": now.Add(-holdTTL)},
			},
		},
	}
}

// InsertIfFree inserts the reservation inside a session transaction, after
// re-counting overlapping blocking reservations for the same professional and
// date. A racing insert that slipped past the application lock makes the
// count non-zero and the transaction aborts with a ConflictError.
func (r *mongoReservationRepo) InsertIfFree(ctx context.Context, res models.Reservation, now time.Time, holdTTL time.Duration) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := blockingFilter(res.ProfessionalID, res.Date, now, holdTTL)
		filter["start"] = bson.M{"$lt": res.End()}
		filter["$expr"] = bson.M{
			"$gt": bson.A{bson.M{"$add": bson.A{"$start", "$duration_minutes"}}, res.Start},
		}

		n, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap count failed: %w", err)
		}
		if n > 0 {
			return &models.ConflictError{
				ProfessionalID: res.ProfessionalID,
				Date:           res.Date,
				Start:          res.Start,
			}
		}
		if _, err := r.coll.InsertOne(sc, res); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
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

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, &models.NotFoundError{Resource: "reservation", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mongoReservationRepo) ListBlockingForDay(ctx context.Context, professionalID, date string, now time.Time, holdTTL time.Duration) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, blockingFilter(professionalID, date, now, holdTTL))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoReservationRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransitionStatus moves a reservation from one of the given statuses to
// another. A zero match count means the reservation is missing or no longer
// in an eligible status.
func (r *mongoReservationRepo) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("status transition failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Resource: "reservation", ID: id}
	}
	return nil
}

// CancelExpiredHold cancels the reservation only if it is still held and its
// hold began before the cutoff. Holds that were confirmed or already released
// are left untouched; a zero match is not an error.
func (r *mongoReservationRepo) CancelExpiredHold(ctx context.Context, id string, cutoff time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":      id,
		"status":  models.ReservationHeld,
		"held_at": bson.M{"$lte": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.ReservationCancelled, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("expired hold cleanup failed: %w", err)
	}
	return nil
}
