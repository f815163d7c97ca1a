package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"cliniva/config"
	"cliniva/database"
	"cliniva/models"
	"cliniva/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Simulation harness: fills the reservations collection of a seeded
// development database with a random mix of confirmed bookings and live and
// expired holds, then dumps the ledger per professional-day so slot output
// can be eyeballed against it.

func randomInt(min, max int) int {
	return rand.Intn(max-min+1) + min
}

// Candidate start minutes inside the seeded 08:00-12:00 / 14:00-18:00 blocks.
var candidateStarts = []int{480, 510, 540, 570, 600, 630, 660, 690, 840, 870, 900, 930, 960, 990, 1020, 1050}

func randomReservation(professionalID, date string, start int, now time.Time) models.Reservation {
	status := models.ReservationConfirmed
	heldAt := now
	switch randomInt(0, 3) {
	case 0: // live hold
		status = models.ReservationHeld
		heldAt = now.Add(-time.Duration(randomInt(0, 8)) * time.Minute)
	case 1: // expired hold, should never block a slot
		status = models.ReservationHeld
		heldAt = now.Add(-time.Duration(randomInt(15, 60)) * time.Minute)
	}

	return models.Reservation{
		ID:              uuid.New().String(),
		ClinicID:        "clinic-1",
		ProfessionalID:  professionalID,
		Date:            date,
		Start:           start,
		DurationMinutes: 30,
		PatientID:       fmt.Sprintf("patient-%d", randomInt(1, 5)),
		BookedBy:        "acc-patient-1",
		Status:          status,
		HeldAt:          heldAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func main() {
	config.LoadConfig()
	database.InitDB()
	coll := database.DB().Collection("reservations")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear reservations: %v", err)
	}

	now := time.Now()
	var dates []string
	for i := 1; i <= 3; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(utils.DateLayout))
	}

	var docs []interface{}
	for _, professionalID := range []string{"prof-1", "prof-2", "prof-3"} {
		for _, date := range dates {
			// Distinct starts per professional-day keep the intervals
			// non-overlapping, matching what the ledger would allow.
			perm := rand.Perm(len(candidateStarts))
			for _, idx := range perm[:randomInt(2, 5)] {
				docs = append(docs, randomReservation(professionalID, date, candidateStarts[idx], now))
			}
		}
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to insert reservations: %v", err)
	}
	fmt.Printf("Inserted %d reservations\n\n", len(docs))

	// Dump the ledger grouped by professional and date.
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "professional_id", Value: 1},
		{Key: "date", Value: 1},
		{Key: "start", Value: 1},
	}))
	if err != nil {
		log.Fatalf("Failed to fetch reservations: %v", err)
	}
	defer cursor.Close(ctx)

	holdTTL := time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute
	for cursor.Next(ctx) {
		var r models.Reservation
		if err := cursor.Decode(&r); err != nil {
			log.Printf("Error decoding reservation: %v", err)
			continue
		}
		blocking := ""
		if r.Blocks(now, holdTTL) {
			blocking = " [blocking]"
		}
		fmt.Printf("%s %s %s-%s %s%s\n",
			r.ProfessionalID, r.Date,
			utils.FormatMinuteOfDay(r.Start), utils.FormatMinuteOfDay(r.End()),
			r.Status, blocking)
	}
	if err := cursor.Err(); err != nil {
		log.Fatalf("Cursor error: %v", err)
	}
}
