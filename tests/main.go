package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cliniva/config"
	"cliniva/database"
	"cliniva/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seed harness: wipes and repopulates a development database with one clinic,
// a handful of professionals, their offerings and a full week of open hours.
func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, name := range []string{"clinics", "professionals", "service_offerings", "availability_windows", "accounts"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	clinic := models.Clinic{
		ID:              uuid.New().String(),
		Name:            "Cliniva Demo Clinic",
		SlotStepMinutes: 30,
		Active:          true,
		CreatedAt:       time.Now(),
	}
	if _, err := db.Collection("clinics").InsertOne(ctx, clinic); err != nil {
		log.Fatalf("Failed to insert clinic: %v", err)
	}

	specialties := []string{"general", "dermatology", "cardiology"}
	var professionals []interface{}
	var offerings []interface{}
	var windows []interface{}

	for i, specialty := range specialties {
		professional := models.Professional{
			ID:        fmt.Sprintf("prof-%d", i+1),
			ClinicID:  clinic.ID,
			FullName:  fmt.Sprintf("Dr. Demo %d", i+1),
			Specialty: specialty,
			Active:    true,
			CreatedAt: time.Now(),
		}
		professionals = append(professionals, professional)

		offerings = append(offerings, models.ServiceOffering{
			ID:              fmt.Sprintf("svc-%d", i+1),
			ClinicID:        clinic.ID,
			Name:            specialty + " consultation",
			DurationMinutes: 30,
			Price:           45.0,
			Specialty:       specialty,
			Active:          true,
			CreatedAt:       time.Now(),
		})

		// Mon-Fri, morning and afternoon blocks.
		for weekday := 1; weekday <= 5; weekday++ {
			windows = append(windows, models.AvailabilityWindow{
				ID:             uuid.New().String(),
				ClinicID:       clinic.ID,
				ProfessionalID: professional.ID,
				Weekday:        weekday,
				Active:         true,
				Blocks: []models.TimeBlock{
					{Start: 480, End: 720},  // 08:00-12:00
					{Start: 840, End: 1080}, // 14:00-18:00
				},
				UpdatedAt: time.Now(),
			})
		}
	}

	if _, err := db.Collection("professionals").InsertMany(ctx, professionals); err != nil {
		log.Fatalf("Failed to insert professionals: %v", err)
	}
	if _, err := db.Collection("service_offerings").InsertMany(ctx, offerings); err != nil {
		log.Fatalf("Failed to insert offerings: %v", err)
	}
	if _, err := db.Collection("availability_windows").InsertMany(ctx, windows); err != nil {
		log.Fatalf("Failed to insert availability windows: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("$Password1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	accounts := []interface{}{
		models.Account{
			ID:           "acc-staff-1",
			Name:         "Demo Staff",
			Email:        "staff@cliniva.dev",
			PasswordHash: string(hashed),
			Role:         models.RoleStaff,
			ClinicID:     clinic.ID,
			CreatedAt:    time.Now(),
		},
		models.Account{
			ID:           "acc-patient-1",
			Name:         "Demo Patient",
			Email:        "patient@cliniva.dev",
			PasswordHash: string(hashed),
			Role:         models.RolePatient,
			CreatedAt:    time.Now(),
		},
		models.Account{
			ID:           "acc-caregiver-1",
			Name:         "Demo Caregiver",
			Email:        "caregiver@cliniva.dev",
			PasswordHash: string(hashed),
			Role:         models.RoleCaregiver,
			CreatedAt:    time.Now(),
		},
	}
	if _, err := db.Collection("accounts").InsertMany(ctx, accounts); err != nil {
		log.Fatalf("Failed to insert accounts: %v", err)
	}

	fmt.Printf("Seeded clinic %s with %d professionals, %d offerings, %d availability windows\n",
		clinic.ID, len(professionals), len(offerings), len(windows))
}
