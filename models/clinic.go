package models

import "time"

// Clinic is one tenant of the platform.
type Clinic struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	// SlotStepMinutes is the candidate-start granularity for this clinic.
	// Zero means the platform default applies.
	SlotStepMinutes int `bson:"slot_step_minutes,omitempty" json:"slotStepMinutes,omitempty"`
	// MinServiceDurationMinutes is the shortest availability block and
	// service duration the clinic accepts. Zero means the platform default.
	MinServiceDurationMinutes int       `bson:"min_service_duration_minutes,omitempty" json:"minServiceDurationMinutes,omitempty"`
	Active                    bool      `bson:"active" json:"active"`
	CreatedAt                 time.Time `bson:"created_at" json:"createdAt"`
}

// Professional is a bookable practitioner belonging to a clinic.
type Professional struct {
	ID        string    `bson:"id" json:"id"`
	ClinicID  string    `bson:"clinic_id" json:"clinicId"`
	FullName  string    `bson:"full_name" json:"fullName"`
	Specialty string    `bson:"specialty" json:"specialty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ServiceOffering is a bookable service of a clinic. Deactivating an offering
// does not touch reservations that already reference it.
type ServiceOffering struct {
	ID              string    `bson:"id" json:"id"`
	ClinicID        string    `bson:"clinic_id" json:"clinicId"`
	Name            string    `bson:"name" json:"name"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	Price           float64   `bson:"price" json:"price"`
	Specialty       string    `bson:"specialty" json:"specialty"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}
