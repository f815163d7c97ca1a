package models

import "time"

// Reservation statuses. Held reservations are provisional locks created
// mid-workflow; they expire if not confirmed within the hold TTL.
const (
	ReservationHeld      = "held"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Reservation is one committed appointment slot. For a given
// (professional_id, date) the intervals of held and confirmed reservations
// never overlap; the ledger is the only writer.
type Reservation struct {
	ID              string       `bson:"id" json:"id"`
	ClinicID        string       `bson:"clinic_id" json:"clinicId"`
	ProfessionalID  string       `bson:"professional_id" json:"professionalId"`
	ServiceID       string       `bson:"service_id" json:"serviceId"`
	Date            string       `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start           int          `bson:"start" json:"start"`
	DurationMinutes int          `bson:"duration_minutes" json:"durationMinutes"`
	PatientID       string       `bson:"patient_id" json:"patientId"`
	BookedBy        string       `bson:"booked_by" json:"bookedBy"` // patient or caregiver actor
	Status          string       `bson:"status" json:"status"`
	PatientInfo     *PatientInfo `bson:"patient_info,omitempty" json:"patientInfo,omitempty"`
	HeldAt          time.Time    `bson:"held_at" json:"heldAt"`
	CreatedAt       time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updated_at" json:"updatedAt"`
}

// End returns the exclusive end minute of the reservation interval.
func (r Reservation) End() int {
	return r.Start + r.DurationMinutes
}

// Overlaps reports whether [start, end) intersects the reservation interval.
func (r Reservation) Overlaps(start, end int) bool {
	return r.Start < end && start < r.End()
}

// Blocks reports whether the reservation still occupies its interval: it is
// confirmed, or held and not yet past the hold TTL. Cancelled and completed
// reservations, and expired holds, never block.
func (r Reservation) Blocks(now time.Time, holdTTL time.Duration) bool {
	switch r.Status {
	case ReservationConfirmed:
		return true
	case ReservationHeld:
		return now.Sub(r.HeldAt) < holdTTL
	default:
		return false
	}
}

// PatientInfo is the contact detail collected during the booking workflow.
type PatientInfo struct {
	FullName         string `bson:"full_name" json:"fullName"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email            string `bson:"email,omitempty" json:"email,omitempty"`
	PreferredChannel string `bson:"preferred_channel" json:"preferredChannel"` // "phone" or "email"
	Notes            string `bson:"notes,omitempty" json:"notes,omitempty"`
}
