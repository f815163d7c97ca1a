package models

import "time"

// Booking workflow states. A session that disappears from the store before
// reaching StateBooked is implicitly abandoned.
const (
	StateSelectingService      = "selecting_service"
	StateSelectingSlot         = "selecting_slot"
	StateCollectingPatientInfo = "collecting_patient_info"
	StateConfirming            = "confirming"
	StateBooked                = "booked"
)

// BookingSession holds workflow state between the booking steps. It lives in
// Redis with a TTL; nothing in it reserves a slot until confirmation.
type BookingSession struct {
	SessionID       string       `json:"sessionId"`
	State           string       `json:"state"`
	ActorID         string       `json:"actorId"`
	PatientID       string       `json:"patientId"`
	ClinicID        string       `json:"clinicId"`
	ProfessionalID  string       `json:"professionalId"`
	ServiceID       string       `json:"serviceId"`
	ServiceDuration int          `json:"serviceDuration"`
	Date            string       `json:"date,omitempty"`
	AvailableStarts []int        `json:"availableStarts,omitempty"`
	SelectedStart   int          `json:"selectedStart"` // -1 until a slot is chosen
	PatientInfo     *PatientInfo `json:"patientInfo,omitempty"`
	ReservationID   string       `json:"reservationId,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	LastUpdatedAt   time.Time    `json:"lastUpdatedAt"`
}
