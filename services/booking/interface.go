package booking

import (
	"context"
	"time"

	clinicRepo "cliniva/database/repository/clinic"
	"cliniva/models"
	"cliniva/services/scheduling"
)

// BookingSessionService drives a reservation from service selection through
// confirmation. The authorization check runs before any slot work; the
// ledger is touched only inside the confirmation step.
type BookingSessionService interface {
	StartSession(ctx context.Context, req StartSessionRequest) (*models.BookingSession, error)
	SelectSlot(ctx context.Context, sessionID, date string, start int) (*models.BookingSession, error)
	SubmitPatientInfo(ctx context.Context, sessionID string, info models.PatientInfo) (*models.BookingSession, error)
	ConfirmBooking(ctx context.Context, sessionID string) (*models.BookingSession, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// StartSessionRequest opens a workflow for an actor booking on a patient's
// behalf (the actor may be the patient).
type StartSessionRequest struct {
	ActorID        string
	PatientID      string
	ProfessionalID string
	ServiceID      string
}

// SessionStore persists workflow state between steps with a TTL; a session
// that outlives the TTL is implicitly abandoned.
type SessionStore interface {
	Save(ctx context.Context, session models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Sessions SessionStore
	Engine   scheduling.Engine
	Auth     scheduling.Authorizer
	Clinics  clinicRepo.Repository
	Now      func() time.Time // overridable in tests
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
