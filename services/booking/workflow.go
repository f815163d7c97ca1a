package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"cliniva/models"
	"cliniva/services/scheduling"
	"cliniva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession resolves the chosen offering, authorizes the actor for the
// patient at the offering's clinic and opens a session. A ForbiddenError
// aborts the whole workflow here; no hold is ever created for an unauthorized
// actor.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, req StartSessionRequest) (*models.BookingSession, error) {
	offering, err := s.Clinics.GetOffering(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !offering.Active {
		return nil, models.NewValidationError("serviceId", "service offering is not active")
	}
	professional, err := s.Clinics.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if professional.ClinicID != offering.ClinicID {
		return nil, models.NewValidationError("professionalId", "professional does not offer this service")
	}

	if err := s.Auth.Authorize(ctx, req.ActorID, req.PatientID, offering.ClinicID, models.ActionBook); err != nil {
		return nil, err
	}

	now := s.now()
	session := models.BookingSession{
		SessionID:       uuid.New().String(),
		State:           models.StateSelectingSlot,
		ActorID:         req.ActorID,
		PatientID:       req.PatientID,
		ClinicID:        offering.ClinicID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		ServiceDuration: offering.DurationMinutes,
		SelectedStart:   -1,
		CreatedAt:       now,
		LastUpdatedAt:   now,
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking session started",
		zap.String("sessionID", session.SessionID),
		zap.String("actorID", req.ActorID),
		zap.String("patientID", req.PatientID))
	return &session, nil
}

// SelectSlot pins a start time from the allocator's current output. Nothing
// is reserved yet; the choice is re-validated at confirmation.
func (s *DefaultBookingSessionService) SelectSlot(ctx context.Context, sessionID, date string, start int) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, models.StateSelectingSlot); err != nil {
		return nil, err
	}

	starts, err := s.Engine.AvailableStarts(ctx, session.ProfessionalID, session.ServiceID, date)
	if err != nil {
		return nil, err
	}
	session.Date = date
	session.AvailableStarts = starts

	if !slices.Contains(starts, start) {
		// The slot list the caller saw is stale; hand back the fresh one.
		if err := s.Sessions.Save(ctx, *session); err != nil {
			return nil, err
		}
		return session, &models.ConflictError{
			ProfessionalID: session.ProfessionalID,
			Date:           date,
			Start:          start,
		}
	}

	session.SelectedStart = start
	session.State = models.StateCollectingPatientInfo
	if err := s.Sessions.Save(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitPatientInfo records the contact details required before confirmation.
func (s *DefaultBookingSessionService) SubmitPatientInfo(ctx context.Context, sessionID string, info models.PatientInfo) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, models.StateCollectingPatientInfo); err != nil {
		return nil, err
	}
	if err := validatePatientInfo(info); err != nil {
		return nil, err
	}

	session.PatientInfo = &info
	session.State = models.StateConfirming
	if err := s.Sessions.Save(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmBooking performs the atomic reserve. On a conflict the session
// falls back to slot selection with a refreshed list instead of failing
// outright; the ConflictError is still surfaced so the caller knows why.
func (s *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, models.StateConfirming); err != nil {
		return nil, err
	}

	reservation, err := s.Engine.TryReserve(ctx, scheduling.ReserveRequest{
		ClinicID:        session.ClinicID,
		ProfessionalID:  session.ProfessionalID,
		ServiceID:       session.ServiceID,
		Date:            session.Date,
		Start:           session.SelectedStart,
		DurationMinutes: session.ServiceDuration,
		PatientID:       session.PatientID,
		ActorID:         session.ActorID,
		PatientInfo:     session.PatientInfo,
	})
	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		starts, availErr := s.Engine.AvailableStarts(ctx, session.ProfessionalID, session.ServiceID, session.Date)
		if availErr != nil {
			return nil, availErr
		}
		session.State = models.StateSelectingSlot
		session.SelectedStart = -1
		session.AvailableStarts = starts
		if saveErr := s.Sessions.Save(ctx, *session); saveErr != nil {
			return nil, saveErr
		}
		utils.GetLogger().Info("slot raced away, session back to selection",
			zap.String("sessionID", sessionID))
		return session, conflict
	}
	if err != nil {
		return nil, err
	}

	if err := s.Engine.Confirm(ctx, reservation.ID); err != nil {
		return nil, err
	}

	session.State = models.StateBooked
	session.ReservationID = reservation.ID
	// Booked is terminal; the session has served its purpose.
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to drop completed session", zap.Error(err))
	}

	utils.GetLogger().Info("booking confirmed",
		zap.String("sessionID", sessionID),
		zap.String("reservationID", reservation.ID))
	return session, nil
}

// CancelSession abandons the workflow explicitly. Any hold the session never
// reached confirmation with simply expires in the ledger.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

func requireState(session *models.BookingSession, want string) error {
	if session.State != want {
		return models.NewValidationError("state",
			fmt.Sprintf("step not allowed in state %q", session.State))
	}
	return nil
}

func validatePatientInfo(info models.PatientInfo) error {
	if strings.TrimSpace(info.FullName) == "" {
		return models.NewValidationError("fullName", "name is required")
	}
	switch info.PreferredChannel {
	case "phone":
		if strings.TrimSpace(info.Phone) == "" {
			return models.NewValidationError("phone", "a reachable phone number is required")
		}
	case "email":
		if strings.TrimSpace(info.Email) == "" || !strings.Contains(info.Email, "@") {
			return models.NewValidationError("email", "a reachable email address is required")
		}
	default:
		return models.NewValidationError("preferredChannel", "must be \"phone\" or \"email\"")
	}
	return nil
}
