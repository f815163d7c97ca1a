package scheduling

import (
	"context"

	"cliniva/models"
	"cliniva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TryReserve atomically creates a held reservation for the requested
// interval. The per-key mutex serializes concurrent callers for the same
// (professional, date); of two racing requests for overlapping intervals,
// exactly one wins and the other receives a ConflictError. The insert itself
// re-checks overlap transactionally, so a second process cannot slip past
// the in-memory lock either.
func (e *DefaultSchedulingEngine) TryReserve(ctx context.Context, req ReserveRequest) (*models.Reservation, error) {
	if _, err := utils.ParseDate(req.Date); err != nil {
		return nil, models.NewValidationError("date", err.Error())
	}
	if req.DurationMinutes <= 0 {
		return nil, models.NewValidationError("durationMinutes", "must be positive")
	}
	if req.Start < 0 {
		return nil, models.NewValidationError("start", "must not be negative")
	}

	lock := e.lockFor(req.ProfessionalID, req.Date)
	lock.Lock()
	defer lock.Unlock()

	now := e.now()
	existing, err := e.Reservations.ListBlockingForDay(ctx, req.ProfessionalID, req.Date, now, e.Cfg.HoldTTL)
	if err != nil {
		return nil, err
	}
	if overlapsAny(req.Start, req.Start+req.DurationMinutes, existing, now, e.Cfg.HoldTTL) {
		return nil, &models.ConflictError{
			ProfessionalID: req.ProfessionalID,
			Date:           req.Date,
			Start:          req.Start,
		}
	}

	reservation := models.Reservation{
		ID:              uuid.New().String(),
		ClinicID:        req.ClinicID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		PatientID:       req.PatientID,
		BookedBy:        req.ActorID,
		Status:          models.ReservationHeld,
		PatientInfo:     req.PatientInfo,
		HeldAt:          now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := e.Reservations.InsertIfFree(ctx, reservation, now, e.Cfg.HoldTTL); err != nil {
		return nil, err
	}

	if e.Expiry != nil {
		if err := e.Expiry.ScheduleExpiry(reservation.ID, e.Cfg.HoldTTL); err != nil {
			// The hold still expires via check-on-read; the sweep is best effort.
			utils.GetLogger().Warn("failed to schedule hold expiry",
				zap.String("reservationID", reservation.ID), zap.Error(err))
		}
	}

	utils.GetLogger().Info("slot held",
		zap.String("reservationID", reservation.ID),
		zap.String("professionalID", req.ProfessionalID),
		zap.String("date", req.Date),
		zap.Int("start", req.Start))
	return &reservation, nil
}

// Confirm promotes a live hold to a confirmed reservation. An expired hold is
// treated as gone: it is swept and reported as not found.
func (e *DefaultSchedulingEngine) Confirm(ctx context.Context, reservationID string) error {
	r, err := e.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	now := e.now()
	if r.Status == models.ReservationHeld && !r.Blocks(now, e.Cfg.HoldTTL) {
		_ = e.Reservations.CancelExpiredHold(ctx, reservationID, now.Add(-e.Cfg.HoldTTL))
		return &models.NotFoundError{Resource: "reservation", ID: reservationID}
	}
	return e.Reservations.TransitionStatus(ctx, reservationID, []string{models.ReservationHeld}, models.ReservationConfirmed)
}

// Release cancels a held or confirmed reservation on behalf of an actor. The
// authorizer enforces who may cancel: the patient, a caregiver holding the
// cancel permission, or staff of the reservation's clinic.
func (e *DefaultSchedulingEngine) Release(ctx context.Context, reservationID, actorID string) error {
	r, err := e.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if r.Status == models.ReservationCancelled || r.Status == models.ReservationCompleted {
		return &models.NotFoundError{Resource: "reservation", ID: reservationID}
	}
	if err := e.Auth.Authorize(ctx, actorID, r.PatientID, r.ClinicID, models.ActionCancel); err != nil {
		return err
	}
	if err := e.Reservations.TransitionStatus(ctx, reservationID,
		[]string{models.ReservationHeld, models.ReservationConfirmed}, models.ReservationCancelled); err != nil {
		return err
	}
	utils.GetLogger().Info("reservation released",
		zap.String("reservationID", reservationID), zap.String("actorID", actorID))
	return nil
}

// ExpireHold is the sweep entry point invoked by the background worker once a
// hold's TTL elapses. Confirmed reservations are left untouched.
func (e *DefaultSchedulingEngine) ExpireHold(ctx context.Context, reservationID string) error {
	return e.Reservations.CancelExpiredHold(ctx, reservationID, e.now().Add(-e.Cfg.HoldTTL))
}

func (e *DefaultSchedulingEngine) ListPatientReservations(ctx context.Context, patientID string) ([]models.Reservation, error) {
	return e.Reservations.ListByPatient(ctx, patientID)
}
