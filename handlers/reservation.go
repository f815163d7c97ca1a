package handlers

import (
	"net/http"
	"slices"

	clinicRepo "cliniva/database/repository/clinic"
	"cliniva/models"
	"cliniva/services/scheduling"

	"github.com/gin-gonic/gin"
)

type reserveInput struct {
	ProfessionalID string              `json:"professionalId" binding:"required"`
	ServiceID      string              `json:"serviceId" binding:"required"`
	Date           string              `json:"date" binding:"required"`
	Start          int                 `json:"start"`
	PatientID      string              `json:"patientId"`
	PatientInfo    *models.PatientInfo `json:"patientInfo,omitempty"`
}

// CreateReservationHandler is the one-shot booking path: authorize, reserve,
// confirm. The reservation's clinic and duration come from the service
// offering, never from the caller, and the requested start must be one the
// allocator currently offers. Callers wanting the guided flow use the session
// endpoints instead.
func CreateReservationHandler(engine scheduling.Engine, auth scheduling.Authorizer, clinics clinicRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reserveInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		actor := actorID(c)
		if input.PatientID == "" {
			input.PatientID = actor
		}

		ctx := c.Request.Context()
		offering, err := clinics.GetOffering(ctx, input.ServiceID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !offering.Active {
			respondError(c, models.NewValidationError("serviceId", "service offering is not active"))
			return
		}
		professional, err := clinics.GetProfessional(ctx, input.ProfessionalID)
		if err != nil {
			respondError(c, err)
			return
		}
		if professional.ClinicID != offering.ClinicID {
			respondError(c, models.NewValidationError("professionalId", "professional does not offer this service"))
			return
		}

		if err := auth.Authorize(ctx, actor, input.PatientID, offering.ClinicID, models.ActionBook); err != nil {
			respondError(c, err)
			return
		}

		// The allocator's output already enforces the availability window,
		// the slot step and the minimum lead time.
		starts, err := engine.AvailableStarts(ctx, input.ProfessionalID, input.ServiceID, input.Date)
		if err != nil {
			respondError(c, err)
			return
		}
		if !slices.Contains(starts, input.Start) {
			respondError(c, &models.ConflictError{
				ProfessionalID: input.ProfessionalID,
				Date:           input.Date,
				Start:          input.Start,
			})
			return
		}

		reservation, err := engine.TryReserve(ctx, scheduling.ReserveRequest{
			ClinicID:        offering.ClinicID,
			ProfessionalID:  input.ProfessionalID,
			ServiceID:       input.ServiceID,
			Date:            input.Date,
			Start:           input.Start,
			DurationMinutes: offering.DurationMinutes,
			PatientID:       input.PatientID,
			ActorID:         actor,
			PatientInfo:     input.PatientInfo,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if err := engine.Confirm(ctx, reservation.ID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"reservationId": reservation.ID,
			"status":        models.ReservationConfirmed,
		})
	}
}

// ReleaseReservationHandler cancels a reservation on behalf of the actor.
func ReleaseReservationHandler(engine scheduling.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.Release(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListPatientReservationsHandler returns a patient's reservation history. The
// history spans clinics, so only the patient or a caregiver holding the
// viewHistory delegation may read it.
func ListPatientReservationsHandler(engine scheduling.Engine, auth scheduling.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID := c.Param("id")
		ctx := c.Request.Context()
		if err := auth.Authorize(ctx, actorID(c), patientID, "", models.ActionViewHistory); err != nil {
			respondError(c, err)
			return
		}
		reservations, err := engine.ListPatientReservations(ctx, patientID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reservations": reservations})
	}
}
