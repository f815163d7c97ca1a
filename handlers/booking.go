package handlers

import (
	"errors"
	"net/http"

	"cliniva/models"
	"cliniva/services/booking"

	"github.com/gin-gonic/gin"
)

// StartBookingSessionHandler opens a guided booking workflow.
func StartBookingSessionHandler(svc booking.BookingSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PatientID      string `json:"patientId"`
			ProfessionalID string `json:"professionalId"`
			ServiceID      string `json:"serviceId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		actor := actorID(c)
		if input.PatientID == "" {
			input.PatientID = actor
		}

		session, err := svc.StartSession(c.Request.Context(), booking.StartSessionRequest{
			ActorID:        actor,
			PatientID:      input.PatientID,
			ProfessionalID: input.ProfessionalID,
			ServiceID:      input.ServiceID,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// SelectSlotHandler pins a slot choice. A stale choice returns 409 together
// with the refreshed session so the client can re-render the slot list.
func SelectSlotHandler(svc booking.BookingSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Date  string `json:"date"`
			Start int    `json:"start"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		session, err := svc.SelectSlot(c.Request.Context(), c.Param("sessionID"), input.Date, input.Start)
		var conflict *models.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Error(), "session": session})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// SubmitPatientInfoHandler records contact details for the pending booking.
func SubmitPatientInfoHandler(svc booking.BookingSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var info models.PatientInfo
		if err := c.ShouldBindJSON(&info); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		session, err := svc.SubmitPatientInfo(c.Request.Context(), c.Param("sessionID"), info)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// ConfirmBookingHandler executes the reserve-and-confirm step. On a slot race
// the session comes back in selection state with fresh slots and a 409.
func ConfirmBookingHandler(svc booking.BookingSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.ConfirmBooking(c.Request.Context(), c.Param("sessionID"))
		var conflict *models.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Error(), "session": session})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// CancelBookingSessionHandler abandons the workflow.
func CancelBookingSessionHandler(svc booking.BookingSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
