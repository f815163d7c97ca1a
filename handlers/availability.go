package handlers

import (
	"net/http"

	"cliniva/models"
	availabilitySvc "cliniva/services/availability"
	"cliniva/services/scheduling"
	"cliniva/utils"

	"github.com/gin-gonic/gin"
)

type slotView struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// GetAvailabilityHandler returns the bookable start times for a professional,
// service and date.
func GetAvailabilityHandler(engine scheduling.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		professionalID := c.Query("professionalId")
		serviceID := c.Query("serviceId")
		date := c.Query("date")
		if professionalID == "" || serviceID == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "professionalId, serviceId and date are required"})
			return
		}

		starts, err := engine.AvailableStarts(c.Request.Context(), professionalID, serviceID, date)
		if err != nil {
			respondError(c, err)
			return
		}

		slots := make([]slotView, 0, len(starts))
		for _, start := range starts {
			slots = append(slots, slotView{
				StartTime: utils.FormatMinuteOfDay(start),
				Available: true,
			})
		}
		c.JSON(http.StatusOK, gin.H{"slots": slots})
	}
}

type weekInput struct {
	ClinicID       string                      `json:"clinicId"`
	ProfessionalID string                      `json:"professionalId"`
	Windows        []models.AvailabilityWindow `json:"windows"`
}

// SaveWeekAvailabilityHandler replaces a professional's weekly open hours.
// Staff only (enforced by route middleware).
func SaveWeekAvailabilityHandler(calendar availabilitySvc.CalendarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input weekInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if err := calendar.SaveWeek(c.Request.Context(), input.ClinicID, input.ProfessionalID, input.Windows); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "saved"})
	}
}

// GetWeekAvailabilityHandler returns a professional's configured week.
func GetWeekAvailabilityHandler(calendar availabilitySvc.CalendarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		windows, err := calendar.GetWeek(c.Request.Context(), c.Param("professionalId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"windows": windows})
	}
}
