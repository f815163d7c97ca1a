package handlers

import (
	"net/http"
	"strconv"

	"cliniva/models"
	clinicSvc "cliniva/services/clinic"

	"github.com/gin-gonic/gin"
)

// CreateClinicHandler registers a new clinic tenant. Staff only.
func CreateClinicHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Clinic
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		created, err := svc.CreateClinic(c.Request.Context(), actorRole(c), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetClinicHandler returns one clinic.
func GetClinicHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clinic, err := svc.GetClinic(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, clinic)
	}
}

// AddProfessionalHandler attaches a practitioner to a clinic. Staff only.
func AddProfessionalHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Professional
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		input.ClinicID = c.Param("id")
		created, err := svc.AddProfessional(c.Request.Context(), actorRole(c), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListProfessionalsHandler lists a clinic's practitioners.
func ListProfessionalsHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		professionals, err := svc.ListProfessionals(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"professionals": professionals})
	}
}

// AddOfferingHandler publishes a bookable service. Staff only.
func AddOfferingHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ServiceOffering
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		input.ClinicID = c.Param("id")
		created, err := svc.AddOffering(c.Request.Context(), actorRole(c), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListOfferingsHandler lists a clinic's services; "?active=true" filters to
// bookable ones.
func ListOfferingsHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly, _ := strconv.ParseBool(c.Query("active"))
		offerings, err := svc.ListOfferings(c.Request.Context(), c.Param("id"), activeOnly)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"offerings": offerings})
	}
}

// SetOfferingActiveHandler toggles an offering's bookability. Staff only.
// Existing reservations are untouched.
func SetOfferingActiveHandler(svc clinicSvc.ClinicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Active bool `json:"active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if err := svc.SetOfferingActive(c.Request.Context(), actorRole(c), c.Param("offeringId"), input.Active); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}
