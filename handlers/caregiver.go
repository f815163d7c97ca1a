package handlers

import (
	"net/http"

	"cliniva/models"
	"cliniva/services/delegation"

	"github.com/gin-gonic/gin"
)

// GrantCaregiverLinkHandler creates a caregiver-patient link. Only the patient
// themselves or clinic staff may create one.
func GrantCaregiverLinkHandler(svc delegation.DelegationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CaregiverID      string                      `json:"caregiverId"`
			PatientID        string                      `json:"patientId"`
			RelationshipType string                      `json:"relationshipType"`
			Permissions      models.CaregiverPermissions `json:"permissions"`
			AuthDocRef       string                      `json:"authDocRef"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		actor := actorID(c)
		if actor != input.PatientID && actorRole(c) != models.RoleStaff {
			respondError(c, &models.ForbiddenError{ActorID: actor, Action: "grantLink"})
			return
		}

		link, err := svc.GrantLink(c.Request.Context(), delegation.GrantLinkRequest{
			CaregiverID:      input.CaregiverID,
			PatientID:        input.PatientID,
			RelationshipType: input.RelationshipType,
			Permissions:      input.Permissions,
			AuthDocRef:       input.AuthDocRef,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"linkId": link.ID})
	}
}

// RevokeCaregiverLinkHandler removes a link.
func RevokeCaregiverLinkHandler(svc delegation.DelegationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RevokeLink(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListCaregiverLinksHandler lists a patient's caregiver links.
func ListCaregiverLinksHandler(svc delegation.DelegationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := svc.ListPatientLinks(c.Request.Context(), c.Param("id"), actorID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"links": links})
	}
}
