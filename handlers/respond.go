package handlers

import (
	"errors"
	"net/http"

	"cliniva/models"
	"cliniva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the domain error taxonomy onto HTTP status codes. Anything
// outside the taxonomy is a 500 and gets logged.
func respondError(c *gin.Context, err error) {
	var (
		validation *models.ValidationError
		forbidden  *models.ForbiddenError
		conflict   *models.ConflictError
		notFound   *models.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		utils.GetLogger().Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func actorID(c *gin.Context) string {
	return c.GetString("actorID")
}

func actorRole(c *gin.Context) string {
	return c.GetString("actorRole")
}
