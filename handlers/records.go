package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	recordsSvc "cliniva/services/records"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadResultHandler accepts a multipart result document for a patient and
// stores it through the storage service.
func UploadResultHandler(svc recordsSvc.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a file is required", "details": err.Error()})
			return
		}
		title := c.PostForm("title")

		tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload", "details": err.Error()})
			return
		}
		defer os.Remove(tmpPath)

		record, err := svc.UploadResult(c.Request.Context(), recordsSvc.UploadResultRequest{
			ActorID:       actorID(c),
			PatientID:     c.Param("id"),
			ClinicID:      c.PostForm("clinicId"),
			Title:         title,
			LocalFilePath: tmpPath,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, record)
	}
}

// ListResultsHandler returns a patient's uploaded result documents.
func ListResultsHandler(svc recordsSvc.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListResults(c.Request.Context(), actorID(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}

// ResultDownloadURLHandler issues a signed, short-lived download URL for one
// of the patient's documents.
func ResultDownloadURLHandler(svc recordsSvc.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileRef := c.Query("fileRef")
		if fileRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fileRef is required"})
			return
		}
		url, err := svc.ResultDownloadURL(c.Request.Context(), actorID(c), c.Param("id"), fileRef)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
