package handlers

import (
	"net/http"

	"cliniva/services/account"

	"github.com/gin-gonic/gin"
)

// RegisterAccountHandler creates a platform account.
func RegisterAccountHandler(svc account.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
			Password string `json:"password"`
			Role     string `json:"role"`
			ClinicID string `json:"clinicId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		created, err := svc.Register(c.Request.Context(), account.RegisterRequest{
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Password: input.Password,
			Role:     input.Role,
			ClinicID: input.ClinicID,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"accountId": created.ID, "role": created.Role})
	}
}

// LoginHandler authenticates and returns a bearer token.
func LoginHandler(svc account.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		acc, token, err := svc.Authenticate(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"accountId": acc.ID,
			"role":      acc.Role,
			"token":     token,
		})
	}
}
