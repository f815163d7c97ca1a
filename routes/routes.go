package routes

import (
	"net/http"
	"time"

	"cliniva/handlers"
	"cliniva/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers registration and login endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/register", hb.RegisterAccountHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterAvailabilityRoutes registers slot lookup and calendar management.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.GetAvailabilityHandler)
		api.GET("/week/:professionalId", hb.GetWeekAvailabilityHandler)
		api.PUT("/week", middleware.RequireStaff(), hb.SaveWeekAvailabilityHandler)
	}
}

// RegisterReservationRoutes registers the one-shot reservation endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateReservationHandler)
		api.DELETE("/:id", hb.ReleaseReservationHandler)
	}
}

// RegisterBookingRoutes sets up the guided booking session endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("/session", hb.StartBookingSessionHandler)
		bookingGroup.PUT("/session/:sessionID/slot", hb.SelectSlotHandler)
		bookingGroup.PUT("/session/:sessionID/patient-info", hb.SubmitPatientInfoHandler)
		bookingGroup.POST("/session/:sessionID/confirm", hb.ConfirmBookingHandler)
		bookingGroup.DELETE("/session/:sessionID", hb.CancelBookingSessionHandler)
	}
}

// RegisterCaregiverRoutes registers caregiver-patient link management.
func RegisterCaregiverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/caregiver-links")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.GrantCaregiverLinkHandler)
		api.DELETE("/:id", hb.RevokeCaregiverLinkHandler)
	}
}

// RegisterPatientRoutes registers per-patient reads: reservation history,
// caregiver links and uploaded result documents.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id/reservations", hb.ListPatientReservationsHandler)
		api.GET("/:id/caregiver-links", hb.ListCaregiverLinksHandler)
		api.POST("/:id/results", hb.UploadResultHandler)
		api.GET("/:id/results", hb.ListResultsHandler)
		api.GET("/:id/results/download", hb.ResultDownloadURLHandler)
	}
}

// RegisterClinicRoutes sets up clinic administration endpoints.
func RegisterClinicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clinics")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:id", hb.GetClinicHandler)
		api.GET("/:id/professionals", hb.ListProfessionalsHandler)
		api.GET("/:id/offerings", hb.ListOfferingsHandler)

		staff := api.Group("")
		staff.Use(middleware.RequireStaff())
		staff.POST("", hb.CreateClinicHandler)
		staff.POST("/:id/professionals", hb.AddProfessionalHandler)
		staff.POST("/:id/offerings", hb.AddOfferingHandler)
		staff.PATCH("/:id/offerings/:offeringId", hb.SetOfferingActiveHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Cliniva"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAccountRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCaregiverRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterClinicRoutes(r, hb)
}
