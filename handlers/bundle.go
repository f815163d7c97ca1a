package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so routes can be
// registered from a single place.
type HandlerBundle struct {
	// Account endpoints
	RegisterAccountHandler gin.HandlerFunc
	LoginHandler           gin.HandlerFunc

	// Availability endpoints
	GetAvailabilityHandler      gin.HandlerFunc
	SaveWeekAvailabilityHandler gin.HandlerFunc
	GetWeekAvailabilityHandler  gin.HandlerFunc

	// Reservation endpoints
	CreateReservationHandler       gin.HandlerFunc
	ReleaseReservationHandler      gin.HandlerFunc
	ListPatientReservationsHandler gin.HandlerFunc

	// Booking session endpoints
	StartBookingSessionHandler  gin.HandlerFunc
	SelectSlotHandler           gin.HandlerFunc
	SubmitPatientInfoHandler    gin.HandlerFunc
	ConfirmBookingHandler       gin.HandlerFunc
	CancelBookingSessionHandler gin.HandlerFunc

	// Caregiver link endpoints
	GrantCaregiverLinkHandler  gin.HandlerFunc
	RevokeCaregiverLinkHandler gin.HandlerFunc
	ListCaregiverLinksHandler  gin.HandlerFunc

	// Clinic administration endpoints
	CreateClinicHandler      gin.HandlerFunc
	GetClinicHandler         gin.HandlerFunc
	AddProfessionalHandler   gin.HandlerFunc
	ListProfessionalsHandler gin.HandlerFunc
	AddOfferingHandler       gin.HandlerFunc
	ListOfferingsHandler     gin.HandlerFunc
	SetOfferingActiveHandler gin.HandlerFunc

	// Patient record endpoints
	UploadResultHandler      gin.HandlerFunc
	ListResultsHandler       gin.HandlerFunc
	ResultDownloadURLHandler gin.HandlerFunc
}
