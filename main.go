// File: cliniva/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliniva/config"
	"cliniva/cron"
	"cliniva/database"
	accountRepoPkg "cliniva/database/repository/account"
	availabilityRepoPkg "cliniva/database/repository/availability"
	caregiverRepoPkg "cliniva/database/repository/caregiver"
	clinicRepoPkg "cliniva/database/repository/clinic"
	recordsRepoPkg "cliniva/database/repository/records"
	reservationRepoPkg "cliniva/database/repository/reservation"
	"cliniva/handlers"
	"cliniva/middleware"
	"cliniva/routes"
	accountSvc "cliniva/services/account"
	availabilitySvc "cliniva/services/availability"
	"cliniva/services/booking"
	clinicSvc "cliniva/services/clinic"
	"cliniva/services/delegation"
	recordsSvc "cliniva/services/records"
	"cliniva/services/scheduling"
	"cliniva/services/storage"
	"cliniva/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	accountRepo := accountRepoPkg.NewMongoAccountRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	caregiverRepo := caregiverRepoPkg.NewMongoCaregiverRepo()
	clinicRepo := clinicRepoPkg.NewMongoClinicRepo()
	recordsRepo := recordsRepoPkg.NewMongoRecordRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()

	for _, bootstrap := range []func() error{
		accountRepo.EnsureIndexes,
		availabilityRepo.EnsureIndexes,
		caregiverRepo.EnsureIndexes,
		reservationRepo.EnsureIndexes,
	} {
		if err := bootstrap(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Services.
	delegationService := &delegation.DefaultDelegationService{
		Links:    caregiverRepo,
		Accounts: accountRepo,
	}

	calendarService := &availabilitySvc.DefaultCalendarService{
		Repo:    availabilityRepo,
		Clinics: clinicRepo,
		Bounds: availabilitySvc.Bounds{
			MinBlockMinutes: config.AppConfig.MinServiceDuration,
			FloorMinute:     config.AppConfig.CalendarFloorMinute,
			CeilMinute:      config.AppConfig.CalendarCeilMinute,
		},
	}

	expiryScheduler := cron.NewHoldExpiryScheduler()
	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		Reservations: reservationRepo,
		Availability: availabilityRepo,
		Clinics:      clinicRepo,
		Auth:         delegationService,
		Expiry:       expiryScheduler,
		Cache:        utils.GetCacheClient(),
		Cfg: scheduling.SlotConfig{
			StepMinutes: config.AppConfig.SlotStepMinutes,
			MinLead:     time.Duration(config.AppConfig.MinLeadTimeMinutes) * time.Minute,
			HoldTTL:     time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
		},
	}
	cron.InitExpiryWorker(schedulingEngine)

	sessionStore := &booking.RedisSessionStore{
		Client: utils.GetSessionCacheClient(),
		TTL:    time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
	}
	bookingService := &booking.DefaultBookingSessionService{
		Sessions: sessionStore,
		Engine:   schedulingEngine,
		Auth:     delegationService,
		Clinics:  clinicRepo,
	}

	accountService := &accountSvc.DefaultAccountService{Repo: accountRepo}
	clinicService := &clinicSvc.DefaultClinicService{Repo: clinicRepo}

	storageService := storage.NewStorageService(cld,
		config.AppConfig.CloudinaryCloudName, config.AppConfig.CloudinaryAPISecret)
	recordService := &recordsSvc.DefaultRecordService{
		Repo:    recordsRepo,
		Storage: storageService,
		Auth:    delegationService,
		URLTTL:  15 * time.Minute,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Account endpoints.
		RegisterAccountHandler: handlers.RegisterAccountHandler(accountService),
		LoginHandler:           handlers.LoginHandler(accountService),

		// Availability endpoints.
		GetAvailabilityHandler:      handlers.GetAvailabilityHandler(schedulingEngine),
		SaveWeekAvailabilityHandler: handlers.SaveWeekAvailabilityHandler(calendarService),
		GetWeekAvailabilityHandler:  handlers.GetWeekAvailabilityHandler(calendarService),

		// Reservation endpoints.
		CreateReservationHandler:       handlers.CreateReservationHandler(schedulingEngine, delegationService, clinicRepo),
		ReleaseReservationHandler:      handlers.ReleaseReservationHandler(schedulingEngine),
		ListPatientReservationsHandler: handlers.ListPatientReservationsHandler(schedulingEngine, delegationService),

		// Booking session endpoints.
		StartBookingSessionHandler:  handlers.StartBookingSessionHandler(bookingService),
		SelectSlotHandler:           handlers.SelectSlotHandler(bookingService),
		SubmitPatientInfoHandler:    handlers.SubmitPatientInfoHandler(bookingService),
		ConfirmBookingHandler:       handlers.ConfirmBookingHandler(bookingService),
		CancelBookingSessionHandler: handlers.CancelBookingSessionHandler(bookingService),

		// Caregiver link endpoints.
		GrantCaregiverLinkHandler:  handlers.GrantCaregiverLinkHandler(delegationService),
		RevokeCaregiverLinkHandler: handlers.RevokeCaregiverLinkHandler(delegationService),
		ListCaregiverLinksHandler:  handlers.ListCaregiverLinksHandler(delegationService),

		// Clinic administration endpoints.
		CreateClinicHandler:      handlers.CreateClinicHandler(clinicService),
		GetClinicHandler:         handlers.GetClinicHandler(clinicService),
		AddProfessionalHandler:   handlers.AddProfessionalHandler(clinicService),
		ListProfessionalsHandler: handlers.ListProfessionalsHandler(clinicService),
		AddOfferingHandler:       handlers.AddOfferingHandler(clinicService),
		ListOfferingsHandler:     handlers.ListOfferingsHandler(clinicService),
		SetOfferingActiveHandler: handlers.SetOfferingActiveHandler(clinicService),

		// Patient record endpoints.
		UploadResultHandler:      handlers.UploadResultHandler(recordService),
		ListResultsHandler:       handlers.ListResultsHandler(recordService),
		ResultDownloadURLHandler: handlers.ResultDownloadURLHandler(recordService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
