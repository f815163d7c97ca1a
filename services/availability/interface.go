package availability

import (
	"context"

	availabilityRepo "cliniva/database/repository/availability"
	clinicRepo "cliniva/database/repository/clinic"
	"cliniva/models"
)

// CalendarService owns a professional's recurring weekly open-hours
// configuration. Validation is purely local; saving replaces the whole week.
type CalendarService interface {
	SaveWeek(ctx context.Context, clinicID, professionalID string, windows []models.AvailabilityWindow) error
	GetWeek(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error)
	IsOpenAt(ctx context.Context, professionalID string, weekday, minuteOfDay int) (bool, error)
}

// Bounds are the platform-wide calendar constraints applied during validation.
type Bounds struct {
	// MinBlockMinutes is the shortest acceptable block and service duration.
	MinBlockMinutes int
	// FloorMinute and CeilMinute bound the bookable day, e.g. 360 and 1320
	// for 06:00-22:00.
	FloorMinute int
	CeilMinute  int
}

// DefaultCalendarService implements CalendarService.
type DefaultCalendarService struct {
	Repo    availabilityRepo.Repository
	Clinics clinicRepo.Repository
	Bounds  Bounds
}
