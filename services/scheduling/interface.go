package scheduling

import (
	"context"
	"sync"
	"time"

	availabilityRepo "cliniva/database/repository/availability"
	clinicRepo "cliniva/database/repository/clinic"
	reservationRepo "cliniva/database/repository/reservation"
	"cliniva/models"

	"github.com/go-redis/redis/v8"
)

// Engine exposes slot computation and the reservation ledger. All writes to
// the reservation set of a (professional, date) pair go through TryReserve,
// Confirm and Release; slot reads are advisory and re-validated at reserve
// time.
type Engine interface {
	AvailableStarts(ctx context.Context, professionalID, serviceID, date string) ([]int, error)
	TryReserve(ctx context.Context, req ReserveRequest) (*models.Reservation, error)
	Confirm(ctx context.Context, reservationID string) error
	Release(ctx context.Context, reservationID, actorID string) error
	ExpireHold(ctx context.Context, reservationID string) error
	ListPatientReservations(ctx context.Context, patientID string) ([]models.Reservation, error)
}

// Authorizer answers "may this actor perform this action for this patient".
// clinicID is the clinic the action concerns; staff grants are scoped to it,
// and an empty clinicID means the context is purely patient-scoped. Satisfied
// by the delegation service.
type Authorizer interface {
	Authorize(ctx context.Context, actorID, patientID, clinicID, action string) error
}

// ExpiryScheduler schedules the garbage collection of an abandoned hold.
// Satisfied by the asynq hold-expiry scheduler.
type ExpiryScheduler interface {
	ScheduleExpiry(reservationID string, delay time.Duration) error
}

// ReserveRequest carries everything TryReserve needs to create a hold.
type ReserveRequest struct {
	ClinicID        string
	ProfessionalID  string
	ServiceID       string
	Date            string
	Start           int
	DurationMinutes int
	PatientID       string
	ActorID         string
	PatientInfo     *models.PatientInfo
}

// DefaultSchedulingEngine implements Engine. The keyed mutex map serializes
// in-process reservations per (professional, date); the repository's
// transactional insert is the cross-process backstop.
type DefaultSchedulingEngine struct {
	Reservations reservationRepo.Repository
	Availability availabilityRepo.Repository
	Clinics      clinicRepo.Repository
	Auth         Authorizer
	Expiry       ExpiryScheduler
	Cache        *redis.Client // optional short-TTL cache for slot lists
	Cfg          SlotConfig
	Now          func() time.Time // overridable in tests

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (e *DefaultSchedulingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// lockFor returns the mutex guarding one (professional, date) key, creating
// it on first use.
func (e *DefaultSchedulingEngine) lockFor(professionalID, date string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.locks == nil {
		e.locks = make(map[string]*sync.Mutex)
	}
	key := professionalID + "|" + date
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}
