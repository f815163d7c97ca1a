package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"cliniva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReservationRepo is an in-memory stand-in for the Mongo ledger. Its
// InsertIfFree re-checks overlap under its own lock, mirroring the
// transactional backstop.
type fakeReservationRepo struct {
	mu    sync.Mutex
	items map[string]models.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: make(map[string]models.Reservation)}
}

func (f *fakeReservationRepo) InsertIfFree(ctx context.Context, r models.Reservation, now time.Time, holdTTL time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ProfessionalID != r.ProfessionalID || existing.Date != r.Date {
			continue
		}
		if existing.Blocks(now, holdTTL) && existing.Overlaps(r.Start, r.End()) {
			return &models.ConflictError{ProfessionalID: r.ProfessionalID, Date: r.Date, Start: r.Start}
		}
	}
	f.items[r.ID] = r
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "reservation", ID: id}
	}
	return &r, nil
}

func (f *fakeReservationRepo) ListBlockingForDay(ctx context.Context, professionalID, date string, now time.Time, holdTTL time.Duration) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.items {
		if r.ProfessionalID == professionalID && r.Date == date && r.Blocks(now, holdTTL) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.items {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return &models.NotFoundError{Resource: "reservation", ID: id}
	}
	for _, s := range from {
		if r.Status == s {
			r.Status = to
			r.UpdatedAt = time.Now()
			f.items[id] = r
			return nil
		}
	}
	return &models.NotFoundError{Resource: "reservation", ID: id}
}

func (f *fakeReservationRepo) CancelExpiredHold(ctx context.Context, id string, cutoff time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if ok && r.Status == models.ReservationHeld && r.HeldAt.Before(cutoff) {
		r.Status = models.ReservationCancelled
		f.items[id] = r
	}
	return nil
}

func (f *fakeReservationRepo) EnsureIndexes() error { return nil }

// authorizerFunc adapts a function to the Authorizer interface.
type authorizerFunc func(ctx context.Context, actorID, patientID, clinicID, action string) error

func (f authorizerFunc) Authorize(ctx context.Context, actorID, patientID, clinicID, action string) error {
	return f(ctx, actorID, patientID, clinicID, action)
}

func allowAll(context.Context, string, string, string, string) error { return nil }

func newTestEngine(repo *fakeReservationRepo, auth authorizerFunc, now time.Time) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Reservations: repo,
		Auth:         auth,
		Cfg:          slotCfg(),
		Now:          func() time.Time { return now },
	}
}

func reserveReq(start int) ReserveRequest {
	return ReserveRequest{
		ClinicID:        "clinic-1",
		ProfessionalID:  "prof-1",
		ServiceID:       "svc-1",
		Date:            monday,
		Start:           start,
		DurationMinutes: 30,
		PatientID:       "patient-1",
		ActorID:         "patient-1",
	}
}

func TestTryReserveConcurrentSingleWinner(t *testing.T) {
	repo := newFakeReservationRepo()
	engine := newTestEngine(repo, allowAll, time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local))

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.TryReserve(context.Background(), reserveReq(540))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var conflict *models.ConflictError
		assert.ErrorAs(t, err, &conflict)
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, repo.items, 1)
}

func TestTryReserveAdjacentIntervalsDoNotConflict(t *testing.T) {
	repo := newFakeReservationRepo()
	engine := newTestEngine(repo, allowAll, time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local))

	_, err := engine.TryReserve(context.Background(), reserveReq(540))
	require.NoError(t, err)

	// [09:30, 10:00) shares only the boundary with [09:00, 09:30).
	_, err = engine.TryReserve(context.Background(), reserveReq(570))
	assert.NoError(t, err)

	// [09:15, 09:45) genuinely overlaps.
	_, err = engine.TryReserve(context.Background(), reserveReq(555))
	var conflict *models.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestTryReserveIgnoresExpiredHold(t *testing.T) {
	now := time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local)
	repo := newFakeReservationRepo()
	repo.items["stale"] = models.Reservation{
		ID:              "stale",
		ProfessionalID:  "prof-1",
		Date:            monday,
		Start:           540,
		DurationMinutes: 30,
		Status:          models.ReservationHeld,
		HeldAt:          now.Add(-30 * time.Minute),
	}
	engine := newTestEngine(repo, allowAll, now)

	_, err := engine.TryReserve(context.Background(), reserveReq(540))
	assert.NoError(t, err)
}

func TestTryReserveValidation(t *testing.T) {
	engine := newTestEngine(newFakeReservationRepo(), allowAll, time.Now())

	req := reserveReq(540)
	req.Date = "09/07/2026"
	_, err := engine.TryReserve(context.Background(), req)
	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)

	req = reserveReq(540)
	req.DurationMinutes = 0
	_, err = engine.TryReserve(context.Background(), req)
	assert.ErrorAs(t, err, &validation)

	req = reserveReq(-15)
	_, err = engine.TryReserve(context.Background(), req)
	assert.ErrorAs(t, err, &validation)
}

func TestConfirmPromotesLiveHold(t *testing.T) {
	now := time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local)
	repo := newFakeReservationRepo()
	engine := newTestEngine(repo, allowAll, now)

	r, err := engine.TryReserve(context.Background(), reserveReq(540))
	require.NoError(t, err)

	require.NoError(t, engine.Confirm(context.Background(), r.ID))
	got, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, got.Status)
}

func TestConfirmExpiredHoldIsGone(t *testing.T) {
	now := time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local)
	repo := newFakeReservationRepo()
	repo.items["old"] = models.Reservation{
		ID:              "old",
		ProfessionalID:  "prof-1",
		Date:            monday,
		Start:           540,
		DurationMinutes: 30,
		Status:          models.ReservationHeld,
		HeldAt:          now.Add(-30 * time.Minute),
	}
	engine := newTestEngine(repo, allowAll, now)

	err := engine.Confirm(context.Background(), "old")
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)

	got, err := repo.GetByID(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, got.Status)
}

func TestReleasePermissions(t *testing.T) {
	now := time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local)
	repo := newFakeReservationRepo()
	auth := authorizerFunc(func(ctx context.Context, actorID, patientID, clinicID, action string) error {
		if actorID == patientID {
			return nil
		}
		return &models.ForbiddenError{ActorID: actorID, Action: action}
	})
	engine := newTestEngine(repo, auth, now)

	r, err := engine.TryReserve(context.Background(), reserveReq(540))
	require.NoError(t, err)
	require.NoError(t, engine.Confirm(context.Background(), r.ID))

	var forbidden *models.ForbiddenError
	err = engine.Release(context.Background(), r.ID, "stranger")
	assert.ErrorAs(t, err, &forbidden)

	require.NoError(t, engine.Release(context.Background(), r.ID, "patient-1"))
	got, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, got.Status)

	// Releasing again reports the reservation as gone.
	var notFound *models.NotFoundError
	err = engine.Release(context.Background(), r.ID, "patient-1")
	assert.ErrorAs(t, err, &notFound)
}

func TestReleaseAuthorizesAgainstReservationClinic(t *testing.T) {
	now := time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local)
	repo := newFakeReservationRepo()
	// Mimics the delegation rules for a staff account homed at clinic-b.
	var gotClinic string
	auth := authorizerFunc(func(ctx context.Context, actorID, patientID, clinicID, action string) error {
		gotClinic = clinicID
		if actorID == patientID || clinicID == "clinic-b" {
			return nil
		}
		return &models.ForbiddenError{ActorID: actorID, Action: action}
	})
	engine := newTestEngine(repo, auth, now)

	r, err := engine.TryReserve(context.Background(), reserveReq(540)) // clinic-1
	require.NoError(t, err)
	require.NoError(t, engine.Confirm(context.Background(), r.ID))

	var forbidden *models.ForbiddenError
	err = engine.Release(context.Background(), r.ID, "staff-b")
	assert.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "clinic-1", gotClinic)

	got, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, got.Status)
}

func TestExpireHoldLeavesConfirmedAlone(t *testing.T) {
	now := time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local)
	repo := newFakeReservationRepo()
	engine := newTestEngine(repo, allowAll, now)

	r, err := engine.TryReserve(context.Background(), reserveReq(540))
	require.NoError(t, err)
	require.NoError(t, engine.Confirm(context.Background(), r.ID))

	require.NoError(t, engine.ExpireHold(context.Background(), r.ID))
	got, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, got.Status)
}
