package booking

import (
	"context"
	"testing"
	"time"

	"cliniva/models"
	"cliniva/services/scheduling"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	starts          []int
	reserveErr      error
	confirmErr      error
	tryReserveCalls int
	lastReserve     scheduling.ReserveRequest
}

func (f *fakeEngine) AvailableStarts(ctx context.Context, professionalID, serviceID, date string) ([]int, error) {
	return f.starts, nil
}

func (f *fakeEngine) TryReserve(ctx context.Context, req scheduling.ReserveRequest) (*models.Reservation, error) {
	f.tryReserveCalls++
	f.lastReserve = req
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	return &models.Reservation{
		ID:              "res-1",
		ProfessionalID:  req.ProfessionalID,
		Date:            req.Date,
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		Status:          models.ReservationHeld,
	}, nil
}

func (f *fakeEngine) Confirm(ctx context.Context, reservationID string) error { return f.confirmErr }

func (f *fakeEngine) Release(ctx context.Context, reservationID, actorID string) error { return nil }

func (f *fakeEngine) ExpireHold(ctx context.Context, reservationID string) error { return nil }

func (f *fakeEngine) ListPatientReservations(ctx context.Context, patientID string) ([]models.Reservation, error) {
	return nil, nil
}

type authorizerFunc func(ctx context.Context, actorID, patientID, clinicID, action string) error

func (f authorizerFunc) Authorize(ctx context.Context, actorID, patientID, clinicID, action string) error {
	return f(ctx, actorID, patientID, clinicID, action)
}

type fakeClinicRepo struct {
	offering     models.ServiceOffering
	professional models.Professional
}

func (f *fakeClinicRepo) CreateClinic(ctx context.Context, c models.Clinic) (*models.Clinic, error) {
	return &c, nil
}

func (f *fakeClinicRepo) GetClinic(ctx context.Context, id string) (*models.Clinic, error) {
	return nil, &models.NotFoundError{Resource: "clinic", ID: id}
}

func (f *fakeClinicRepo) CreateProfessional(ctx context.Context, p models.Professional) (*models.Professional, error) {
	return &p, nil
}

func (f *fakeClinicRepo) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	if id != f.professional.ID {
		return nil, &models.NotFoundError{Resource: "professional", ID: id}
	}
	return &f.professional, nil
}

func (f *fakeClinicRepo) ListProfessionals(ctx context.Context, clinicID string) ([]models.Professional, error) {
	return nil, nil
}

func (f *fakeClinicRepo) CreateOffering(ctx context.Context, o models.ServiceOffering) (*models.ServiceOffering, error) {
	return &o, nil
}

func (f *fakeClinicRepo) GetOffering(ctx context.Context, id string) (*models.ServiceOffering, error) {
	if id != f.offering.ID {
		return nil, &models.NotFoundError{Resource: "serviceOffering", ID: id}
	}
	return &f.offering, nil
}

func (f *fakeClinicRepo) ListOfferings(ctx context.Context, clinicID string, activeOnly bool) ([]models.ServiceOffering, error) {
	return nil, nil
}

func (f *fakeClinicRepo) SetOfferingActive(ctx context.Context, id string, active bool) error {
	return nil
}

func newTestWorkflow(t *testing.T, engine *fakeEngine, auth authorizerFunc) (*DefaultBookingSessionService, *RedisSessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := &RedisSessionStore{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		TTL:    10 * time.Minute,
	}
	clinics := &fakeClinicRepo{
		offering: models.ServiceOffering{
			ID:              "svc-1",
			ClinicID:        "clinic-1",
			Name:            "consultation",
			DurationMinutes: 30,
			Active:          true,
		},
		professional: models.Professional{
			ID:       "prof-1",
			ClinicID: "clinic-1",
			Active:   true,
		},
	}
	svc := &DefaultBookingSessionService{
		Sessions: store,
		Engine:   engine,
		Auth:     auth,
		Clinics:  clinics,
	}
	return svc, store
}

func allow(context.Context, string, string, string, string) error { return nil }

func startRequest() StartSessionRequest {
	return StartSessionRequest{
		ActorID:        "patient-1",
		PatientID:      "patient-1",
		ProfessionalID: "prof-1",
		ServiceID:      "svc-1",
	}
}

func TestStartSessionForbiddenActorCreatesNothing(t *testing.T) {
	engine := &fakeEngine{starts: []int{480, 510}}
	deny := authorizerFunc(func(ctx context.Context, actorID, patientID, clinicID, action string) error {
		return &models.ForbiddenError{ActorID: actorID, Action: action}
	})
	svc, store := newTestWorkflow(t, engine, deny)

	req := startRequest()
	req.ActorID = "caregiver-1"
	_, err := svc.StartSession(context.Background(), req)

	var forbidden *models.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	// No slot work happened and no session state exists anywhere.
	assert.Zero(t, engine.tryReserveCalls)
	keys, err := store.Client.Keys(context.Background(), "*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStartSessionAuthorizesAgainstOfferingClinic(t *testing.T) {
	engine := &fakeEngine{starts: []int{480}}
	var gotClinic string
	capture := authorizerFunc(func(ctx context.Context, actorID, patientID, clinicID, action string) error {
		gotClinic = clinicID
		return nil
	})
	svc, _ := newTestWorkflow(t, engine, capture)

	_, err := svc.StartSession(context.Background(), startRequest())
	require.NoError(t, err)
	assert.Equal(t, "clinic-1", gotClinic)
}

func TestStartSessionRejectsInactiveOffering(t *testing.T) {
	engine := &fakeEngine{}
	svc, _ := newTestWorkflow(t, engine, allow)
	svc.Clinics.(*fakeClinicRepo).offering.Active = false

	var validation *models.ValidationError
	_, err := svc.StartSession(context.Background(), startRequest())
	assert.ErrorAs(t, err, &validation)
}

func TestWorkflowHappyPath(t *testing.T) {
	engine := &fakeEngine{starts: []int{480, 510, 570}}
	svc, store := newTestWorkflow(t, engine, allow)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StateSelectingSlot, session.State)
	assert.Equal(t, -1, session.SelectedStart)
	assert.Equal(t, 30, session.ServiceDuration)

	session, err = svc.SelectSlot(ctx, session.SessionID, "2026-09-07", 510)
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectingPatientInfo, session.State)
	assert.Equal(t, 510, session.SelectedStart)

	session, err = svc.SubmitPatientInfo(ctx, session.SessionID, models.PatientInfo{
		FullName:         "Ada Example",
		PreferredChannel: "phone",
		Phone:            "+3519000000",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirming, session.State)

	session, err = svc.ConfirmBooking(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateBooked, session.State)
	assert.Equal(t, "res-1", session.ReservationID)
	assert.Equal(t, 1, engine.tryReserveCalls)
	assert.Equal(t, 510, engine.lastReserve.Start)

	// Booked is terminal; the stored session is gone.
	var notFound *models.NotFoundError
	_, err = store.Get(ctx, session.SessionID)
	assert.ErrorAs(t, err, &notFound)
}

func TestWorkflowStepsCannotBeSkipped(t *testing.T) {
	engine := &fakeEngine{starts: []int{480}}
	svc, _ := newTestWorkflow(t, engine, allow)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)

	var validation *models.ValidationError
	_, err = svc.ConfirmBooking(ctx, session.SessionID)
	assert.ErrorAs(t, err, &validation)

	_, err = svc.SubmitPatientInfo(ctx, session.SessionID, models.PatientInfo{
		FullName: "Ada Example", PreferredChannel: "phone", Phone: "+3519000000",
	})
	assert.ErrorAs(t, err, &validation)
	assert.Zero(t, engine.tryReserveCalls)
}

func TestSelectSlotStaleChoiceReturnsFreshList(t *testing.T) {
	engine := &fakeEngine{starts: []int{480, 510}}
	svc, store := newTestWorkflow(t, engine, allow)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)

	// 600 is not in the allocator's output.
	returned, err := svc.SelectSlot(ctx, session.SessionID, "2026-09-07", 600)
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.NotNil(t, returned)
	assert.Equal(t, models.StateSelectingSlot, returned.State)
	assert.Equal(t, []int{480, 510}, returned.AvailableStarts)

	stored, err := store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateSelectingSlot, stored.State)
}

func TestConfirmConflictRecoversToSlotSelection(t *testing.T) {
	engine := &fakeEngine{starts: []int{480, 510, 570}}
	svc, store := newTestWorkflow(t, engine, allow)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)
	session, err = svc.SelectSlot(ctx, session.SessionID, "2026-09-07", 510)
	require.NoError(t, err)
	session, err = svc.SubmitPatientInfo(ctx, session.SessionID, models.PatientInfo{
		FullName: "Ada Example", PreferredChannel: "email", Email: "ada@example.com",
	})
	require.NoError(t, err)

	// The slot races away between selection and confirmation.
	engine.reserveErr = &models.ConflictError{ProfessionalID: "prof-1", Date: "2026-09-07", Start: 510}
	engine.starts = []int{480, 570}

	returned, err := svc.ConfirmBooking(ctx, session.SessionID)
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.NotNil(t, returned)
	assert.Equal(t, models.StateSelectingSlot, returned.State)
	assert.Equal(t, -1, returned.SelectedStart)
	assert.Equal(t, []int{480, 570}, returned.AvailableStarts)

	// The recovered session is persisted and the workflow can continue.
	stored, err := store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateSelectingSlot, stored.State)

	engine.reserveErr = nil
	returned, err = svc.SelectSlot(ctx, session.SessionID, "2026-09-07", 570)
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectingPatientInfo, returned.State)
}

func TestSubmitPatientInfoValidation(t *testing.T) {
	engine := &fakeEngine{starts: []int{480}}
	svc, _ := newTestWorkflow(t, engine, allow)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)
	session, err = svc.SelectSlot(ctx, session.SessionID, "2026-09-07", 480)
	require.NoError(t, err)

	var validation *models.ValidationError
	cases := []models.PatientInfo{
		{PreferredChannel: "phone", Phone: "+3519000000"},
		{FullName: "Ada Example", PreferredChannel: "phone"},
		{FullName: "Ada Example", PreferredChannel: "email"},
		{FullName: "Ada Example", PreferredChannel: "email", Email: "not-an-address"},
		{FullName: "Ada Example", PreferredChannel: "pigeon"},
	}
	for _, info := range cases {
		_, err := svc.SubmitPatientInfo(ctx, session.SessionID, info)
		assert.ErrorAs(t, err, &validation)
	}
}

func TestCancelSessionRemovesState(t *testing.T) {
	engine := &fakeEngine{starts: []int{480}}
	svc, store := newTestWorkflow(t, engine, allow)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CancelSession(ctx, session.SessionID))

	var notFound *models.NotFoundError
	_, err = store.Get(ctx, session.SessionID)
	assert.ErrorAs(t, err, &notFound)
}

func TestSessionStoreMissingSession(t *testing.T) {
	mr := miniredis.RunT(t)
	store := &RedisSessionStore{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		TTL:    time.Minute,
	}
	var notFound *models.NotFoundError
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorAs(t, err, &notFound)
}
