package availability

import (
	"context"
	"testing"

	"cliniva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBounds() Bounds {
	return Bounds{MinBlockMinutes: 15, FloorMinute: 360, CeilMinute: 1320}
}

func TestValidateWindow(t *testing.T) {
	cases := []struct {
		name    string
		window  models.AvailabilityWindow
		wantErr bool
	}{
		{
			name: "valid single block",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 480, End: 720},
			}},
		},
		{
			name: "valid multiple sorted blocks",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 480, End: 720},
				{Start: 840, End: 1080},
			}},
		},
		{
			name: "adjacent blocks allowed",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 480, End: 720},
				{Start: 720, End: 840},
			}},
		},
		{
			name:    "weekday out of range",
			window:  models.AvailabilityWindow{Weekday: 7},
			wantErr: true,
		},
		{
			name: "inverted block",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 720, End: 480},
			}},
			wantErr: true,
		},
		{
			name: "empty block",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 480, End: 480},
			}},
			wantErr: true,
		},
		{
			name: "block below minimum duration",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 480, End: 490},
			}},
			wantErr: true,
		},
		{
			name: "block before the floor",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 300, End: 420},
			}},
			wantErr: true,
		},
		{
			name: "block past the ceiling",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 1200, End: 1380},
			}},
			wantErr: true,
		},
		{
			name: "overlapping blocks",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 480, End: 720},
				{Start: 700, End: 840},
			}},
			wantErr: true,
		},
		{
			name: "out of order blocks",
			window: models.AvailabilityWindow{Weekday: 1, Blocks: []models.TimeBlock{
				{Start: 840, End: 1080},
				{Start: 480, End: 720},
			}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.window, testBounds())
			if tc.wantErr {
				var validation *models.ValidationError
				assert.ErrorAs(t, err, &validation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type fakeAvailabilityRepo struct {
	weeks map[string][]models.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) ReplaceWeek(ctx context.Context, clinicID, professionalID string, windows []models.AvailabilityWindow) error {
	f.weeks[professionalID] = windows
	return nil
}

func (f *fakeAvailabilityRepo) GetWindow(ctx context.Context, professionalID string, weekday int) (*models.AvailabilityWindow, error) {
	for _, w := range f.weeks[professionalID] {
		if w.Weekday == weekday {
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) GetWeek(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error) {
	return f.weeks[professionalID], nil
}

func (f *fakeAvailabilityRepo) EnsureIndexes() error { return nil }

type fakeClinicRepo struct {
	clinic models.Clinic
}

func (f *fakeClinicRepo) CreateClinic(ctx context.Context, c models.Clinic) (*models.Clinic, error) {
	return &c, nil
}

func (f *fakeClinicRepo) GetClinic(ctx context.Context, id string) (*models.Clinic, error) {
	if id != f.clinic.ID {
		return nil, &models.NotFoundError{Resource: "clinic", ID: id}
	}
	return &f.clinic, nil
}

func (f *fakeClinicRepo) CreateProfessional(ctx context.Context, p models.Professional) (*models.Professional, error) {
	return &p, nil
}

func (f *fakeClinicRepo) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	return nil, &models.NotFoundError{Resource: "professional", ID: id}
}

func (f *fakeClinicRepo) ListProfessionals(ctx context.Context, clinicID string) ([]models.Professional, error) {
	return nil, nil
}

func (f *fakeClinicRepo) CreateOffering(ctx context.Context, o models.ServiceOffering) (*models.ServiceOffering, error) {
	return &o, nil
}

func (f *fakeClinicRepo) GetOffering(ctx context.Context, id string) (*models.ServiceOffering, error) {
	return nil, &models.NotFoundError{Resource: "serviceOffering", ID: id}
}

func (f *fakeClinicRepo) ListOfferings(ctx context.Context, clinicID string, activeOnly bool) ([]models.ServiceOffering, error) {
	return nil, nil
}

func (f *fakeClinicRepo) SetOfferingActive(ctx context.Context, id string, active bool) error {
	return nil
}

func newTestCalendar(minDuration int) (*DefaultCalendarService, *fakeAvailabilityRepo) {
	repo := &fakeAvailabilityRepo{weeks: make(map[string][]models.AvailabilityWindow)}
	clinics := &fakeClinicRepo{clinic: models.Clinic{
		ID:                        "clinic-1",
		Name:                      "Test Clinic",
		MinServiceDurationMinutes: minDuration,
		Active:                    true,
	}}
	return &DefaultCalendarService{Repo: repo, Clinics: clinics, Bounds: testBounds()}, repo
}

func TestSaveWeekReplacesStoredWindows(t *testing.T) {
	svc, repo := newTestCalendar(0)
	windows := []models.AvailabilityWindow{
		{Weekday: 1, Active: true, Blocks: []models.TimeBlock{{Start: 480, End: 720}}},
		{Weekday: 3, Active: true, Blocks: []models.TimeBlock{{Start: 840, End: 1080}}},
	}
	require.NoError(t, svc.SaveWeek(context.Background(), "clinic-1", "prof-1", windows))
	assert.Len(t, repo.weeks["prof-1"], 2)

	// A second save replaces the week wholesale.
	require.NoError(t, svc.SaveWeek(context.Background(), "clinic-1", "prof-1", windows[:1]))
	assert.Len(t, repo.weeks["prof-1"], 1)
}

func TestSaveWeekRejectsDuplicateWeekday(t *testing.T) {
	svc, _ := newTestCalendar(0)
	windows := []models.AvailabilityWindow{
		{Weekday: 1, Active: true, Blocks: []models.TimeBlock{{Start: 480, End: 720}}},
		{Weekday: 1, Active: true, Blocks: []models.TimeBlock{{Start: 840, End: 1080}}},
	}
	var validation *models.ValidationError
	err := svc.SaveWeek(context.Background(), "clinic-1", "prof-1", windows)
	assert.ErrorAs(t, err, &validation)
}

func TestSaveWeekAppliesClinicMinimum(t *testing.T) {
	// Clinic requires 60-minute blocks at minimum.
	svc, _ := newTestCalendar(60)
	windows := []models.AvailabilityWindow{
		{Weekday: 1, Active: true, Blocks: []models.TimeBlock{{Start: 480, End: 510}}},
	}
	var validation *models.ValidationError
	err := svc.SaveWeek(context.Background(), "clinic-1", "prof-1", windows)
	assert.ErrorAs(t, err, &validation)
}

func TestIsOpenAt(t *testing.T) {
	svc, repo := newTestCalendar(0)
	repo.weeks["prof-1"] = []models.AvailabilityWindow{
		{Weekday: 1, Active: true, Blocks: []models.TimeBlock{{Start: 480, End: 720}}},
		{Weekday: 2, Active: false, Blocks: []models.TimeBlock{{Start: 480, End: 720}}},
	}

	open, err := svc.IsOpenAt(context.Background(), "prof-1", 1, 500)
	require.NoError(t, err)
	assert.True(t, open)

	open, err = svc.IsOpenAt(context.Background(), "prof-1", 1, 720) // exclusive end
	require.NoError(t, err)
	assert.False(t, open)

	open, err = svc.IsOpenAt(context.Background(), "prof-1", 2, 500) // inactive
	require.NoError(t, err)
	assert.False(t, open)

	open, err = svc.IsOpenAt(context.Background(), "prof-1", 5, 500) // no window
	require.NoError(t, err)
	assert.False(t, open)
}
