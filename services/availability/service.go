package availability

import (
	"context"
	"fmt"

	"cliniva/models"
	"cliniva/utils"

	"go.uber.org/zap"
)

// ValidateWindow checks one weekly window against the calendar bounds:
// blocks must be sorted, non-overlapping, no shorter than the minimum
// duration, and inside the global floor/ceiling.
func ValidateWindow(w models.AvailabilityWindow, bounds Bounds) error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return models.NewValidationError("weekday", fmt.Sprintf("weekday %d out of range", w.Weekday))
	}
	prevEnd := -1
	for i, block := range w.Blocks {
		if block.Start >= block.End {
			return models.NewValidationError("blocks",
				fmt.Sprintf("block %d is empty or inverted (%s-%s)", i,
					utils.FormatMinuteOfDay(block.Start), utils.FormatMinuteOfDay(block.End)))
		}
		if block.Duration() < bounds.MinBlockMinutes {
			return models.NewValidationError("blocks",
				fmt.Sprintf("block %d is shorter than the %d minute minimum", i, bounds.MinBlockMinutes))
		}
		if block.Start < bounds.FloorMinute || block.End > bounds.CeilMinute {
			return models.NewValidationError("blocks",
				fmt.Sprintf("block %d falls outside the bookable day (%s-%s)", i,
					utils.FormatMinuteOfDay(bounds.FloorMinute), utils.FormatMinuteOfDay(bounds.CeilMinute)))
		}
		if block.Start < prevEnd {
			return models.NewValidationError("blocks",
				fmt.Sprintf("block %d overlaps or is out of order with the previous block", i))
		}
		prevEnd = block.End
	}
	return nil
}

// SaveWeek validates every window against the clinic's minimum service
// duration and replaces the professional's stored week.
func (s *DefaultCalendarService) SaveWeek(ctx context.Context, clinicID, professionalID string, windows []models.AvailabilityWindow) error {
	bounds := s.Bounds
	clinic, err := s.Clinics.GetClinic(ctx, clinicID)
	if err != nil {
		return err
	}
	if clinic.MinServiceDurationMinutes > 0 {
		bounds.MinBlockMinutes = clinic.MinServiceDurationMinutes
	}

	seen := make(map[int]bool, len(windows))
	for _, w := range windows {
		if seen[w.Weekday] {
			return models.NewValidationError("weekday", fmt.Sprintf("duplicate window for weekday %d", w.Weekday))
		}
		seen[w.Weekday] = true
		if err := ValidateWindow(w, bounds); err != nil {
			return err
		}
	}

	if err := s.Repo.ReplaceWeek(ctx, clinicID, professionalID, windows); err != nil {
		return err
	}
	utils.GetLogger().Info("weekly availability saved",
		zap.String("clinicID", clinicID),
		zap.String("professionalID", professionalID),
		zap.Int("windows", len(windows)))
	return nil
}

func (s *DefaultCalendarService) GetWeek(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error) {
	return s.Repo.GetWeek(ctx, professionalID)
}

// IsOpenAt reports whether the professional's calendar is open at the given
// weekday and minute of day.
func (s *DefaultCalendarService) IsOpenAt(ctx context.Context, professionalID string, weekday, minuteOfDay int) (bool, error) {
	w, err := s.Repo.GetWindow(ctx, professionalID, weekday)
	if err != nil {
		return false, err
	}
	if w == nil || !w.Active {
		return false, nil
	}
	for _, block := range w.Blocks {
		if block.Contains(minuteOfDay) {
			return true, nil
		}
	}
	return false, nil
}
