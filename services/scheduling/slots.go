package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cliniva/models"
	"cliniva/utils"

	"go.uber.org/zap"
)

// SlotConfig carries the platform scheduling parameters. Clinics may override
// the step per clinic; the rest is platform-wide.
type SlotConfig struct {
	StepMinutes int
	MinLead     time.Duration
	HoldTTL     time.Duration
}

const slotCacheTTL = 20 * time.Second

// ComputeSlots returns the bookable start minutes for one professional-day.
// It walks the window's blocks in order, generates candidates at the slot
// step, and drops any candidate that would not fit its block, start inside
// the lead-time horizon, or overlap a reservation that still blocks its
// interval. Pure and deterministic: identical inputs yield identical output.
func ComputeSlots(window *models.AvailabilityWindow, serviceDuration int, date string, existing []models.Reservation, now time.Time, cfg SlotConfig) []int {
	if window == nil || !window.Active || serviceDuration <= 0 {
		return nil
	}
	step := cfg.StepMinutes
	if step <= 0 {
		step = 30
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil
	}
	earliest := now.Add(cfg.MinLead)

	var starts []int
	for _, block := range window.Blocks {
		for start := block.Start; start+serviceDuration <= block.End; start += step {
			if utils.MinuteOfDayOn(day, start).Before(earliest) {
				continue
			}
			if overlapsAny(start, start+serviceDuration, existing, now, cfg.HoldTTL) {
				continue
			}
			starts = append(starts, start)
		}
	}
	return starts
}

func overlapsAny(start, end int, existing []models.Reservation, now time.Time, holdTTL time.Duration) bool {
	for _, r := range existing {
		if r.Blocks(now, holdTTL) && r.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// AvailableStarts resolves the professional's window, the offering duration
// and the day's blocking reservations, then computes the slot list. Results
// are cached briefly; the list is advisory either way because TryReserve
// re-validates.
func (e *DefaultSchedulingEngine) AvailableStarts(ctx context.Context, professionalID, serviceID, date string) ([]int, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, models.NewValidationError("date", err.Error())
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s", professionalID, serviceID, date)
	if e.Cache != nil {
		if cached, err := e.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var starts []int
			if err := json.Unmarshal([]byte(cached), &starts); err == nil {
				return starts, nil
			}
		}
	}

	prof, err := e.Clinics.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	offering, err := e.Clinics.GetOffering(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !offering.Active {
		return nil, models.NewValidationError("serviceId", "service offering is not active")
	}

	cfg := e.Cfg
	if clinic, err := e.Clinics.GetClinic(ctx, prof.ClinicID); err == nil && clinic.SlotStepMinutes > 0 {
		cfg.StepMinutes = clinic.SlotStepMinutes
	}

	day, _ := utils.ParseDate(date)
	window, err := e.Availability.GetWindow(ctx, professionalID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	now := e.now()
	existing, err := e.Reservations.ListBlockingForDay(ctx, professionalID, date, now, cfg.HoldTTL)
	if err != nil {
		return nil, err
	}

	starts := ComputeSlots(window, offering.DurationMinutes, date, existing, now, cfg)

	if e.Cache != nil {
		if data, err := json.Marshal(starts); err == nil {
			if err := e.Cache.Set(ctx, cacheKey, data, slotCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("slot cache write failed", zap.Error(err))
			}
		}
	}
	return starts, nil
}
