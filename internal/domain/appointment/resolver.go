package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

// HoursResolver produces the effective working-hours configuration for a
// barber on a date. Missing configuration falls back to the default; a
// store failure is surfaced, never masked as a business outcome.
type HoursResolver struct {
	repo Repository
}

func NewHoursResolver(repo Repository) *HoursResolver {
	return &HoursResolver{repo: repo}
}

func (r *HoursResolver) Resolve(
	ctx context.Context,
	barberID string,
	date time.Time,
) (WorkingHoursConfig, error) {

	wh, err := r.repo.GetWorkingHours(ctx, barberID, int(date.Weekday()))
	if err != nil {
		return WorkingHoursConfig{}, httperr.ErrBusiness(httperr.CodeDependencyUnavailable)
	}

	if wh == nil || !wh.Active {
		return DefaultWorkingHours, nil
	}

	cfg := WorkingHoursConfig{
		OpenTime:            wh.OpenTime,
		CloseTime:           wh.CloseTime,
		BreakStart:          wh.BreakStart,
		BreakEnd:            wh.BreakEnd,
		SlotIntervalMinutes: wh.SlotIntervalMinutes,
	}

	// Layered fallback: an incomplete row never produces a partially
	// populated config downstream.
	if cfg.OpenTime == "" || cfg.CloseTime == "" {
		return DefaultWorkingHours, nil
	}
	if cfg.SlotIntervalMinutes <= 0 {
		cfg.SlotIntervalMinutes = DefaultWorkingHours.SlotIntervalMinutes
	}

	return cfg, nil
}
