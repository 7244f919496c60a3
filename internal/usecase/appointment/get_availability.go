package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

type GetAvailability struct {
	repo     domain.Repository
	resolver *domain.HoursResolver
}

func NewGetAvailability(
	repo domain.Repository,
	resolver *domain.HoursResolver,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		resolver: resolver,
	}
}

// Execute partitions the day's candidate slots into available and
// occupied. The two sets are disjoint and together equal the generated
// sequence for the resolved working hours.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID string,
	date string,
) (domain.Availability, error) {

	out := domain.Availability{Date: date}

	if !domain.ValidDate(date) {
		return out, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return out, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	cfg, err := uc.resolver.Resolve(ctx, barberID, day)
	if err != nil {
		return out, err
	}

	candidates, err := domain.Slots(cfg)
	if err != nil {
		return out, err
	}

	// One batched query for the day instead of per-slot checks.
	taken, err := uc.repo.ListActiveTimes(ctx, barberID, date)
	if err != nil {
		return out, err
	}

	occupied := make(map[string]bool, len(taken))
	for _, t := range taken {
		occupied[t] = true
	}

	out.AvailableSlots = []string{}
	out.OccupiedSlots = []string{}
	for _, slot := range candidates {
		if occupied[slot] {
			out.OccupiedSlots = append(out.OccupiedSlots, slot)
		} else {
			out.AvailableSlots = append(out.AvailableSlots, slot)
		}
	}

	return out, nil
}
