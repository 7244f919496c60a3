package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// RescheduleAppointmentInput is a partial update; nil fields are left
// untouched. A change to date, time or barber re-validates availability
// excluding the appointment itself.
type RescheduleAppointmentInput struct {
	ID string

	Date     *string
	Time     *string
	BarberID *string

	DurationMinutes *int
	Price           *float64
	Notes           *string
	Status          *string
}

func (in RescheduleAppointmentInput) movesSlot(ap *models.Appointment) bool {
	if in.Date != nil && *in.Date != ap.Date {
		return true
	}
	if in.Time != nil && *in.Time != ap.Time {
		return true
	}
	if in.BarberID != nil && *in.BarberID != ap.BarberID {
		return true
	}
	return false
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	repo     domain.Repository
	resolver *domain.HoursResolver
	audit    *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	resolver *domain.HoursResolver,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		resolver: resolver,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	moves := in.movesSlot(ap)

	// A finished appointment cannot be moved to a new slot; status
	// changes below go through the transition graph anyway.
	if moves && domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	if in.Date != nil {
		if !domain.ValidDate(*in.Date) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
		}
		ap.Date = *in.Date
	}
	if in.Time != nil {
		if !domain.ValidTime(*in.Time) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
		}
		ap.Time = *in.Time
	}
	if in.BarberID != nil {
		if *in.BarberID == "" {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		ap.BarberID = *in.BarberID
	}
	if in.DurationMinutes != nil {
		if err := domain.ValidateDuration(*in.DurationMinutes); err != nil {
			return nil, err
		}
		ap.DurationMinutes = *in.DurationMinutes
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		ap.Price = in.Price
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if in.Status != nil && *in.Status != ap.Status {
		to := domain.Status(*in.Status)
		if !domain.IsValidStatus(to) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
		}
		if err := domain.ApplyTransition(ap, to, timezone.Now()); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Availability re-validation (excluding self)
	// --------------------------------------------------
	if moves {
		day, err := time.Parse("2006-01-02", ap.Date)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
		}

		cfg, err := uc.resolver.Resolve(ctx, ap.BarberID, day)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateBookingTime(cfg, ap.Time); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, moves); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
