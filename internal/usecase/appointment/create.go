package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID string
	BarberID     string
	ClientID     string
	ServiceID    string

	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	DurationMinutes int

	Status string
	Price  *float64
	Notes  string

	// IdempotencyKey is optional; when present a retried request
	// resolves to the appointment created by the first attempt.
	IdempotencyKey string
}

// IdempotencyStore is the reservation contract for booking retries.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (appointmentID string, ok bool, err error)
	Finalize(ctx context.Context, key, appointmentID string) error
	Release(ctx context.Context, key string)
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	resolver *domain.HoursResolver
	idem     IdempotencyStore
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	resolver *domain.HoursResolver,
	idem IdempotencyStore,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		resolver: resolver,
		idem:     idem,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validation (before any store write)
	// --------------------------------------------------
	if in.BarberID == "" || in.ClientID == "" || in.ServiceID == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	if !domain.ValidDate(in.Date) || !domain.ValidTime(in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	status, err := domain.InitialStatus(domain.Status(in.Status))
	if err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	// --------------------------------------------------
	// Working hours + break window (I3)
	// --------------------------------------------------
	cfg, err := uc.resolver.Resolve(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateBookingTime(cfg, in.Time); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Idempotency reservation
	// --------------------------------------------------
	reserved := false
	if in.IdempotencyKey != "" && uc.idem != nil {
		existingID, ok, err := uc.idem.Reserve(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existingID != "" {
			return uc.repo.GetAppointment(ctx, existingID)
		}
		if !ok {
			// Another attempt with this key is in flight; the outcome
			// is unknown and the caller should query state, not retry.
			return nil, httperr.ErrBusiness(httperr.CodeIndeterminate)
		}
		reserved = true
	}

	// --------------------------------------------------
	// Conflict check + insert (single transaction)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		ClientID:        in.ClientID,
		ServiceID:       in.ServiceID,
		Date:            in.Date,
		Time:            in.Time,
		DurationMinutes: in.DurationMinutes,
		Status:          string(status),
		Price:           in.Price,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if reserved && !httperr.IsBusiness(err, httperr.CodeIndeterminate) {
			// A deterministic failure frees the key for retry with a
			// different slot; an indeterminate one keeps it held.
			uc.idem.Release(ctx, in.IdempotencyKey)
		}
		return nil, err
	}

	if reserved {
		// Best effort: a lost finalize leaves the key reserved until
		// TTL and retries report indeterminate.
		_ = uc.idem.Finalize(ctx, in.IdempotencyKey, ap.ID)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.ClientID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"barber_id": in.BarberID,
			"date":      in.Date,
			"time":      in.Time,
		},
	})

	return ap, nil
}
