package appointment

import (
	"context"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
)

type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	id string,
	to domain.Status,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(to) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.ApplyTransition(ap, to, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, false); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_" + string(to),
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// Convenience wrappers over Execute.

func (uc *TransitionAppointment) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	return uc.Execute(ctx, id, domain.StatusCancelled)
}

func (uc *TransitionAppointment) Complete(ctx context.Context, id string) (*models.Appointment, error) {
	return uc.Execute(ctx, id, domain.StatusCompleted)
}

func (uc *TransitionAppointment) MarkNoShow(ctx context.Context, id string) (*models.Appointment, error) {
	return uc.Execute(ctx, id, domain.StatusNoShow)
}
