package appointment

import (
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyTransition moves an appointment to a new status after checking
// the lifecycle graph, stamping the terminal timestamps where relevant.
func ApplyTransition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return ApplyTransition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return ApplyTransition(ap, StatusCompleted, now)
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	return ApplyTransition(ap, StatusNoShow, now)
}
