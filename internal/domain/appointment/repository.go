package appointment

import (
	"context"

	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// ViewerScope narrows listing results to what the caller may see.
// Barbers see their own agenda, clients their own bookings, any other
// role is unrestricted.
type ViewerScope struct {
	Role   string
	UserID string
}

const (
	RoleBarber = "barber"
	RoleClient = "client"
)

// ListFilter carries the exact-match filters and pagination for listing.
type ListFilter struct {
	Date         string
	Status       string
	BarberID     string
	ClientID     string
	BarbershopID string

	Page  int
	Limit int

	Viewer ViewerScope
}

// Normalize applies pagination defaults and the viewer scope as a single
// filter-composition step before any query runs.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	switch f.Viewer.Role {
	case RoleBarber:
		f.BarberID = f.Viewer.UserID
	case RoleClient:
		f.ClientID = f.Viewer.UserID
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Repository interface {
	// -------- Appointment (create / update, transactional) --------

	// CreateAppointment persists a new appointment. The slot conflict
	// check and the insert run inside one store transaction.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// UpdateAppointment saves an existing appointment. When recheckSlot
	// is set the conflict check runs in the same transaction as the
	// update, excluding the appointment's own id.
	UpdateAppointment(ctx context.Context, ap *models.Appointment, recheckSlot bool) error

	// -------- Appointment (read / delete) --------

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	DeleteAppointment(ctx context.Context, id string) error

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)

	// -------- Conflict / availability --------

	// IsSlotFree reports whether no active appointment occupies
	// (barberID, date, hm). excludeID may be empty.
	IsSlotFree(ctx context.Context, barberID, date, hm, excludeID string) (bool, error)

	// ListActiveTimes returns the start times of all active appointments
	// for one barber on one date, ordered ascending.
	ListActiveTimes(ctx context.Context, barberID, date string) ([]string, error)

	// -------- Working hours --------

	// GetWorkingHours returns the row for the given weekday, falling back
	// to the barber's any-day row. (nil, nil) when none is configured.
	GetWorkingHours(ctx context.Context, barberID string, weekday int) (*models.WorkingHours, error)
}
