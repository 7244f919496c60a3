package appointment

import "github.com/BruksfildServices01/booking-engine/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// transitions holds the allowed status graph. Terminal statuses
// (cancelled, completed, no_show) have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether a status counts toward slot conflicts.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// ActiveStatuses is the set used by conflict queries.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

// ===============================
// Validations
// ===============================

// CanTransition validates a status change against the lifecycle graph.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

// InitialStatus validates a caller-requested initial status. Only
// pending and confirmed may be requested at creation; empty means pending.
func InitialStatus(requested Status) (Status, error) {
	if requested == "" {
		return StatusPending, nil
	}
	if !IsActive(requested) {
		return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}
	return requested, nil
}
