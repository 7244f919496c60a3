package httperr

import "errors"

// Business error codes for the scheduling engine. Validation-class codes
// map to 400; the remaining codes carry their own status (see statusFor).
const (
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidDateOrTime    = "invalid_date_or_time"
	CodeDurationTooShort     = "duration_too_short"
	CodeOutsideWorkingHours  = "outside_working_hours"
	CodeInsideBreak          = "inside_break"
	CodeInvalidConfiguration = "invalid_configuration"
	CodeInvalidStatus        = "invalid_status"

	CodeSlotUnavailable       = "slot_unavailable"
	CodeAppointmentNotFound   = "appointment_not_found"
	CodeInvalidTransition     = "invalid_transition"
	CodeDependencyUnavailable = "dependency_unavailable"
	CodeIndeterminate         = "indeterminate"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, "" otherwise.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
