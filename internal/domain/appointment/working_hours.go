package appointment

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

// ===============================
// Working Hours
// ===============================

// WorkingHoursConfig is the fully-resolved schedule for one barber on one
// date. Every field is populated; callers never see partial configuration.
type WorkingHoursConfig struct {
	OpenTime            string
	CloseTime           string
	BreakStart          string
	BreakEnd            string
	SlotIntervalMinutes int
}

// DefaultWorkingHours applies when a barber has no configuration stored.
var DefaultWorkingHours = WorkingHoursConfig{
	OpenTime:            "09:00",
	CloseTime:           "18:00",
	BreakStart:          "12:00",
	BreakEnd:            "13:00",
	SlotIntervalMinutes: 30,
}

// MinDurationMinutes is the business minimum for a booking.
const MinDurationMinutes = 15

// ===============================
// HH:MM helpers
// ===============================

// minuteOfDay parses "HH:MM" into minutes since midnight.
func minuteOfDay(hm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || len(hm) != 5 || hm[2] != ':' {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	return h*60 + m, nil
}

func formatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidTime reports whether s is a well-formed zero-padded HH:MM value.
func ValidTime(s string) bool {
	_, err := minuteOfDay(s)
	return err == nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD value.
func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return false
	}
	return y >= 1 && m >= 1 && m <= 12 && d >= 1 && d <= 31
}

func (c WorkingHoursConfig) hasBreak() (start, end int, ok bool) {
	if strings.TrimSpace(c.BreakStart) == "" || strings.TrimSpace(c.BreakEnd) == "" {
		return 0, 0, false
	}
	bs, err1 := minuteOfDay(c.BreakStart)
	be, err2 := minuteOfDay(c.BreakEnd)
	if err1 != nil || err2 != nil || bs == be {
		return 0, 0, false
	}
	return bs, be, true
}

// ===============================
// Slot generation
// ===============================

// Slots generates the ordered candidate start times for one day.
//
// The cursor starts at open time; any cursor position inside
// [breakStart, breakEnd) jumps straight to breakEnd without emitting.
// Generation stops once the cursor reaches or passes close time.
// An open time at or after close time yields an empty sequence.
func Slots(cfg WorkingHoursConfig) ([]string, error) {
	if cfg.SlotIntervalMinutes <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidConfiguration)
	}

	open, err := minuteOfDay(cfg.OpenTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidConfiguration)
	}
	closeAt, err := minuteOfDay(cfg.CloseTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidConfiguration)
	}

	breakStart, breakEnd, hasBreak := cfg.hasBreak()

	slots := []string{}
	for cur := open; cur < closeAt; {
		if hasBreak && cur >= breakStart && cur < breakEnd {
			cur = breakEnd
			continue
		}
		slots = append(slots, formatHM(cur))
		cur += cfg.SlotIntervalMinutes
	}

	return slots, nil
}

// ===============================
// Booking-time validation
// ===============================

// ValidateBookingTime enforces that a start time lies inside the working
// window and outside the break window.
func ValidateBookingTime(cfg WorkingHoursConfig, hm string) error {
	t, err := minuteOfDay(hm)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	open, err := minuteOfDay(cfg.OpenTime)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidConfiguration)
	}
	closeAt, err := minuteOfDay(cfg.CloseTime)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidConfiguration)
	}

	if t < open || t >= closeAt {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	if bs, be, ok := cfg.hasBreak(); ok && t >= bs && t < be {
		return httperr.ErrBusiness(httperr.CodeInsideBreak)
	}

	return nil
}

// ValidateDuration enforces the generic positive constraint plus the
// business minimum.
func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes {
		return httperr.ErrBusiness(httperr.CodeDurationTooShort)
	}
	return nil
}
