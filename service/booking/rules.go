package bookingsvc

import (
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

// Grace is how far in the past a booking window may start or end and still
// be accepted, to absorb client clock skew and request latency.
const Grace = time.Minute

// ValidateWindow checks a requested [start, end] window against now.
func ValidateWindow(start, end *time.Time, now time.Time) error {
	if start == nil || end == nil {
		return apperr.Validation("start and end are required")
	}
	if start.Equal(*end) {
		return apperr.Validation("start and end must differ")
	}
	floor := now.Add(-Grace)
	if end.Before(floor) {
		return apperr.Validation("end is in the past")
	}
	if start.Before(floor) {
		return apperr.Validation("start is in the past")
	}
	if start.After(*end) {
		return apperr.Validation("start is after end")
	}
	return nil
}

// ParseState maps a raw state filter to a BookingState. Matching is exact
// and case-sensitive.
func ParseState(raw string) (model.BookingState, error) {
	switch s := model.BookingState(raw); s {
	case model.StateAll, model.StateCurrent, model.StatePast,
		model.StateFuture, model.StateWaiting, model.StateRejected:
		return s, nil
	}
	return "", apperr.Newf(apperr.ErrUnsupportedStatus, "Unknown state: %s", raw)
}

// Decide returns the status a WAITING booking moves to. APPROVED and
// REJECTED are terminal.
func Decide(current model.BookingStatus, approve bool) (model.BookingStatus, error) {
	if current != model.BookingWaiting {
		return "", apperr.Validation("status cannot be changed")
	}
	if approve {
		return model.BookingApproved, nil
	}
	return model.BookingRejected, nil
}

// Adjacent picks, among approved bookings of one item, the latest one that
// started before now and the earliest one starting at or after now.
func Adjacent(approved []model.Booking, now time.Time) (last, next *model.Booking) {
	for i := range approved {
		b := &approved[i]
		if b.Status != model.BookingApproved {
			continue
		}
		if b.Start.Before(now) {
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	return last, next
}
