package model

import (
	"fmt"
	"strconv"
	"time"
)

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// BookingState is the query-time bucket used when listing bookings.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Item     ItemRef       `json:"item"`
	Booker   UserRef       `json:"booker"`
	OwnerID  int64         `json:"-"`
}

// BookingShort is what an item view shows as last/next booking.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (b Booking) Short() *BookingShort {
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

// swagger:model CreateBookingReq
type CreateBookingReq struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *Timestamp `json:"start" validate:"required"`
	End    *Timestamp `json:"end" validate:"required"`
}

// localLayout is an ISO date-time without zone; fractional seconds optional.
const localLayout = "2006-01-02T15:04:05.999999999"

// Timestamp decodes RFC 3339 as well as zone-less date-times, which are
// taken as UTC.
type Timestamp struct{ time.Time }

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, localLayout} {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// Std returns the wrapped time, nil for a nil Timestamp.
func (t *Timestamp) Std() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// BookingFilter selects a page of one subject's bookings.
type BookingFilter struct {
	State  BookingState
	Now    time.Time
	Offset int
	Limit  int
}
