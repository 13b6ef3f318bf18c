package models

import "time"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	case StatusWaiting:
		return false
	}
	return true
}

type Booking struct {
	ID        int64         `json:"id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	ItemID    int64         `json:"item_id"`
	BookerID  int64         `json:"booker_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Resolved on read.
	ItemName   string `json:"item_name"`
	BookerName string `json:"booker_name"`
}

// BookingState is a named slice of a booking list.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState matches raw exactly against the known states.
func ParseBookingState(raw string) (BookingState, bool) {
	switch s := BookingState(raw); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, true
	}
	return "", false
}

// BookingQuery selects bookings. Zero-valued fields do not constrain the result.
// Time bounds are compared as: start > StartAfter, start < StartBefore,
// start <= StartNotAfter, end < EndBefore, end >= EndNotBefore.
// A non-nil empty ItemIDs matches nothing.
type BookingQuery struct {
	BookerID int64
	ItemIDs  []int64
	Statuses []BookingStatus

	StartAfter    time.Time
	StartBefore   time.Time
	StartNotAfter time.Time
	EndBefore     time.Time
	EndNotBefore  time.Time

	// Bookings are ordered by start descending unless Ascending is set.
	Ascending bool
	Offset    int
	Limit     int
}
