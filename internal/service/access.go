package service

import "shareit/internal/models"

// Role is the relation of an actor to a booking.
type Role int

const (
	RoleNone Role = iota
	RoleBooker
	RoleOwner
)

// roleOf returns the actor's relation to booking of item. An owner who is
// somehow also the booker is treated as the owner.
func roleOf(actorID int64, booking *models.Booking, item *models.Item) Role {
	switch {
	case item != nil && item.OwnerID == actorID:
		return RoleOwner
	case booking != nil && booking.BookerID == actorID:
		return RoleBooker
	default:
		return RoleNone
	}
}

// canView reports whether the role may read the booking.
func (r Role) canView() bool {
	switch r {
	case RoleBooker, RoleOwner:
		return true
	case RoleNone:
		return false
	}
	return false
}

// canDecide reports whether the role may approve or reject the booking.
func (r Role) canDecide() bool {
	switch r {
	case RoleOwner:
		return true
	case RoleBooker, RoleNone:
		return false
	}
	return false
}
