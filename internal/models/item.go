package models

import "time"

type Item struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Available   bool      `json:"available" yaml:"available"`
	OwnerID     int64     `json:"ownerId" yaml:"owner_id"`
	RequestID   int64     `json:"requestId,omitempty" yaml:"request_id"`
	CreatedAt   time.Time `json:"-" yaml:"-"`
	UpdatedAt   time.Time `json:"-" yaml:"-"`
}

// ItemPatch carries the fields of a partial item update; nil means unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDetails is an item as seen by a particular user.
// LastBooking and NextBooking are only filled for the owner.
type ItemDetails struct {
	Item
	LastBooking *Booking
	NextBooking *Booking
	Comments    []*Comment
}
