package models

import "time"

// ItemRequest is a user's description of an item they would like to borrow.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time

	// Items that were listed in response to the request.
	Items []*Item
}
