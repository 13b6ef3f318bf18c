package models

import "time"

type Comment struct {
	ID       int64
	Text     string
	ItemID   int64
	AuthorID int64
	Created  time.Time

	// AuthorName is resolved on read.
	AuthorName string
}
