package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"shareit/internal/models"
)

// Errors shared by every Repository implementation.
var (
	ErrNotFound               = errors.New("record not found")
	ErrDuplicate              = errors.New("duplicate record")
	ErrConcurrentModification = errors.New("record was modified concurrently")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	// ListItemsByOwner returns the owner's items ordered by id. limit <= 0 returns all of them.
	ListItemsByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Item, error)
	// SearchItems matches available items by name or description, case-insensitively.
	SearchItems(ctx context.Context, text string, offset, limit int) ([]*models.Item, error)
	ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	// UpdateBookingStatus moves the booking from one status to another and fails with
	// ErrConcurrentModification when the stored status is no longer from.
	UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
	FindBookings(ctx context.Context, query models.BookingQuery) ([]*models.Booking, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	// ListRequestsByRequestor returns the user's requests, newest first.
	ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
	// ListRequestsExcept returns requests of every other user, newest first.
	ListRequestsExcept(ctx context.Context, requestorID int64, offset, limit int) ([]*models.ItemRequest, error)
}

// Repository is the full persistence surface of the service.
type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
	CommentRepository
	RequestRepository
	io.Closer
}

// RateLimiter counts hits per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetItem(ctx context.Context, actorID, itemID int64) (*models.ItemDetails, error)
	ListOwnerItems(ctx context.Context, ownerID int64, page models.Page) ([]*models.ItemDetails, error)
	SearchItems(ctx context.Context, text string, page models.Page) ([]*models.Item, error)
	AddComment(ctx context.Context, actorID, itemID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, actorID, itemID int64, start, end time.Time) (*models.Booking, error)
	DecideBooking(ctx context.Context, actorID, bookingID int64, approved string) (*models.Booking, error)
	GetBooking(ctx context.Context, actorID, bookingID int64) (*models.Booking, error)
	ListBookerBookings(ctx context.Context, actorID int64, state string, page models.Page) ([]*models.Booking, error)
	ListOwnerBookings(ctx context.Context, actorID int64, state string, page models.Page) ([]*models.Booking, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, actorID int64, description string) (*models.ItemRequest, error)
	ListOwnRequests(ctx context.Context, actorID int64) ([]*models.ItemRequest, error)
	ListOtherRequests(ctx context.Context, actorID int64, page models.Page) ([]*models.ItemRequest, error)
	GetRequest(ctx context.Context, actorID, requestID int64) (*models.ItemRequest, error)
}
