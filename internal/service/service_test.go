package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

// stores returns a fresh instance of every Repository implementation.
func stores(t *testing.T) map[string]domain.Repository {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]domain.Repository{
		"memory": repository.NewMemoryStore(),
		"sqlite": db,
	}
}

type fixture struct {
	repo     domain.Repository
	clock    *fixedClock
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
}

func newFixture(t *testing.T, repo domain.Repository) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	clock := &fixedClock{now: testNow}
	return &fixture{
		repo:     repo,
		clock:    clock,
		users:    NewUserService(repo, &logger),
		items:    NewItemService(repo, nil, clock, &logger),
		bookings: NewBookingService(repo, nil, clock, &logger),
		requests: NewRequestService(repo, nil, clock, &logger),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), &models.User{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return user
}

func (f *fixture) item(t *testing.T, owner *models.User, name string) *models.Item {
	t.Helper()
	item, err := f.items.CreateItem(context.Background(), owner.ID, &models.Item{
		Name:        name,
		Description: name + " for rent",
		Available:   true,
	})
	require.NoError(t, err)
	return item
}

// booking stores a booking with the given status directly, bypassing the
// creation rules so past and current bookings can be arranged.
func (f *fixture) booking(t *testing.T, item *models.Item, booker *models.User, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	booking := &models.Booking{Start: start, End: end, ItemID: item.ID, BookerID: booker.ID, Status: status}
	require.NoError(t, f.repo.CreateBooking(context.Background(), booking))
	return booking
}

func bookingIDs(bookings []*models.Booking) []int64 {
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
