package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// MemoryStore is an id-indexed in-process implementation of domain.Repository.
// Values are copied in and out so callers never share records with the store.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[int64]models.User
	items    map[int64]models.Item
	bookings map[int64]models.Booking
	comments map[int64]models.Comment
	requests map[int64]models.ItemRequest

	nextUserID    int64
	nextItemID    int64
	nextBookingID int64
	nextCommentID int64
	nextRequestID int64
}

var _ domain.Repository = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]models.User),
		items:    make(map[int64]models.Item),
		bookings: make(map[int64]models.Booking),
		comments: make(map[int64]models.Comment),
		requests: make(map[int64]models.ItemRequest),
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(user.Email, 0) {
		return fmt.Errorf("email %s: %w", user.Email, domain.ErrDuplicate)
	}

	now := time.Now()
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		user := user
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrNotFound)
	}
	if s.emailTakenLocked(user.Email, user.ID) {
		return fmt.Errorf("email %s: %w", user.Email, domain.ErrDuplicate)
	}

	stored.Name = user.Name
	stored.Email = user.Email
	stored.UpdatedAt = time.Now()
	s.users[user.ID] = stored
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

// DeleteUser removes the user together with their items, bookings, comments and requests.
func (s *MemoryStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	for itemID, item := range s.items {
		if item.OwnerID == id {
			s.deleteItemLocked(itemID)
		}
	}
	for bookingID, booking := range s.bookings {
		if booking.BookerID == id {
			delete(s.bookings, bookingID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.AuthorID == id {
			delete(s.comments, commentID)
		}
	}
	for requestID, request := range s.requests {
		if request.RequestorID == id {
			delete(s.requests, requestID)
			for itemID, item := range s.items {
				if item.RequestID == requestID {
					item.RequestID = 0
					s.items[itemID] = item
				}
			}
		}
	}
	return nil
}

func (s *MemoryStore) deleteItemLocked(itemID int64) {
	delete(s.items, itemID)
	for bookingID, booking := range s.bookings {
		if booking.ItemID == itemID {
			delete(s.bookings, bookingID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.ItemID == itemID {
			delete(s.comments, commentID)
		}
	}
}

func (s *MemoryStore) emailTakenLocked(email string, exceptID int64) bool {
	for _, user := range s.users {
		if user.ID != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateItem(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[item.OwnerID]; !ok {
		return fmt.Errorf("owner %d: %w", item.OwnerID, domain.ErrNotFound)
	}
	if _, ok := s.requests[item.RequestID]; item.RequestID != 0 && !ok {
		return fmt.Errorf("item request %d: %w", item.RequestID, domain.ErrNotFound)
	}

	now := time.Now()
	s.nextItemID++
	item.ID = s.nextItemID
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryStore) GetItemByID(_ context.Context, id int64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return &item, nil
}

func (s *MemoryStore) UpdateItem(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[item.ID]
	if !ok {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}

	stored.Name = item.Name
	stored.Description = item.Description
	stored.Available = item.Available
	stored.UpdatedAt = time.Now()
	s.items[item.ID] = stored
	item.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *MemoryStore) ListItemsByOwner(_ context.Context, ownerID int64, offset, limit int) ([]*models.Item, error) {
	return s.filterItems(func(item models.Item) bool {
		return item.OwnerID == ownerID
	}, offset, limit), nil
}

func (s *MemoryStore) SearchItems(_ context.Context, text string, offset, limit int) ([]*models.Item, error) {
	needle := strings.ToUpper(text)
	return s.filterItems(func(item models.Item) bool {
		return item.Available &&
			(strings.Contains(strings.ToUpper(item.Name), needle) ||
				strings.Contains(strings.ToUpper(item.Description), needle))
	}, offset, limit), nil
}

func (s *MemoryStore) ListItemsByRequests(_ context.Context, requestIDs []int64) ([]*models.Item, error) {
	wanted := make(map[int64]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}
	return s.filterItems(func(item models.Item) bool {
		_, ok := wanted[item.RequestID]
		return item.RequestID != 0 && ok
	}, 0, 0), nil
}

func (s *MemoryStore) filterItems(match func(models.Item) bool, offset, limit int) []*models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*models.Item
	for _, item := range s.items {
		if match(item) {
			item := item
			items = append(items, &item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return paginate(items, offset, limit)
}

func (s *MemoryStore) CreateBooking(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[booking.ItemID]; !ok {
		return fmt.Errorf("item %d: %w", booking.ItemID, domain.ErrNotFound)
	}
	if _, ok := s.users[booking.BookerID]; !ok {
		return fmt.Errorf("booker %d: %w", booking.BookerID, domain.ErrNotFound)
	}

	now := time.Now()
	s.nextBookingID++
	booking.ID = s.nextBookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = *booking
	s.resolveBookingLocked(booking)
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id int64) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	s.resolveBookingLocked(&booking)
	return &booking, nil
}

// UpdateBookingStatus checks and sets the status under the write lock.
func (s *MemoryStore) UpdateBookingStatus(_ context.Context, id int64, from, to models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	if booking.Status != from {
		return fmt.Errorf("booking %d: %w", id, domain.ErrConcurrentModification)
	}

	booking.Status = to
	booking.UpdatedAt = time.Now()
	s.bookings[id] = booking
	return nil
}

func (s *MemoryStore) FindBookings(_ context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []*models.Booking
	for _, booking := range s.bookings {
		if matchBooking(booking, q) {
			booking := booking
			s.resolveBookingLocked(&booking)
			bookings = append(bookings, &booking)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if q.Ascending {
			a, b = b, a
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.After(b.Start)
		}
		return a.ID > b.ID
	})
	return paginate(bookings, q.Offset, q.Limit), nil
}

func matchBooking(b models.Booking, q models.BookingQuery) bool {
	if q.BookerID != 0 && b.BookerID != q.BookerID {
		return false
	}
	if q.ItemIDs != nil && !containsID(q.ItemIDs, b.ItemID) {
		return false
	}
	if len(q.Statuses) > 0 && !containsStatus(q.Statuses, b.Status) {
		return false
	}
	if !q.StartAfter.IsZero() && !b.Start.After(q.StartAfter) {
		return false
	}
	if !q.StartBefore.IsZero() && !b.Start.Before(q.StartBefore) {
		return false
	}
	if !q.StartNotAfter.IsZero() && b.Start.After(q.StartNotAfter) {
		return false
	}
	if !q.EndBefore.IsZero() && !b.End.Before(q.EndBefore) {
		return false
	}
	if !q.EndNotBefore.IsZero() && b.End.Before(q.EndNotBefore) {
		return false
	}
	return true
}

func (s *MemoryStore) resolveBookingLocked(b *models.Booking) {
	b.ItemName = s.items[b.ItemID].Name
	b.BookerName = s.users[b.BookerID].Name
}

func (s *MemoryStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, ok := s.users[comment.AuthorID]
	if !ok {
		return fmt.Errorf("author %d: %w", comment.AuthorID, domain.ErrNotFound)
	}
	if _, ok := s.items[comment.ItemID]; !ok {
		return fmt.Errorf("item %d: %w", comment.ItemID, domain.ErrNotFound)
	}

	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.AuthorName = author.Name
	s.comments[comment.ID] = *comment
	return nil
}

func (s *MemoryStore) ListCommentsByItems(_ context.Context, itemIDs []int64) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var comments []*models.Comment
	for _, comment := range s.comments {
		if containsID(itemIDs, comment.ItemID) {
			comment := comment
			comment.AuthorName = s.users[comment.AuthorID].Name
			comments = append(comments, &comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].Created.Equal(comments[j].Created) {
			return comments[i].Created.Before(comments[j].Created)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (s *MemoryStore) CreateRequest(_ context.Context, request *models.ItemRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[request.RequestorID]; !ok {
		return fmt.Errorf("requestor %d: %w", request.RequestorID, domain.ErrNotFound)
	}

	s.nextRequestID++
	request.ID = s.nextRequestID
	stored := *request
	stored.Items = nil
	s.requests[request.ID] = stored
	return nil
}

func (s *MemoryStore) GetRequest(_ context.Context, id int64) (*models.ItemRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("item request %d: %w", id, domain.ErrNotFound)
	}
	return &request, nil
}

func (s *MemoryStore) ListRequestsByRequestor(_ context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	return s.filterRequests(func(r models.ItemRequest) bool {
		return r.RequestorID == requestorID
	}, 0, 0), nil
}

func (s *MemoryStore) ListRequestsExcept(_ context.Context, requestorID int64, offset, limit int) ([]*models.ItemRequest, error) {
	return s.filterRequests(func(r models.ItemRequest) bool {
		return r.RequestorID != requestorID
	}, offset, limit), nil
}

func (s *MemoryStore) filterRequests(match func(models.ItemRequest) bool, offset, limit int) []*models.ItemRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var requests []*models.ItemRequest
	for _, request := range s.requests {
		if match(request) {
			request := request
			requests = append(requests, &request)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].Created.Equal(requests[j].Created) {
			return requests[i].Created.After(requests[j].Created)
		}
		return requests[i].ID > requests[j].ID
	})
	return paginate(requests, offset, limit)
}

func paginate[T any](rows []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsStatus(statuses []models.BookingStatus, status models.BookingStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
