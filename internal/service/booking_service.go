package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

var _ domain.BookingService = (*BookingService)(nil)

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *BookingService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, actorID, itemID int64, start, end time.Time) (*models.Booking, error) {
	booker, err := requireUser(ctx, s.repo, actorID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, storeError(err, ErrItemNotFound, "get item")
	}
	if item.OwnerID == actorID {
		return nil, fmt.Errorf("%w: user %d owns item %d", ErrBookingByOwnerNotAvailable, actorID, itemID)
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: item %d", ErrBookingNotAvailable, itemID)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s, end %s", ErrInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	booking := &models.Booking{
		Start:      start,
		End:        end,
		ItemID:     item.ID,
		BookerID:   booker.ID,
		Status:     models.StatusWaiting,
		ItemName:   item.Name,
		BookerName: booker.Name,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("Booking created")
	s.publishEvent(events.EventBookingCreated, booking, item.OwnerID, actorID)

	return booking, nil
}

// DecideBooking approves or rejects a waiting booking on behalf of the item owner.
// approved is matched case-insensitively against "true" and "false".
func (s *BookingService) DecideBooking(ctx context.Context, actorID, bookingID int64, approved string) (*models.Booking, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, ErrBookingNotFound, "get booking")
	}

	switch booking.Status {
	case models.StatusWaiting:
	case models.StatusApproved, models.StatusRejected:
		return nil, fmt.Errorf("%w: booking %d is %s", ErrStatusChangeNotAvailable, bookingID, booking.Status)
	default:
		return nil, fmt.Errorf("booking %d has unknown status %q", bookingID, booking.Status)
	}

	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, storeError(err, ErrItemNotFound, "get item")
	}
	if !roleOf(actorID, booking, item).canDecide() {
		return nil, fmt.Errorf("%w: user %d does not own item %d", ErrUpdateNotAvailable, actorID, item.ID)
	}

	target, ok := parseDecision(approved)
	if !ok {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrUpdateNotAvailable, approved)
	}

	err = s.repo.UpdateBookingStatus(ctx, bookingID, models.StatusWaiting, target)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrConcurrentModification):
		return nil, fmt.Errorf("%w: booking %d was decided concurrently", ErrStatusChangeNotAvailable, bookingID)
	default:
		return nil, storeError(err, ErrBookingNotFound, "update booking status")
	}
	booking.Status = target

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("owner_id", actorID).
		Str("status", string(target)).
		Msg("Booking decided")

	eventType := events.EventBookingApproved
	if target == models.StatusRejected {
		eventType = events.EventBookingRejected
	}
	s.publishEvent(eventType, booking, item.OwnerID, actorID)

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*models.Booking, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, ErrBookingNotFound, "get booking")
	}

	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, storeError(err, ErrItemNotFound, "get item")
	}
	if !roleOf(actorID, booking, item).canView() {
		return nil, fmt.Errorf("%w: user %d to booking %d", ErrAccessDenied, actorID, bookingID)
	}

	return booking, nil
}

func (s *BookingService) ListBookerBookings(ctx context.Context, actorID int64, state string, page models.Page) ([]*models.Booking, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	query, err := s.stateQuery(state)
	if err != nil {
		return nil, err
	}
	query.BookerID = actorID
	query.Offset = page.Offset()
	query.Limit = page.Limit()

	bookings, err := s.repo.FindBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of booker %d: %w", actorID, err)
	}
	return bookings, nil
}

func (s *BookingService) ListOwnerBookings(ctx context.Context, actorID int64, state string, page models.Page) ([]*models.Booking, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByOwner(ctx, actorID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of owner %d: %w", actorID, err)
	}

	query, err := s.stateQuery(state)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*models.Booking{}, nil
	}

	query.ItemIDs = make([]int64, 0, len(items))
	for _, item := range items {
		query.ItemIDs = append(query.ItemIDs, item.ID)
	}
	query.Offset = page.Offset()
	query.Limit = page.Limit()

	bookings, err := s.repo.FindBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of owner %d: %w", actorID, err)
	}
	return bookings, nil
}

// stateQuery translates a state token into store constraints evaluated at the current time.
func (s *BookingService) stateQuery(raw string) (models.BookingQuery, error) {
	state, ok := models.ParseBookingState(raw)
	if !ok {
		return models.BookingQuery{}, fmt.Errorf("%w: %q", ErrUnsupportedStatus, raw)
	}

	now := s.clock.Now()
	switch state {
	case models.StateAll:
		return models.BookingQuery{}, nil
	case models.StateCurrent:
		return models.BookingQuery{StartNotAfter: now, EndNotBefore: now}, nil
	case models.StatePast:
		return models.BookingQuery{
			Statuses:  []models.BookingStatus{models.StatusApproved},
			EndBefore: now,
		}, nil
	case models.StateFuture:
		return models.BookingQuery{
			Statuses:   []models.BookingStatus{models.StatusApproved, models.StatusWaiting},
			StartAfter: now,
		}, nil
	case models.StateWaiting:
		return models.BookingQuery{Statuses: []models.BookingStatus{models.StatusWaiting}}, nil
	case models.StateRejected:
		return models.BookingQuery{Statuses: []models.BookingStatus{models.StatusRejected}}, nil
	}
	return models.BookingQuery{}, fmt.Errorf("%w: %q", ErrUnsupportedStatus, raw)
}

func parseDecision(token string) (models.BookingStatus, bool) {
	switch {
	case strings.EqualFold(token, "true"):
		return models.StatusApproved, true
	case strings.EqualFold(token, "false"):
		return models.StatusRejected, true
	}
	return "", false
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, ownerID, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		OwnerID:   ownerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func requireUser(ctx context.Context, users domain.UserRepository, id int64) (*models.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "get user")
	}
	return user, nil
}
