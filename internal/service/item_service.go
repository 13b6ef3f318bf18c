package service

import (
	"context"
	"fmt"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

var _ domain.ItemService = (*ItemService)(nil)

func NewItemService(repo domain.Repository, eventBus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *ItemService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ItemService{
		repo:     repo,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, validationError("item name must not be blank")
	}
	if strings.TrimSpace(item.Description) == "" {
		return nil, validationError("item description must not be blank")
	}

	if _, err := requireUser(ctx, s.repo, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequest(ctx, item.RequestID); err != nil {
			return nil, storeError(err, ErrRequestNotFound, "get item request")
		}
	}

	created := *item
	created.ID = 0
	created.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, &created); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info().Int64("item_id", created.ID).Int64("owner_id", ownerID).Msg("Item created")
	if s.eventBus != nil {
		payload := events.ItemEventPayload{ItemID: created.ID, OwnerID: ownerID, RequestID: created.RequestID}
		if err := s.eventBus.PublishJSON(events.EventItemCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("item_id", created.ID).Msg("publish event error")
		}
	}

	return &created, nil
}

// UpdateItem applies the non-nil fields of patch. Only the owner may update an item.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, storeError(err, ErrItemNotFound, "get item")
	}
	if item.OwnerID != actorID {
		return nil, fmt.Errorf("%w: user %d does not own item %d", ErrUpdateNotAvailable, actorID, itemID)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationError("item name must not be blank")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, validationError("item description must not be blank")
		}
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, storeError(err, ErrItemNotFound, "update item")
	}
	return item, nil
}

// GetItem returns the item with its comments. Booking neighbours are only
// resolved when the actor owns the item.
func (s *ItemService) GetItem(ctx context.Context, actorID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, storeError(err, ErrItemNotFound, "get item")
	}

	details, err := s.details(ctx, []*models.Item{item}, actorID)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64, page models.Page) ([]*models.ItemDetails, error) {
	if _, err := requireUser(ctx, s.repo, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByOwner(ctx, ownerID, page.Offset(), page.Limit())
	if err != nil {
		return nil, fmt.Errorf("failed to list items of owner %d: %w", ownerID, err)
	}
	return s.details(ctx, items, ownerID)
}

// SearchItems returns available items whose name or description contains text.
// Blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string, page models.Page) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}

	items, err := s.repo.SearchItems(ctx, text, page.Offset(), page.Limit())
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

// AddComment stores a comment by an author who has finished an approved booking of the item.
func (s *ItemService) AddComment(ctx context.Context, actorID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationError("comment text must not be blank")
	}

	author, err := requireUser(ctx, s.repo, actorID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, storeError(err, ErrItemNotFound, "get item")
	}

	now := s.clock.Now()
	finished, err := s.repo.FindBookings(ctx, models.BookingQuery{
		BookerID:  actorID,
		ItemIDs:   []int64{item.ID},
		Statuses:  []models.BookingStatus{models.StatusApproved},
		EndBefore: now,
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find finished bookings: %w", err)
	}
	if len(finished) == 0 {
		return nil, fmt.Errorf("%w: user %d on item %d", ErrCommentNotAvailable, actorID, itemID)
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		Created:    now,
		AuthorName: author.Name,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", item.ID).Int64("author_id", author.ID).Msg("Comment created")
	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: item.ID, AuthorID: author.ID}
		if err := s.eventBus.PublishJSON(events.EventCommentCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}

	return comment, nil
}

func (s *ItemService) details(ctx context.Context, items []*models.Item, actorID int64) ([]*models.ItemDetails, error) {
	result := make([]*models.ItemDetails, 0, len(items))
	if len(items) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	comments, err := s.repo.ListCommentsByItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	byItem := make(map[int64][]*models.Comment, len(items))
	for _, comment := range comments {
		byItem[comment.ItemID] = append(byItem[comment.ItemID], comment)
	}

	now := s.clock.Now()
	for _, item := range items {
		d := &models.ItemDetails{Item: *item, Comments: byItem[item.ID]}
		if d.Comments == nil {
			d.Comments = []*models.Comment{}
		}
		if item.OwnerID == actorID {
			if d.LastBooking, err = s.neighbour(ctx, item.ID, models.BookingQuery{StartBefore: now}); err != nil {
				return nil, err
			}
			if d.NextBooking, err = s.neighbour(ctx, item.ID, models.BookingQuery{StartAfter: now, Ascending: true}); err != nil {
				return nil, err
			}
		}
		result = append(result, d)
	}
	return result, nil
}

// neighbour returns the first approved booking of the item matching q, or nil.
func (s *ItemService) neighbour(ctx context.Context, itemID int64, q models.BookingQuery) (*models.Booking, error) {
	q.ItemIDs = []int64{itemID}
	q.Statuses = []models.BookingStatus{models.StatusApproved}
	q.Limit = 1

	bookings, err := s.repo.FindBookings(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings of item %d: %w", itemID, err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}
