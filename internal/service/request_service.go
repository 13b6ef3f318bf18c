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

type RequestService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

var _ domain.RequestService = (*RequestService)(nil)

func NewRequestService(repo domain.Repository, eventBus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *RequestService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RequestService{
		repo:     repo,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, actorID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, validationError("request description must not be blank")
	}
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: actorID,
		Created:     s.clock.Now(),
		Items:       []*models.Item{},
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create item request: %w", err)
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requestor_id", actorID).Msg("Item request created")
	if s.eventBus != nil {
		payload := events.RequestEventPayload{RequestID: request.ID, RequestorID: actorID}
		if err := s.eventBus.PublishJSON(events.EventRequestCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("request_id", request.ID).Msg("publish event error")
		}
	}

	return request, nil
}

func (s *RequestService) ListOwnRequests(ctx context.Context, actorID int64) ([]*models.ItemRequest, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsByRequestor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests of user %d: %w", actorID, err)
	}
	return s.withItems(ctx, requests)
}

// ListOtherRequests pages through requests made by everyone except the actor.
func (s *RequestService) ListOtherRequests(ctx context.Context, actorID int64, page models.Page) ([]*models.ItemRequest, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsExcept(ctx, actorID, page.Offset(), page.Limit())
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return s.withItems(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, actorID, requestID int64) (*models.ItemRequest, error) {
	if _, err := requireUser(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, storeError(err, ErrRequestNotFound, "get item request")
	}

	requests, err := s.withItems(ctx, []*models.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return requests[0], nil
}

// withItems attaches the items offered in answer to each request.
func (s *RequestService) withItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequest, error) {
	if len(requests) == 0 {
		return []*models.ItemRequest{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}
	items, err := s.repo.ListItemsByRequests(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by requests: %w", err)
	}

	byRequest := make(map[int64][]*models.Item, len(requests))
	for _, item := range items {
		byRequest[item.RequestID] = append(byRequest[item.RequestID], item)
	}
	for _, request := range requests {
		request.Items = byRequest[request.ID]
		if request.Items == nil {
			request.Items = []*models.Item{}
		}
	}
	return requests, nil
}
