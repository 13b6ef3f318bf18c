package events

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
	EventCommentCreated  = "comment_created"
	EventItemCreated     = "item_created"
	EventRequestCreated  = "request_created"
)

// BookingEventPayload describes the booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	OwnerID   int64     `json:"owner_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ActorID   int64     `json:"actor_id"`
}

// CommentEventPayload describes a new comment.
type CommentEventPayload struct {
	CommentID int64 `json:"comment_id"`
	ItemID    int64 `json:"item_id"`
	AuthorID  int64 `json:"author_id"`
}

// ItemEventPayload describes a newly listed item.
type ItemEventPayload struct {
	ItemID    int64 `json:"item_id"`
	OwnerID   int64 `json:"owner_id"`
	RequestID int64 `json:"request_id,omitempty"`
}

// RequestEventPayload describes a new item request.
type RequestEventPayload struct {
	RequestID   int64 `json:"request_id"`
	RequestorID int64 `json:"requestor_id"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	wildcard    []EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every event type.
func (b *EventBus) SubscribeAll(handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wildcard = append(b.wildcard, handler)
}

// Publish runs every matching handler synchronously and returns their joined errors.
// A failing handler does not stop the remaining ones.
func (b *EventBus) Publish(event *Event) error {
	b.mu.RLock()
	handlers := make([]EventHandler, 0, len(b.subscribers[event.Type])+len(b.wildcard))
	handlers = append(handlers, b.subscribers[event.Type]...)
	handlers = append(handlers, b.wildcard...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	event, err := NewJSONEvent(eventType, payload)
	if err != nil {
		return err
	}
	return b.Publish(&event)
}

// NewJSONEvent builds an Event with JSON payload for manual publishing.
func NewJSONEvent(eventType string, payload interface{}) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{Type: eventType, Payload: raw, CreatedAt: time.Now()}, nil
}
