package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/music-library/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountLoggedOut  EventType = "account_logged_out"
	EventFavoriteAdded     EventType = "favorite_added"
	EventFavoriteRemoved   EventType = "favorite_removed"
	EventCatalogChanged    EventType = "catalog_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, accountID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// FavoritePayload is carried by favorite_added and favorite_removed.
type FavoritePayload struct {
	FavoriteID string              `json:"favorite_id"`
	Kind       domain.ResourceKind `json:"kind"`
	ItemID     string              `json:"item_id"`
}

// CatalogAction names the mutation behind a catalog_changed event.
type CatalogAction string

const (
	CatalogCreated CatalogAction = "created"
	CatalogUpdated CatalogAction = "updated"
	CatalogDeleted CatalogAction = "deleted"
)

// CatalogChangedPayload payload.
type CatalogChangedPayload struct {
	Kind     domain.ResourceKind `json:"kind"`
	PublicID string              `json:"public_id"`
	Action   CatalogAction       `json:"action"`
}
