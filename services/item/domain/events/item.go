package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for item lifecycle events.
const (
	TopicItemPosted   = "item.posted"
	TopicItemClaimed  = "item.claimed"
	TopicItemResolved = "item.resolved"
	TopicItemExpired  = "item.expired"
)

// Topics lists every item topic, for subscribers that follow them all.
var Topics = []string{TopicItemPosted, TopicItemClaimed, TopicItemResolved, TopicItemExpired}

// Version is the schema version of every payload below. Increment on breaking changes.
const Version = 1

// ItemEvent carries the fields common to all item events.
type ItemEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemEvent stamps a fresh event id.
func NewItemEvent(itemID, ownerID uuid.UUID, at time.Time) ItemEvent {
	return ItemEvent{EventID: uuid.New(), Version: Version, ItemID: itemID, OwnerID: ownerID, OccurredAt: at}
}

// Header returns the common fields; every event embeds ItemEvent.
func (e ItemEvent) Header() ItemEvent { return e }

// ItemPostedEvent is published after a new item is persisted.
type ItemPostedEvent struct {
	ItemEvent
	Type      string  `json:"type"`
	Category  string  `json:"category"`
	Longitude float64 `json:"lng"`
	Latitude  float64 `json:"lat"`
}

// ItemClaimedEvent is published after a successful claim.
type ItemClaimedEvent struct {
	ItemEvent
	ClaimerID uuid.UUID `json:"claimer_id"`
}

// ItemResolvedEvent is published when an item is confirmed returned.
type ItemResolvedEvent struct {
	ItemEvent
	ClaimerID *uuid.UUID `json:"claimer_id,omitempty"`
}

// ItemExpiredEvent is published when the sweep deletes an unclaimed item.
type ItemExpiredEvent struct {
	ItemEvent
	ImageURL string `json:"image_url,omitempty"`
}
