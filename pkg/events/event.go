package events

import "time"

// Event type codes published on the bus.
const (
	TypeContentPublished = "CONTENT_PUBLISHED"
	TypeContentUpdated   = "CONTENT_UPDATED"
	TypeContentDeleted   = "CONTENT_DELETED"
	TypeIndexRebuilt     = "INDEX_REBUILT"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONTENT_PUBLISHED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and by the
// subscriber when reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewContentPublished signals that a learning content item was created or
// made visible and should be indexed.
func NewContentPublished(contentId string) Event {
	return BaseEvent{
		Type:       TypeContentPublished,
		Data:       map[string]interface{}{"content_id": contentId},
		OccurredAt: time.Now(),
	}
}

// NewContentUpdated signals that an indexed item changed and its embeddings
// are stale.
func NewContentUpdated(contentId string) Event {
	return BaseEvent{
		Type:       TypeContentUpdated,
		Data:       map[string]interface{}{"content_id": contentId},
		OccurredAt: time.Now(),
	}
}

// NewContentDeleted signals that an item was removed and its embeddings must
// be purged.
func NewContentDeleted(contentId string) Event {
	return BaseEvent{
		Type:       TypeContentDeleted,
		Data:       map[string]interface{}{"content_id": contentId},
		OccurredAt: time.Now(),
	}
}

// NewIndexRebuilt signals that a full reindex finished.
func NewIndexRebuilt(documents int) Event {
	return BaseEvent{
		Type:       TypeIndexRebuilt,
		Data:       map[string]interface{}{"documents": documents},
		OccurredAt: time.Now(),
	}
}
