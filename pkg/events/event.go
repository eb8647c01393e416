package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic Event implementation used across the system.
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

// NewContentMutation builds the event published whenever a source record is
// created, updated, or deleted. Consumers recompute digests/embeddings from
// it.
func NewContentMutation(eventType, kind, contentID, userID string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"kind":       kind,
			"content_id": contentID,
			"user_id":    userID,
		},
		OccurredAt: time.Now(),
	}
}

// NewAuditRecord builds the write-only audit event emitted once per
// generation call.
func NewAuditRecord(userID, action, affectedID string, tokenEstimate, contextCount int) BaseEvent {
	return BaseEvent{
		Type: "LLM_CALL",
		Data: map[string]interface{}{
			"user_id":       userID,
			"action":        action,
			"affected_id":   affectedID,
			"tokens":        tokenEstimate,
			"context_count": contextCount,
		},
		OccurredAt: time.Now(),
	}
}
