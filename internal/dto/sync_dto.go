package dto

import "github.com/google/uuid"

const (
	SyncActionUpsert = "upsert"
	SyncActionDelete = "delete"
)

// SyncJobMessage is the payload carried on the sync queue. One message
// per mutated content item; the consumer reloads current state from the
// database so stale messages resolve last-write-wins.
type SyncJobMessage struct {
	Kind      string    `json:"kind"`
	ContentId uuid.UUID `json:"content_id"`
	Action    string    `json:"action"`
	UserId    uuid.UUID `json:"user_id"`
}
