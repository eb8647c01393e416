package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ChatCitation points a message back at the context item it relied on.
// Ref is the 1-indexed position in the context block shown to the model.
type ChatCitation struct {
	Ref   int    `json:"ref"`
	Kind  string `json:"type"`
	Title string `json:"title"`
	Quote string `json:"quote"`
}

type ChatMessage struct {
	Id            uuid.UUID
	SessionId     uuid.UUID
	Role          string // user, assistant
	Content       string
	Citations     []ChatCitation
	NextQuestions []string
	CreatedAt     time.Time
}
