package dto

import (
	"time"

	"github.com/google/uuid"

	"memoscribe-be/internal/entity"
)

type AskRequest struct {
	Question  string     `json:"question" validate:"required"`
	SessionId *uuid.UUID `json:"session_id"`
	TopK      int        `json:"top_k"`
}

type AskResponse struct {
	SessionId     uuid.UUID             `json:"session_id"`
	Answer        string                `json:"answer"`
	NextQuestions []string              `json:"next_questions"`
	Citations     []entity.ChatCitation `json:"citations"`
	ContextUsed   int                   `json:"context_used"`
}

type WriteRequest struct {
	Instruction  string `json:"instruction" validate:"required"`
	TemplateKind string `json:"template_kind"`
	TopK         int    `json:"top_k"`
}

type WriteResponse struct {
	Output      string                `json:"output"`
	Citations   []entity.ChatCitation `json:"citations"`
	MissingInfo []string              `json:"missing_info"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k"`
}

type SearchResultItem struct {
	ContentKind string `json:"content_kind"`
	ContentId   string `json:"content_id"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Id            uuid.UUID             `json:"id"`
	Role          string                `json:"role"`
	Content       string                `json:"content"`
	Citations     []entity.ChatCitation `json:"citations"`
	NextQuestions []string              `json:"next_questions"`
	CreatedAt     time.Time             `json:"created_at"`
}
