package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveNoteRequest struct {
	Id         *uuid.UUID `json:"id"`
	Title      string     `json:"title" validate:"required"`
	Body       string     `json:"body"`
	Tags       []string   `json:"tags"`
	Importance int        `json:"importance" validate:"omitempty,min=1,max=5"`
	Visibility string     `json:"visibility"`
}

type NoteResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Tags       []string   `json:"tags"`
	Importance int        `json:"importance"`
	Visibility string     `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type SaveLogRequest struct {
	Id      *uuid.UUID `json:"id"`
	Date    string     `json:"date" validate:"required"` // YYYY-MM-DD
	RawText string     `json:"raw_text" validate:"required"`
	Mood    *int       `json:"mood" validate:"omitempty,min=1,max=5"`
}

type LogResponse struct {
	Id        uuid.UUID  `json:"id"`
	Date      string     `json:"date"`
	RawText   string     `json:"raw_text"`
	Mood      *int       `json:"mood"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type DigestResponse struct {
	Id      uuid.UUID `json:"id"`
	LogId   uuid.UUID `json:"log_id"`
	Summary string    `json:"summary"`
	Tags    []string  `json:"tags"`
	Topics  []string  `json:"topics"`
	Actions []string  `json:"actions"`
}

type SaveTaskRequest struct {
	Id          *uuid.UUID `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo doing done"`
	Priority    int        `json:"priority" validate:"omitempty,min=1,max=4"`
	DueAt       *time.Time `json:"due_at"`
	Tags        []string   `json:"tags"`
}

type TaskResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	DueAt       *time.Time `json:"due_at"`
	Tags        []string   `json:"tags"`
	Overdue     bool       `json:"overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type SavePreferenceRequest struct {
	Key      string `json:"key" validate:"required"`
	Value    string `json:"value" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=writing lifestyle work health decision other"`
}

type PreferenceResponse struct {
	Id       uuid.UUID `json:"id"`
	Key      string    `json:"key"`
	Value    string    `json:"value"`
	Category string    `json:"category"`
}

type UpdateSettingsRequest struct {
	SendNotes   *bool `json:"send_notes"`
	SendDigests *bool `json:"send_digests"`
	SendDocs    *bool `json:"send_docs"`
	SendRawLogs *bool `json:"send_raw_logs"`
	PIIMasking  *bool `json:"pii_masking"`
	LLMEnabled  *bool `json:"llm_enabled"`
}

type SettingsResponse struct {
	SendNotes   bool `json:"send_notes"`
	SendDigests bool `json:"send_digests"`
	SendDocs    bool `json:"send_docs"`
	SendRawLogs bool `json:"send_raw_logs"`
	PIIMasking  bool `json:"pii_masking"`
	LLMEnabled  bool `json:"llm_enabled"`
}

type DocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	FileType  string     `json:"file_type"`
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
