package entity

import (
	"time"

	"github.com/google/uuid"
)

// Preference is a user rule or policy, unique per (user, key).
type Preference struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Key       string
	Value     string
	Category  string // writing, lifestyle, work, health, decision, other
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IndexText is the text projection embedded for this preference.
func (p *Preference) IndexText() string {
	return p.Key + ": " + p.Value
}

// UserSettings holds per-user privacy switches overriding the process-wide
// defaults. Tasks and preferences are always retrievable regardless of
// these flags.
type UserSettings struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	SendNotes   bool
	SendDigests bool
	SendDocs    bool
	SendRawLogs bool
	PIIMasking  bool
	LLMEnabled  bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
