package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Body       string
	Tags       []string
	Importance int // 1 (low) .. 5 (critical)
	Visibility string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// IndexText is the text projection stored in the embedding index for this
// note.
func (n *Note) IndexText() string {
	return n.Title + "\n" + n.Body
}
