package entity

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Description string
	DueAt       *time.Time
	Priority    int    // 1 (low) .. 4 (urgent)
	Status      string // todo, doing, done
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// IsOverdue reports whether the task is past due and not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueAt != nil && t.Status != "done" && t.DueAt.Before(now)
}

// IndexText is the text projection embedded for this task.
func (t *Task) IndexText() string {
	return t.Title + "\n\n" + t.Description
}
