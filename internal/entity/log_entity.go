package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DailyLog is a raw daily log entry, unique per (user, date).
type DailyLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Date      time.Time
	RawText   string
	Mood      *int // 1 (worst) .. 5 (best)
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// DailyDigest is the derived artifact for a daily log, one-to-one with its
// source. It is regenerated wholesale whenever the log text changes, never
// patched.
type DailyDigest struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	LogId     uuid.UUID
	Summary   string
	Tags      []string
	Topics    []string
	Actions   []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IndexText is the text projection embedded for this digest.
func (d *DailyDigest) IndexText() string {
	return d.Summary + "\n\nトピック: " + strings.Join(d.Topics, ", ") + "\nアクション: " + strings.Join(d.Actions, ", ")
}

// IndexTitle labels the digest in retrieval results.
func (d *DailyDigest) IndexTitle(logDate time.Time) string {
	return "ダイジェスト: " + logDate.Format("2006-01-02")
}
