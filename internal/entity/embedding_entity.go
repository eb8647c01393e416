package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind identifies which source table an indexed record projects.
type ContentKind string

const (
	KindNote       ContentKind = "note"
	KindDigest     ContentKind = "digest"
	KindChunk      ContentKind = "chunk"
	KindTask       ContentKind = "task"
	KindPreference ContentKind = "preference"
)

// AllKinds lists every indexable kind in a stable order.
func AllKinds() []ContentKind {
	return []ContentKind{KindNote, KindDigest, KindChunk, KindTask, KindPreference}
}

// EmbeddingRecord is one row of the semantic index. Vector is nil when
// the embedding call was skipped or failed; such records participate in
// keyword fallback only.
type EmbeddingRecord struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ContentKind  ContentKind
	ContentId    uuid.UUID
	ContentTitle string
	ContentText  string
	Vector       []float32
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
