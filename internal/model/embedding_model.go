package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingRecord stores one indexed projection of a source record. The
// (content_kind, content_id) pair is unique: upserts overwrite, never
// append. Vector is nullable; a NULL vector means keyword-only search.
type EmbeddingRecord struct {
	Id           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID        `gorm:"type:uuid;not null;index:idx_embeddings_user_kind,priority:1"`
	ContentKind  string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_embeddings_content,priority:1;index:idx_embeddings_user_kind,priority:2"`
	ContentId    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_embeddings_content,priority:2"`
	ContentTitle string           `gorm:"type:varchar(255)"`
	ContentText  string           `gorm:"type:text"`
	Vector       *pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small
	CreatedAt    time.Time        `gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime"`
}

func (EmbeddingRecord) TableName() string {
	return "embeddings"
}
