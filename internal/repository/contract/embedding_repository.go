package contract

import (
	"context"

	"memoscribe-be/internal/entity"

	"github.com/google/uuid"
)

// EmbeddingRepository persists the semantic index. Upsert overwrites any
// prior record for the same (kind, content id); concurrent writers race
// under last-write-wins, which is safe because every job recomputes from
// the full source text.
type EmbeddingRepository interface {
	Upsert(ctx context.Context, record *entity.EmbeddingRecord) error

	// DeleteByContent removes the record for (kind, contentId); no-op if
	// absent.
	DeleteByContent(ctx context.Context, kind entity.ContentKind, contentId uuid.UUID) error

	// DeleteAllByUser hard-deletes every record owned by the user.
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) error

	// SearchNearest ranks records by L2 distance to the query vector,
	// ascending, restricted to the user and allowed kinds and to records
	// with a non-null vector.
	SearchNearest(ctx context.Context, userId uuid.UUID, vector []float32, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, error)

	FindByContent(ctx context.Context, kind entity.ContentKind, contentId uuid.UUID) (*entity.EmbeddingRecord, error)
}
