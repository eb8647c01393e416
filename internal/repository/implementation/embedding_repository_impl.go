package implementation

import (
	"context"
	"errors"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/mapper"
	"memoscribe-be/internal/model"
	"memoscribe-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingMapper
}

func NewEmbeddingRepository(db *gorm.DB) contract.EmbeddingRepository {
	return &EmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingMapper(),
	}
}

func (r *EmbeddingRepositoryImpl) Upsert(ctx context.Context, record *entity.EmbeddingRecord) error {
	m := r.mapper.ToModel(record)

	// One record per (content_kind, content_id): conflicting writes
	// overwrite the prior row, they never append.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_kind"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "content_title", "content_text", "vector", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmbeddingRepositoryImpl) DeleteByContent(ctx context.Context, kind entity.ContentKind, contentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("content_kind = ? AND content_id = ?", string(kind), contentId).
		Delete(&model.EmbeddingRecord{}).Error
}

func (r *EmbeddingRepositoryImpl) DeleteAllByUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.EmbeddingRecord{}).Error
}

func (r *EmbeddingRepositoryImpl) SearchNearest(ctx context.Context, userId uuid.UUID, vector []float32, kinds []entity.ContentKind, limit int) ([]*entity.EmbeddingRecord, error) {
	if limit <= 0 {
		limit = 8
	}

	kindStrings := make([]string, len(kinds))
	for i, k := range kinds {
		kindStrings[i] = string(k)
	}

	var models []*model.EmbeddingRecord

	// pgvector L2 distance: vector <-> query, ascending = nearest first.
	// Records without a vector are only reachable through keyword fallback.
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("content_kind IN ?", kindStrings).
		Where("vector IS NOT NULL").
		Order(gorm.Expr("vector <-> ?", pgvector.NewVector(vector))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *EmbeddingRepositoryImpl) FindByContent(ctx context.Context, kind entity.ContentKind, contentId uuid.UUID) (*entity.EmbeddingRecord, error) {
	var m model.EmbeddingRecord
	err := r.db.WithContext(ctx).
		Where("content_kind = ? AND content_id = ?", string(kind), contentId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
