package mapper

import (
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingMapper struct{}

func NewEmbeddingMapper() *EmbeddingMapper {
	return &EmbeddingMapper{}
}

func (m *EmbeddingMapper) ToEntity(e *model.EmbeddingRecord) *entity.EmbeddingRecord {
	if e == nil {
		return nil
	}

	var vector []float32
	if e.Vector != nil {
		vector = e.Vector.Slice()
	}

	return &entity.EmbeddingRecord{
		Id:           e.Id,
		UserId:       e.UserId,
		ContentKind:  entity.ContentKind(e.ContentKind),
		ContentId:    e.ContentId,
		ContentTitle: e.ContentTitle,
		ContentText:  e.ContentText,
		Vector:       vector,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    optionalTime(e.UpdatedAt),
	}
}

func (m *EmbeddingMapper) ToModel(e *entity.EmbeddingRecord) *model.EmbeddingRecord {
	if e == nil {
		return nil
	}

	var vector *pgvector.Vector
	if e.Vector != nil {
		v := pgvector.NewVector(e.Vector)
		vector = &v
	}

	return &model.EmbeddingRecord{
		Id:           e.Id,
		UserId:       e.UserId,
		ContentKind:  string(e.ContentKind),
		ContentId:    e.ContentId,
		ContentTitle: e.ContentTitle,
		ContentText:  e.ContentText,
		Vector:       vector,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    timeValue(e.UpdatedAt),
	}
}

func (m *EmbeddingMapper) ToEntities(records []*model.EmbeddingRecord) []*entity.EmbeddingRecord {
	entities := make([]*entity.EmbeddingRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
