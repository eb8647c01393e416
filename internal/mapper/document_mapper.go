package mapper

import (
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(e *model.Document) *entity.Document {
	if e == nil {
		return nil
	}
	return &entity.Document{
		Id:            e.Id,
		UserId:        e.UserId,
		Title:         e.Title,
		FilePath:      e.FilePath,
		FileType:      e.FileType,
		ExtractedText: e.ExtractedText,
		Summary:       e.Summary,
		Status:        entity.DocumentStatus(e.Status),
		ErrorMessage:  e.ErrorMessage,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     optionalTime(e.UpdatedAt),
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	if e == nil {
		return nil
	}
	return &model.Document{
		Id:            e.Id,
		UserId:        e.UserId,
		Title:         e.Title,
		FilePath:      e.FilePath,
		FileType:      e.FileType,
		ExtractedText: e.ExtractedText,
		Summary:       e.Summary,
		Status:        string(e.Status),
		ErrorMessage:  e.ErrorMessage,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     timeValue(e.UpdatedAt),
	}
}

func (m *DocumentMapper) ChunkToEntity(e *model.DocumentChunk) *entity.DocumentChunk {
	if e == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		ChunkIndex: e.ChunkIndex,
		Content:    e.Content,
		Metadata:   objectMap(e.Metadata),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	if e == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		ChunkIndex: e.ChunkIndex,
		Content:    e.Content,
		Metadata:   jsonObject(e.Metadata),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentMapper) ChunksToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ChunkToEntity(c)
	}
	return entities
}
