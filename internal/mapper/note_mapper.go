package mapper

import (
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(e *model.Note) *entity.Note {
	if e == nil {
		return nil
	}
	return &entity.Note{
		Id:         e.Id,
		UserId:     e.UserId,
		Title:      e.Title,
		Body:       e.Body,
		Tags:       stringList(e.Tags),
		Importance: e.Importance,
		Visibility: e.Visibility,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  optionalTime(e.UpdatedAt),
	}
}

func (m *NoteMapper) ToModel(e *entity.Note) *model.Note {
	if e == nil {
		return nil
	}
	return &model.Note{
		Id:         e.Id,
		UserId:     e.UserId,
		Title:      e.Title,
		Body:       e.Body,
		Tags:       jsonList(e.Tags),
		Importance: e.Importance,
		Visibility: e.Visibility,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  timeValue(e.UpdatedAt),
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
