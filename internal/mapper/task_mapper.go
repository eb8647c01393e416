package mapper

import (
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(e *model.Task) *entity.Task {
	if e == nil {
		return nil
	}
	return &entity.Task{
		Id:          e.Id,
		UserId:      e.UserId,
		Title:       e.Title,
		Description: e.Description,
		DueAt:       e.DueAt,
		Priority:    e.Priority,
		Status:      e.Status,
		Tags:        stringList(e.Tags),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   optionalTime(e.UpdatedAt),
	}
}

func (m *TaskMapper) ToModel(e *entity.Task) *model.Task {
	if e == nil {
		return nil
	}
	return &model.Task{
		Id:          e.Id,
		UserId:      e.UserId,
		Title:       e.Title,
		Description: e.Description,
		DueAt:       e.DueAt,
		Priority:    e.Priority,
		Status:      e.Status,
		Tags:        jsonList(e.Tags),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   timeValue(e.UpdatedAt),
	}
}

func (m *TaskMapper) ToEntities(tasks []*model.Task) []*entity.Task {
	entities := make([]*entity.Task, len(tasks))
	for i, t := range tasks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
