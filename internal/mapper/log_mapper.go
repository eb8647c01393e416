package mapper

import (
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"
)

type LogMapper struct{}

func NewLogMapper() *LogMapper {
	return &LogMapper{}
}

func (m *LogMapper) ToEntity(e *model.DailyLog) *entity.DailyLog {
	if e == nil {
		return nil
	}
	return &entity.DailyLog{
		Id:        e.Id,
		UserId:    e.UserId,
		Date:      e.Date,
		RawText:   e.RawText,
		Mood:      e.Mood,
		CreatedAt: e.CreatedAt,
		UpdatedAt: optionalTime(e.UpdatedAt),
	}
}

func (m *LogMapper) ToModel(e *entity.DailyLog) *model.DailyLog {
	if e == nil {
		return nil
	}
	return &model.DailyLog{
		Id:        e.Id,
		UserId:    e.UserId,
		Date:      e.Date,
		RawText:   e.RawText,
		Mood:      e.Mood,
		CreatedAt: e.CreatedAt,
		UpdatedAt: timeValue(e.UpdatedAt),
	}
}

func (m *LogMapper) ToEntities(logs []*model.DailyLog) []*entity.DailyLog {
	entities := make([]*entity.DailyLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

func (m *LogMapper) DigestToEntity(e *model.DailyDigest) *entity.DailyDigest {
	if e == nil {
		return nil
	}
	return &entity.DailyDigest{
		Id:        e.Id,
		UserId:    e.UserId,
		LogId:     e.LogId,
		Summary:   e.Summary,
		Tags:      stringList(e.Tags),
		Topics:    stringList(e.Topics),
		Actions:   stringList(e.Actions),
		CreatedAt: e.CreatedAt,
		UpdatedAt: optionalTime(e.UpdatedAt),
	}
}

func (m *LogMapper) DigestToModel(e *entity.DailyDigest) *model.DailyDigest {
	if e == nil {
		return nil
	}
	return &model.DailyDigest{
		Id:        e.Id,
		UserId:    e.UserId,
		LogId:     e.LogId,
		Summary:   e.Summary,
		Tags:      jsonList(e.Tags),
		Topics:    jsonList(e.Topics),
		Actions:   jsonList(e.Actions),
		CreatedAt: e.CreatedAt,
		UpdatedAt: timeValue(e.UpdatedAt),
	}
}

func (m *LogMapper) DigestsToEntities(digests []*model.DailyDigest) []*entity.DailyDigest {
	entities := make([]*entity.DailyDigest, len(digests))
	for i, d := range digests {
		entities[i] = m.DigestToEntity(d)
	}
	return entities
}
