package mapper

import (
	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(e *model.Preference) *entity.Preference {
	if e == nil {
		return nil
	}
	return &entity.Preference{
		Id:        e.Id,
		UserId:    e.UserId,
		Key:       e.Key,
		Value:     e.Value,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: optionalTime(e.UpdatedAt),
	}
}

func (m *PreferenceMapper) ToModel(e *entity.Preference) *model.Preference {
	if e == nil {
		return nil
	}
	return &model.Preference{
		Id:        e.Id,
		UserId:    e.UserId,
		Key:       e.Key,
		Value:     e.Value,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: timeValue(e.UpdatedAt),
	}
}

func (m *PreferenceMapper) ToEntities(prefs []*model.Preference) []*entity.Preference {
	entities := make([]*entity.Preference, len(prefs))
	for i, p := range prefs {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PreferenceMapper) SettingsToEntity(e *model.UserSettings) *entity.UserSettings {
	if e == nil {
		return nil
	}
	return &entity.UserSettings{
		Id:          e.Id,
		UserId:      e.UserId,
		SendNotes:   e.SendNotes,
		SendDigests: e.SendDigests,
		SendDocs:    e.SendDocs,
		SendRawLogs: e.SendRawLogs,
		PIIMasking:  e.PIIMasking,
		LLMEnabled:  e.LLMEnabled,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   optionalTime(e.UpdatedAt),
	}
}

func (m *PreferenceMapper) SettingsToModel(e *entity.UserSettings) *model.UserSettings {
	if e == nil {
		return nil
	}
	return &model.UserSettings{
		Id:          e.Id,
		UserId:      e.UserId,
		SendNotes:   e.SendNotes,
		SendDigests: e.SendDigests,
		SendDocs:    e.SendDocs,
		SendRawLogs: e.SendRawLogs,
		PIIMasking:  e.PIIMasking,
		LLMEnabled:  e.LLMEnabled,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   timeValue(e.UpdatedAt),
	}
}
