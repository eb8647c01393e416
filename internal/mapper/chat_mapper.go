package mapper

import (
	"encoding/json"

	"memoscribe-be/internal/entity"
	"memoscribe-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(e *model.ChatSession) *entity.ChatSession {
	if e == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        e.Id,
		UserId:    e.UserId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: optionalTime(e.UpdatedAt),
	}
}

func (m *ChatMapper) SessionToModel(e *entity.ChatSession) *model.ChatSession {
	if e == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        e.Id,
		UserId:    e.UserId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: timeValue(e.UpdatedAt),
	}
}

func (m *ChatMapper) SessionsToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(e *model.ChatMessage) *entity.ChatMessage {
	if e == nil {
		return nil
	}

	var citations []entity.ChatCitation
	if err := json.Unmarshal(e.Citations, &citations); err != nil || citations == nil {
		citations = []entity.ChatCitation{}
	}

	return &entity.ChatMessage{
		Id:            e.Id,
		SessionId:     e.SessionId,
		Role:          e.Role,
		Content:       e.Content,
		Citations:     citations,
		NextQuestions: stringList(e.NextQuestions),
		CreatedAt:     e.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	if e == nil {
		return nil
	}

	citations := e.Citations
	if citations == nil {
		citations = []entity.ChatCitation{}
	}
	data, err := json.Marshal(citations)
	if err != nil {
		data = []byte("[]")
	}

	return &model.ChatMessage{
		Id:            e.Id,
		SessionId:     e.SessionId,
		Role:          e.Role,
		Content:       e.Content,
		Citations:     datatypes.JSON(data),
		NextQuestions: jsonList(e.NextQuestions),
		CreatedAt:     e.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, msg := range messages {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
