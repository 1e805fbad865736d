package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) LogToEntity(l *model.ConversationLog) *entity.ConversationLog {
	if l == nil {
		return nil
	}
	var entities map[string]string
	if len(l.Entities) > 0 {
		_ = json.Unmarshal(l.Entities, &entities)
	}
	return &entity.ConversationLog{
		Id:        l.Id,
		SessionID: l.SessionID,
		UserId:    l.UserId,
		Role:      l.Role,
		Message:   l.Message,
		Intent:    l.Intent,
		Entities:  entities,
		CreatedAt: l.CreatedAt,
	}
}

func (m *ConversationMapper) LogToModel(l *entity.ConversationLog) *model.ConversationLog {
	if l == nil {
		return nil
	}
	var raw datatypes.JSON
	if len(l.Entities) > 0 {
		if data, err := json.Marshal(l.Entities); err == nil {
			raw = data
		}
	}
	return &model.ConversationLog{
		Id:        l.Id,
		SessionID: l.SessionID,
		UserId:    l.UserId,
		Role:      l.Role,
		Message:   l.Message,
		Intent:    l.Intent,
		Entities:  raw,
		CreatedAt: l.CreatedAt,
	}
}

func (m *ConversationMapper) LogsToEntities(logs []*model.ConversationLog) []*entity.ConversationLog {
	entities := make([]*entity.ConversationLog, len(logs))
	for i, l := range logs {
		entities[i] = m.LogToEntity(l)
	}
	return entities
}

func (m *ConversationMapper) EscalationToEntity(e *model.Escalation) *entity.Escalation {
	if e == nil {
		return nil
	}
	var transcript []entity.TranscriptEntry
	if len(e.Transcript) > 0 {
		_ = json.Unmarshal(e.Transcript, &transcript)
	}
	return &entity.Escalation{
		Id:         e.Id,
		SessionID:  e.SessionID,
		UserId:     e.UserId,
		Status:     entity.EscalationStatus(e.Status),
		Transcript: transcript,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (m *ConversationMapper) EscalationToModel(e *entity.Escalation) *model.Escalation {
	if e == nil {
		return nil
	}
	var raw datatypes.JSON
	if len(e.Transcript) > 0 {
		if data, err := json.Marshal(e.Transcript); err == nil {
			raw = data
		}
	}
	return &model.Escalation{
		Id:         e.Id,
		SessionID:  e.SessionID,
		UserId:     e.UserId,
		Status:     string(e.Status),
		Transcript: raw,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
