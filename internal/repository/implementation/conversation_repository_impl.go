package implementation

import (
	"context"
	"errors"
	"time"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/mapper"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/scope"
	"shop-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, log *entity.ConversationLog) error {
	m := r.mapper.LogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.LogToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindRecent(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.ConversationLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Scopes(scope.OrderByCreatedDesc).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	// reverse so callers get oldest first
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return r.mapper.LogsToEntities(models), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationLog, error) {
	var models []*model.ConversationLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.LogsToEntities(models), nil
}

func (r *ConversationRepositoryImpl) ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error) {
	var rows []struct {
		SessionID    string
		Turns        int
		LastActivity time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&model.ConversationLog{}).
		Select("session_id, COUNT(*) AS turns, MAX(created_at) AS last_activity").
		Where("user_id = ?", userID).
		Group("session_id").
		Order("last_activity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sessions := make([]*entity.SessionSummary, len(rows))
	for i, row := range rows {
		sessions[i] = &entity.SessionSummary{
			SessionID:    row.SessionID,
			Turns:        row.Turns,
			LastActivity: row.LastActivity,
		}
	}
	return sessions, nil
}

type EscalationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewEscalationRepository(db *gorm.DB) contract.EscalationRepository {
	return &EscalationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *EscalationRepositoryImpl) Create(ctx context.Context, escalation *entity.Escalation) error {
	m := r.mapper.EscalationToModel(escalation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*escalation = *r.mapper.EscalationToEntity(m)
	return nil
}

func (r *EscalationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EscalationStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Escalation{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *EscalationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Escalation, error) {
	var m model.Escalation
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EscalationToEntity(&m), nil
}

// FindAll returns escalations oldest first so agents work the queue in
// arrival order.
func (r *EscalationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Escalation, error) {
	var models []*model.Escalation
	query := r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	escalations := make([]*entity.Escalation, len(models))
	for i, m := range models {
		escalations[i] = r.mapper.EscalationToEntity(m)
	}
	return escalations, nil
}
