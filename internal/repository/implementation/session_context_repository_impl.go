package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionContextRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionContextRepository(db *gorm.DB) contract.SessionContextRepository {
	return &SessionContextRepositoryImpl{db: db}
}

func (r *SessionContextRepositoryImpl) Find(ctx context.Context, sessionID string) (*store.Context, error) {
	var m model.SessionContext
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sessionContextFromJSON(m.Context)
}

func (r *SessionContextRepositoryImpl) Upsert(ctx context.Context, sessionID string, userID uuid.UUID, sctx *store.Context) error {
	raw, err := sessionContextToJSON(sctx)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"context", "updated_at"}),
	}).Create(&model.SessionContext{
		SessionID: sessionID,
		UserId:    userID,
		Context:   raw,
	}).Error
}

func sessionContextToJSON(sctx *store.Context) (datatypes.JSON, error) {
	raw, err := json.Marshal(sctx)
	if err != nil {
		return nil, fmt.Errorf("marshal session context: %w", err)
	}
	return raw, nil
}

func sessionContextFromJSON(raw datatypes.JSON) (*store.Context, error) {
	var sctx store.Context
	if err := json.Unmarshal(raw, &sctx); err != nil {
		return nil, fmt.Errorf("unmarshal session context: %w", err)
	}
	return &sctx, nil
}
