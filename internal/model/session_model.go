package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionContext is the durable copy of a dialogue context, one row per
// session, overwritten after every turn.
type SessionContext struct {
	SessionID string         `gorm:"type:varchar(64);primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Context   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (SessionContext) TableName() string {
	return "session_contexts"
}
