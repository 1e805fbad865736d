package contract

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, log *entity.ConversationLog) error
	// FindRecent returns the newest turns of a session, oldest first.
	FindRecent(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationLog, error)
	// ListSessions aggregates a user's sessions, most recent activity first.
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error)
}

// SessionContextRepository persists dialogue contexts between turns so
// a session survives cache eviction and process restarts.
type SessionContextRepository interface {
	Find(ctx context.Context, sessionID string) (*store.Context, error)
	Upsert(ctx context.Context, sessionID string, userID uuid.UUID, sctx *store.Context) error
}

type EscalationRepository interface {
	Create(ctx context.Context, escalation *entity.Escalation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EscalationStatus) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Escalation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Escalation, error)
}
