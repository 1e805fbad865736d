package service

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/pkg/mailer"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/dialogue/escalation"
	"shop-assistant-be/pkg/events"
	"shop-assistant-be/pkg/llm"
	pktNats "shop-assistant-be/pkg/nats"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// escalationHandoffService records a handoff request, notifies agents
// over the event bus, and emails the support desk.
type escalationHandoffService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	supportEmail   string
	logger         logger.ILogger
}

func NewEscalationHandoffService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	supportEmail string,
	log logger.ILogger,
) escalation.Handoff {
	return &escalationHandoffService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		supportEmail:   supportEmail,
		logger:         log,
	}
}

func (s *escalationHandoffService) Escalate(ctx context.Context, sessionID string, user store.Identity, transcript []llm.Message) error {
	uid, err := uuid.Parse(user.UserID)
	if err != nil {
		return err
	}
	if sessionID == "" {
		sessionID = user.UserID
	}

	entries := make([]entity.TranscriptEntry, len(transcript))
	for i, m := range transcript {
		entries[i] = entity.TranscriptEntry{Role: m.Role, Content: m.Content}
	}

	record := &entity.Escalation{
		Id:         uuid.New(),
		SessionID:  sessionID,
		UserId:     uid,
		Status:     entity.EscalationStatusPending,
		Transcript: entries,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EscalationRepository().Create(ctx, record); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.New("ESCALATION_REQUESTED", map[string]interface{}{
			"escalation_id": record.Id,
			"session_id":    sessionID,
			"user_id":       user.UserID,
			"username":      user.Username,
			"first_name":    user.FirstName,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ESCALATION", "Failed to publish ESCALATION_REQUESTED", map[string]interface{}{
				"escalation_id": record.Id.String(), "error": err.Error(),
			})
		}
	}

	// email is best effort; the pending row already queues the handoff
	if s.emailService != nil && s.supportEmail != "" {
		lines := make([]string, len(transcript))
		for i, m := range transcript {
			lines[i] = m.Role + ": " + m.Content
		}
		name := user.FirstName
		if name == "" {
			name = user.Username
		}
		if err := s.emailService.SendEscalationNotice(s.supportEmail, sessionID, name, lines); err != nil {
			s.logger.Warn("ESCALATION", "Failed to email support desk", map[string]interface{}{
				"escalation_id": record.Id.String(), "error": err.Error(),
			})
		}
	}

	s.logger.Info("ESCALATION", "Handoff queued", map[string]interface{}{
		"escalation_id": record.Id.String(), "user_id": user.UserID,
	})
	return nil
}
