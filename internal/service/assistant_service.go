package service

import (
	"context"
	"errors"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/memory"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/dialogue"
	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type IAssistantService interface {
	HandleMessage(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationLog, error)
	StartSession(ctx context.Context, userID string) (*dto.SessionResponse, error)
	Sessions(ctx context.Context, userID string) ([]*entity.SessionSummary, error)
	Orders(ctx context.Context, userID string) ([]*entity.Order, error)
	Transactions(ctx context.Context, userID string) ([]*entity.TransactionRecord, error)
}

type assistantService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessions     *memory.SessionRepository
	router       *dialogue.Router
	historyTurns int
	logger       logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	router *dialogue.Router,
	historyTurns int,
	log logger.ILogger,
) IAssistantService {
	if historyTurns <= 0 {
		historyTurns = 10
	}
	return &assistantService{
		uowFactory:   uowFactory,
		sessions:     sessions,
		router:       router,
		historyTurns: historyTurns,
		logger:       log,
	}
}

// HandleMessage runs one turn: resolve the user, load session state and
// recent history, route, then persist both sides of the exchange.
func (s *assistantService) HandleMessage(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: uid})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	identity := store.Identity{
		UserID:    user.Id.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
	}
	sctx := s.loadContext(ctx, req.SessionID, identity)

	history, err := s.loadHistory(ctx, req.SessionID)
	if err != nil {
		s.logger.Warn("ASSISTANT", "Failed to load history", map[string]interface{}{
			"session_id": req.SessionID, "error": err.Error(),
		})
		history = nil
	}

	reply := s.router.Handle(ctx, sctx, req.Message, history)
	s.sessions.Save(req.SessionID, sctx)

	s.persistContext(ctx, req.SessionID, uid, sctx)
	s.persistTurn(ctx, req.SessionID, uid, req.Message, reply)

	return &dto.ChatResponse{SessionID: req.SessionID, Reply: reply}, nil
}

// loadContext resolves the session state: memory cache first, then the
// durable row, then a fresh context. State that fails validation is
// discarded rather than fed to the router.
func (s *assistantService) loadContext(ctx context.Context, sessionID string, user store.Identity) *store.Context {
	sctx, found := s.sessions.Get(sessionID)
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		stored, err := uow.SessionContextRepository().Find(ctx, sessionID)
		if err != nil {
			s.logger.Warn("ASSISTANT", "Failed to load stored session", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
		sctx = stored
	}

	if sctx != nil {
		sctx.User = user
		if err := sctx.Validate(); err != nil {
			s.logger.Warn("ASSISTANT", "Discarding invalid session state", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
			sctx = nil
		}
	}

	if sctx == nil {
		sctx = store.NewContext(user)
		sctx.SessionID = sessionID
	}
	s.sessions.Save(sessionID, sctx)
	return sctx
}

// persistContext overwrites the durable session row. A write failure
// only costs continuity across a restart, so it is logged and absorbed.
func (s *assistantService) persistContext(ctx context.Context, sessionID string, userId uuid.UUID, sctx *store.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionContextRepository().Upsert(ctx, sessionID, userId, sctx); err != nil {
		s.logger.Warn("ASSISTANT", "Failed to persist session state", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (s *assistantService) loadHistory(ctx context.Context, sessionID string) ([]llm.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.ConversationRepository().FindRecent(ctx, sessionID, s.historyTurns)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, 0, len(logs))
	for _, l := range logs {
		history = append(history, llm.Message{Role: l.Role, Content: l.Message})
	}
	return history, nil
}

// persistTurn logs both turn sides; failures are logged, not surfaced,
// since the reply is already produced.
func (s *assistantService) persistTurn(ctx context.Context, sessionID string, userId uuid.UUID, message string, reply *dialogue.Reply) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	userLog := &entity.ConversationLog{
		Id:        uuid.New(),
		SessionID: sessionID,
		UserId:    userId,
		Role:      "user",
		Message:   message,
		Intent:    reply.Intent,
		Entities:  reply.Entities,
	}
	if err := uow.ConversationRepository().Create(ctx, userLog); err != nil {
		s.logger.Warn("ASSISTANT", "Failed to log user turn", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}

	assistantLog := &entity.ConversationLog{
		Id:        uuid.New(),
		SessionID: sessionID,
		UserId:    userId,
		Role:      "assistant",
		Message:   reply.Response,
		Intent:    reply.Intent,
	}
	if err := uow.ConversationRepository().Create(ctx, assistantLog); err != nil {
		s.logger.Warn("ASSISTANT", "Failed to log assistant turn", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (s *assistantService) History(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationLog, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().FindRecent(ctx, sessionID, limit)
}

// StartSession mints a new session id. The session only becomes durable
// once the first turn is logged.
func (s *assistantService) StartSession(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: uid})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	sessionID := uuid.NewString()
	s.sessions.GetOrCreate(sessionID, store.Identity{
		UserID:    user.Id.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
	})
	return &dto.SessionResponse{SessionID: sessionID}, nil
}

func (s *assistantService) Sessions(ctx context.Context, userID string) ([]*entity.SessionSummary, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().ListSessions(ctx, uid)
}

func (s *assistantService) Orders(ctx context.Context, userID string) ([]*entity.Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.OrderRepository().FindAllByUser(ctx, uid)
}

func (s *assistantService) Transactions(ctx context.Context, userID string) ([]*entity.TransactionRecord, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TransactionRepository().FindAllByUser(ctx, uid)
}
