package unitofwork

import (
	"context"

	"shop-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProductRepository() contract.ProductRepository
	ProductEmbeddingRepository() contract.ProductEmbeddingRepository
	OrderRepository() contract.OrderRepository
	TransactionRepository() contract.TransactionRepository
	ConversationRepository() contract.ConversationRepository
	SessionContextRepository() contract.SessionContextRepository
	EscalationRepository() contract.EscalationRepository
}
