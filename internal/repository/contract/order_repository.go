package contract

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, orderID string, status string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, record *entity.TransactionRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRecord, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.TransactionRecord, error)
}
