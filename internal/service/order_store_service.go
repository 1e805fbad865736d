package service

import (
	"context"
	"fmt"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/pkg/mailer"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/dialogue/transaction"
	"shop-assistant-be/pkg/events"
	pktNats "shop-assistant-be/pkg/nats"
	"shop-assistant-be/pkg/nlu"
	"shop-assistant-be/pkg/refund"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// orderStoreService backs the transaction workflow with the orders
// table, the refund gateway, and the event bus.
type orderStoreService struct {
	uowFactory     unitofwork.RepositoryFactory
	refunds        refund.Gateway
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	logger         logger.ILogger
}

func NewOrderStoreService(
	uowFactory unitofwork.RepositoryFactory,
	refunds refund.Gateway,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) transaction.Store {
	if refunds == nil {
		refunds = refund.NoopGateway{}
	}
	return &orderStoreService{
		uowFactory:     uowFactory,
		refunds:        refunds,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		logger:         log,
	}
}

func (s *orderStoreService) Get(ctx context.Context, orderID string) (*store.OrderSnapshot, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByOrderID{OrderID: nlu.NormalizeOrderID(orderID)})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return snapshotFromOrder(order), nil
}

func (s *orderStoreService) ListForUser(ctx context.Context, userID string) ([]store.OrderSnapshot, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAllByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	snapshots := make([]store.OrderSnapshot, len(orders))
	for i, o := range orders {
		snapshots[i] = *snapshotFromOrder(o)
	}
	return snapshots, nil
}

// Commit records the transaction, moves the order status, and issues
// the refund for cancellations and returns. The refund runs first so a
// gateway failure leaves the order untouched and the flow retryable.
func (s *orderStoreService) Commit(ctx context.Context, t store.TransactionType, user store.Identity, order *store.OrderSnapshot, reason string) (string, error) {
	uid, err := uuid.Parse(user.UserID)
	if err != nil {
		return "", fmt.Errorf("invalid user id %q: %w", user.UserID, err)
	}

	referenceID := transaction.NewID(t)

	var refundKey string
	if t == store.TransactionCancellation || t == store.TransactionReturn {
		refundKey, err = s.refunds.Refund(ctx, order.OrderID, int64(order.Price), reason)
		if err != nil {
			s.logger.Error("ORDER_STORE", "Refund failed", map[string]interface{}{
				"order_id": order.OrderID, "type": string(t), "error": err.Error(),
			})
			return "", err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	record := &entity.TransactionRecord{
		Id:          uuid.New(),
		ReferenceID: referenceID,
		Type:        string(t),
		OrderID:     order.OrderID,
		UserId:      uid,
		Reason:      reason,
		AmountYen:   refundAmount(t, order.Price),
		RefundKey:   refundKey,
		Status:      entity.TransactionStatusProcessed,
	}
	if err := uow.TransactionRepository().Create(ctx, record); err != nil {
		return "", err
	}

	if err := uow.OrderRepository().UpdateStatus(ctx, order.OrderID, statusAfter(t)); err != nil {
		return "", err
	}

	if err := uow.Commit(); err != nil {
		return "", err
	}

	if s.eventPublisher != nil {
		evt := events.New("TRANSACTION_COMMITTED", map[string]interface{}{
			"reference_id": referenceID,
			"type":         string(t),
			"order_id":     order.OrderID,
			"user_id":      user.UserID,
			"amount_yen":   record.AmountYen,
			"reason":       reason,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ORDER_STORE", "Failed to publish TRANSACTION_COMMITTED", map[string]interface{}{
				"reference_id": referenceID, "error": err.Error(),
			})
		}
	}

	s.sendReceipt(ctx, uid, referenceID, string(t), record.AmountYen)

	s.logger.Info("ORDER_STORE", "Transaction committed", map[string]interface{}{
		"reference_id": referenceID, "type": string(t), "order_id": order.OrderID,
	})

	return referenceID, nil
}

// sendReceipt emails the customer a confirmation. Best effort; the
// transaction row is already committed.
func (s *orderStoreService) sendReceipt(ctx context.Context, userId uuid.UUID, referenceID, kind string, amountYen int) {
	if s.emailService == nil {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil || user.Email == "" {
		return
	}
	if err := s.emailService.SendTransactionReceipt(user.Email, referenceID, kind, amountYen); err != nil {
		s.logger.Warn("ORDER_STORE", "Failed to email receipt", map[string]interface{}{
			"reference_id": referenceID, "error": err.Error(),
		})
	}
}

func refundAmount(t store.TransactionType, price int) int {
	if t == store.TransactionWarranty {
		return 0
	}
	return price
}

func statusAfter(t store.TransactionType) string {
	switch t {
	case store.TransactionCancellation:
		return "cancelled"
	case store.TransactionReturn:
		return "return_initiated"
	default:
		return "warranty_claimed"
	}
}

func snapshotFromOrder(o *entity.Order) *store.OrderSnapshot {
	snap := &store.OrderSnapshot{
		OrderID:        o.OrderID,
		ProductID:      o.SKU,
		ProductName:    o.ProductName,
		Price:          o.PriceYen,
		Status:         o.Status,
		OrderDate:      o.OrderDate.Format(dateLayout),
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		ImageURL:       o.ImageURL,
	}
	if o.DeliveryDate != nil {
		snap.DeliveryDate = o.DeliveryDate.Format(dateLayout)
	}
	if o.ReturnDeadline != nil {
		snap.ReturnDeadline = o.ReturnDeadline.Format(dateLayout)
	}
	return snap
}
