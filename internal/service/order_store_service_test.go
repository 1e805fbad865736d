package service

import (
	"context"
	"testing"
	"time"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRefundAmount(t *testing.T) {
	assert.Equal(t, 149833, refundAmount(store.TransactionCancellation, 149833))
	assert.Equal(t, 149833, refundAmount(store.TransactionReturn, 149833))
	assert.Equal(t, 0, refundAmount(store.TransactionWarranty, 149833))
}

func TestStatusAfter(t *testing.T) {
	assert.Equal(t, "cancelled", statusAfter(store.TransactionCancellation))
	assert.Equal(t, "return_initiated", statusAfter(store.TransactionReturn))
	assert.Equal(t, "warranty_claimed", statusAfter(store.TransactionWarranty))
}

func TestSnapshotFromOrder(t *testing.T) {
	delivered := time.Date(2025, 8, 20, 14, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC)

	snap := snapshotFromOrder(&entity.Order{
		OrderID:        "ORD-1001",
		SKU:            "HP-PAV-15",
		ProductName:    "HP Pavilion 15",
		PriceYen:       149833,
		Status:         "delivered",
		OrderDate:      time.Date(2025, 8, 16, 9, 30, 0, 0, time.UTC),
		DeliveryDate:   &delivered,
		ReturnDeadline: &deadline,
		Carrier:        "Yamato",
		TrackingNumber: "YT4420187766",
	})

	assert.Equal(t, "ORD-1001", snap.OrderID)
	assert.Equal(t, "HP-PAV-15", snap.ProductID)
	assert.Equal(t, 149833, snap.Price)
	assert.Equal(t, "2025-08-16", snap.OrderDate)
	assert.Equal(t, "2025-08-20", snap.DeliveryDate)
	assert.Equal(t, "2025-09-19", snap.ReturnDeadline)
}

func TestCommitSendsReceiptEmail(t *testing.T) {
	userId := uuid.New()
	transactions := &fakeTransactionRepository{}
	mail := &fakeMailer{}
	factory := &fakeFactory{uow: &fakeUnitOfWork{
		users:        &fakeUserRepository{user: &entity.User{Id: userId, Email: "yuki@example.com"}},
		transactions: transactions,
		orders:       &fakeOrderRepository{},
	}}

	svc := NewOrderStoreService(factory, nil, nil, mail, nopLogger{})
	ref, err := svc.Commit(context.Background(), store.TransactionCancellation,
		store.Identity{UserID: userId.String(), FirstName: "Yuki"},
		&store.OrderSnapshot{OrderID: "ORD-1009", Price: 82500, Status: "processing"},
		"Changed my mind")

	assert.NoError(t, err)
	assert.Len(t, transactions.created, 1)
	assert.Equal(t, "yuki@example.com", mail.receiptTo)
	assert.Equal(t, ref, mail.receiptRef)
	assert.Equal(t, 82500, mail.receiptYen)
}

func TestSnapshotFromOrderWithoutDeliveryDates(t *testing.T) {
	snap := snapshotFromOrder(&entity.Order{
		OrderID:   "ORD-1009",
		Status:    "processing",
		OrderDate: time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Empty(t, snap.DeliveryDate)
	assert.Empty(t, snap.ReturnDeadline)
}
