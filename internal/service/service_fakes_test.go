package service

import (
	"context"
	"encoding/json"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// In-memory unit of work so service behavior can be tested without a
// database. Only the repositories the tests touch are backed.

type fakeUnitOfWork struct {
	users        *fakeUserRepository
	sessionCtxs  *fakeSessionContextRepository
	transactions *fakeTransactionRepository
	orders       *fakeOrderRepository
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository { return u.users }
func (u *fakeUnitOfWork) ProductRepository() contract.ProductRepository {
	return nil
}
func (u *fakeUnitOfWork) ProductEmbeddingRepository() contract.ProductEmbeddingRepository {
	return nil
}
func (u *fakeUnitOfWork) OrderRepository() contract.OrderRepository { return u.orders }
func (u *fakeUnitOfWork) TransactionRepository() contract.TransactionRepository {
	return u.transactions
}
func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return nil
}
func (u *fakeUnitOfWork) SessionContextRepository() contract.SessionContextRepository {
	return u.sessionCtxs
}
func (u *fakeUnitOfWork) EscalationRepository() contract.EscalationRepository {
	return nil
}

type fakeUserRepository struct {
	user *entity.User
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return r.user, nil
}
func (r *fakeUserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

// fakeSessionContextRepository stores rows as JSON so tests cover the
// same serialization boundary the real repository crosses.
type fakeSessionContextRepository struct {
	rows map[string][]byte
}

func newFakeSessionContextRepository() *fakeSessionContextRepository {
	return &fakeSessionContextRepository{rows: map[string][]byte{}}
}

func (r *fakeSessionContextRepository) Find(ctx context.Context, sessionID string) (*store.Context, error) {
	raw, ok := r.rows[sessionID]
	if !ok {
		return nil, nil
	}
	var sctx store.Context
	if err := json.Unmarshal(raw, &sctx); err != nil {
		return nil, err
	}
	return &sctx, nil
}

func (r *fakeSessionContextRepository) Upsert(ctx context.Context, sessionID string, userID uuid.UUID, sctx *store.Context) error {
	raw, err := json.Marshal(sctx)
	if err != nil {
		return err
	}
	r.rows[sessionID] = raw
	return nil
}

type fakeTransactionRepository struct {
	created []*entity.TransactionRecord
}

func (r *fakeTransactionRepository) Create(ctx context.Context, record *entity.TransactionRecord) error {
	r.created = append(r.created, record)
	return nil
}
func (r *fakeTransactionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TransactionRecord, error) {
	return nil, nil
}
func (r *fakeTransactionRepository) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.TransactionRecord, error) {
	return r.created, nil
}

type fakeOrderRepository struct {
	statuses map[string]string
}

func (r *fakeOrderRepository) Create(ctx context.Context, order *entity.Order) error { return nil }
func (r *fakeOrderRepository) Update(ctx context.Context, order *entity.Order) error { return nil }
func (r *fakeOrderRepository) UpdateStatus(ctx context.Context, orderID string, status string) error {
	if r.statuses == nil {
		r.statuses = map[string]string{}
	}
	r.statuses[orderID] = status
	return nil
}
func (r *fakeOrderRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepository) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeMailer struct {
	receiptTo  string
	receiptRef string
	receiptYen int
}

func (m *fakeMailer) SendEscalationNotice(toEmail, sessionID, customerName string, transcript []string) error {
	return nil
}

func (m *fakeMailer) SendTransactionReceipt(toEmail, referenceID, kind string, amountYen int) error {
	m.receiptTo = toEmail
	m.receiptRef = referenceID
	m.receiptYen = amountYen
	return nil
}
