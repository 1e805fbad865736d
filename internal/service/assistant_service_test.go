package service

import (
	"context"
	"testing"
	"time"

	"shop-assistant-be/internal/repository/memory"
	"shop-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newAssistantFixture() (*assistantService, *fakeSessionContextRepository) {
	sessionCtxs := newFakeSessionContextRepository()
	factory := &fakeFactory{uow: &fakeUnitOfWork{sessionCtxs: sessionCtxs}}
	svc := NewAssistantService(factory, memory.NewSessionRepository(time.Hour), nil, 10, nopLogger{}).(*assistantService)
	return svc, sessionCtxs
}

func TestSessionStateSurvivesCacheLoss(t *testing.T) {
	svc, sessionCtxs := newAssistantFixture()
	identity := store.Identity{UserID: uuid.NewString(), Username: "yuki", FirstName: "Yuki"}

	stored := store.NewContext(identity)
	stored.SessionID = "sess-1"
	stored.Phase = store.PhaseAwaitingConfirmation
	stored.Transaction = &store.PendingTransaction{
		Type:   store.TransactionCancellation,
		Order:  &store.OrderSnapshot{OrderID: "ORD-1001", Status: "processing", Price: 82500},
		Reason: "Changed my mind",
	}
	stored.TurnCount = 3
	err := sessionCtxs.Upsert(context.Background(), "sess-1", uuid.New(), stored)
	assert.NoError(t, err)

	// The memory cache is empty, as after a process restart.
	sctx := svc.loadContext(context.Background(), "sess-1", identity)

	assert.Equal(t, store.PhaseAwaitingConfirmation, sctx.Phase)
	if assert.NotNil(t, sctx.Transaction) {
		assert.Equal(t, store.TransactionCancellation, sctx.Transaction.Type)
		assert.Equal(t, "ORD-1001", sctx.Transaction.Order.OrderID)
		assert.Equal(t, "Changed my mind", sctx.Transaction.Reason)
	}
	assert.Equal(t, 3, sctx.TurnCount)

	// And the reload seeds the cache for the next turn.
	cached, found := svc.sessions.Get("sess-1")
	assert.True(t, found)
	assert.Same(t, sctx, cached)
}

func TestInvalidStoredStateIsDiscarded(t *testing.T) {
	svc, sessionCtxs := newAssistantFixture()
	identity := store.Identity{UserID: uuid.NewString(), Username: "yuki"}

	// A waiting phase with no accumulated transaction is corrupt.
	stored := store.NewContext(identity)
	stored.Phase = store.PhaseAwaitingConfirmation
	err := sessionCtxs.Upsert(context.Background(), "sess-2", uuid.New(), stored)
	assert.NoError(t, err)

	sctx := svc.loadContext(context.Background(), "sess-2", identity)

	assert.Equal(t, store.PhaseIdle, sctx.Phase)
	assert.Nil(t, sctx.Transaction)
	assert.NoError(t, sctx.Validate())
}

func TestPersistContextOverwritesDurableRow(t *testing.T) {
	svc, sessionCtxs := newAssistantFixture()
	identity := store.Identity{UserID: uuid.NewString()}

	sctx := store.NewContext(identity)
	sctx.SessionID = "sess-3"
	sctx.InPurchaseFlow = true
	sctx.Products = []store.ProductRecord{{ID: "HP-PAV-15", Name: "HP Pavilion 15"}}
	svc.persistContext(context.Background(), "sess-3", uuid.New(), sctx)

	reloaded, err := sessionCtxs.Find(context.Background(), "sess-3")
	assert.NoError(t, err)
	if assert.NotNil(t, reloaded) {
		assert.True(t, reloaded.InPurchaseFlow)
		assert.Len(t, reloaded.Products, 1)
		assert.Equal(t, "HP Pavilion 15", reloaded.Products[0].Name)
	}
}
