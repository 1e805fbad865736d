package escalation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/store"
)

type fakeHandoff struct {
	called    bool
	err       error
	sessionID string
	user      store.Identity
}

func (h *fakeHandoff) Escalate(ctx context.Context, sessionID string, user store.Identity, transcript []llm.Message) error {
	h.called = true
	h.sessionID = sessionID
	h.user = user
	return h.err
}

func TestShouldOfferOnceAtThreshold(t *testing.T) {
	p := NewPolicy(&fakeHandoff{}, 4, nil)
	sctx := store.NewContext(store.Identity{UserID: "u1"})

	for turn := 1; turn <= 3; turn++ {
		sctx.TurnCount = turn
		if p.ShouldOffer(sctx) {
			t.Fatalf("offered too early at turn %d", turn)
		}
	}

	sctx.TurnCount = 4
	if !p.ShouldOffer(sctx) {
		t.Fatal("should offer at threshold")
	}

	p.Offer(sctx)
	sctx.TurnCount = 5
	if p.ShouldOffer(sctx) {
		t.Error("offer must fire only once per session")
	}
}

func TestOfferSetsPhase(t *testing.T) {
	p := NewPolicy(&fakeHandoff{}, 4, nil)
	sctx := store.NewContext(store.Identity{UserID: "u1"})

	out := p.Offer(sctx)
	if sctx.Phase != store.PhaseEscalationOffered || !sctx.EscalationOffered {
		t.Errorf("phase = %s, offered = %v", sctx.Phase, sctx.EscalationOffered)
	}
	if !strings.Contains(out.Text, "human agent") {
		t.Errorf("text = %q", out.Text)
	}
}

func TestOfferAbandonsPendingTransaction(t *testing.T) {
	p := NewPolicy(&fakeHandoff{}, 4, nil)
	sctx := store.NewContext(store.Identity{UserID: "u1"})
	sctx.Phase = store.PhaseAwaitingConfirmation
	sctx.Transaction = &store.PendingTransaction{
		Type:   store.TransactionCancellation,
		Order:  &store.OrderSnapshot{OrderID: "ORD-1001", Status: "processing"},
		Reason: "Changed my mind",
	}
	sctx.TurnCount = 4

	p.Offer(sctx)
	if sctx.Transaction != nil {
		t.Fatal("offer must abandon the pending transaction")
	}

	out := p.HandleResponse(context.Background(), sctx, "no, keep chatting", nil)
	if !out.Continue {
		t.Fatal("decline should fall through to normal routing")
	}
	if sctx.Phase != store.PhaseIdle || sctx.Transaction != nil {
		t.Fatalf("phase = %s, txn = %+v", sctx.Phase, sctx.Transaction)
	}
	if err := sctx.Validate(); err != nil {
		t.Fatalf("context invalid after declined offer: %v", err)
	}
}

func TestAcceptRunsHandoff(t *testing.T) {
	handoff := &fakeHandoff{}
	p := NewPolicy(handoff, 4, nil)
	sctx := store.NewContext(store.Identity{UserID: "u1", FirstName: "Kenji"})
	sctx.SessionID = "sess-42"
	sctx.Phase = store.PhaseEscalationOffered

	out := p.HandleResponse(context.Background(), sctx, "yes, connect me", nil)
	if !handoff.called {
		t.Fatal("handoff not invoked")
	}
	if handoff.user.FirstName != "Kenji" {
		t.Errorf("wrong identity passed: %+v", handoff.user)
	}
	if handoff.sessionID != "sess-42" {
		t.Errorf("handoff got session %q", handoff.sessionID)
	}
	if !out.Escalated || !sctx.Escalated {
		t.Error("escalated flags not set")
	}
	if sctx.Phase != store.PhaseIdle {
		t.Errorf("phase = %s", sctx.Phase)
	}
}

func TestHandoffFailureKeepsBot(t *testing.T) {
	handoff := &fakeHandoff{err: errors.New("desk unreachable")}
	p := NewPolicy(handoff, 4, nil)
	sctx := store.NewContext(store.Identity{UserID: "u1"})
	sctx.Phase = store.PhaseEscalationOffered

	out := p.HandleResponse(context.Background(), sctx, "yes", nil)
	if out.Escalated || sctx.Escalated {
		t.Error("failed handoff must not mark the session escalated")
	}
	if !strings.Contains(out.Text, "currently busy") {
		t.Errorf("text = %q", out.Text)
	}
}

func TestDeclineContinuesRouting(t *testing.T) {
	handoff := &fakeHandoff{}
	p := NewPolicy(handoff, 4, nil)
	sctx := store.NewContext(store.Identity{UserID: "u1"})
	sctx.Phase = store.PhaseEscalationOffered

	out := p.HandleResponse(context.Background(), sctx, "no thanks, keep chatting", nil)
	if handoff.called {
		t.Error("decline must not invoke handoff")
	}
	if !out.Continue {
		t.Error("decline should fall through to normal routing")
	}
	if sctx.Phase != store.PhaseIdle {
		t.Errorf("phase = %s", sctx.Phase)
	}
}
