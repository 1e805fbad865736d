package store

import "testing"

func TestValidatePhaseInvariants(t *testing.T) {
	order := &OrderSnapshot{OrderID: "ORD-1001", Status: "shipped"}

	tests := []struct {
		name    string
		ctx     Context
		wantErr bool
	}{
		{"idle is always valid", Context{Phase: PhaseIdle}, false},
		{"awaiting order id needs transaction", Context{Phase: PhaseAwaitingOrderID}, true},
		{"awaiting order id with transaction", Context{Phase: PhaseAwaitingOrderID, Transaction: &PendingTransaction{Type: TransactionCancellation}}, false},
		{"awaiting reason needs order", Context{Phase: PhaseAwaitingReason, Transaction: &PendingTransaction{Type: TransactionReturn}}, true},
		{"awaiting reason with order", Context{Phase: PhaseAwaitingReason, Transaction: &PendingTransaction{Type: TransactionReturn, Order: order}}, false},
		{"awaiting confirmation needs reason", Context{Phase: PhaseAwaitingConfirmation, Transaction: &PendingTransaction{Type: TransactionReturn, Order: order}}, true},
		{"awaiting confirmation complete", Context{Phase: PhaseAwaitingConfirmation, Transaction: &PendingTransaction{Type: TransactionReturn, Order: order, Reason: "No Longer Needed"}}, false},
		{"unknown phase", Context{Phase: Phase("LIMBO")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResetToMenuKeepsIdentity(t *testing.T) {
	ctx := NewContext(Identity{UserID: "u1", Username: "kenji", FirstName: "Kenji"})
	ctx.Phase = PhaseAwaitingConfirmation
	ctx.Transaction = &PendingTransaction{Type: TransactionWarranty}
	ctx.Products = []ProductRecord{{ID: "p1"}}
	ctx.InPurchaseFlow = true
	ctx.TurnCount = 7
	ctx.EscalationOffered = true

	ctx.ResetToMenu()

	if ctx.User.Username != "kenji" {
		t.Fatalf("identity lost on reset: %+v", ctx.User)
	}
	if ctx.Phase != PhaseIdle || ctx.Transaction != nil || ctx.Products != nil || ctx.InPurchaseFlow || ctx.TurnCount != 0 || ctx.EscalationOffered {
		t.Errorf("reset left residue: %+v", ctx)
	}
}

func TestClearTransactionReturnsToIdle(t *testing.T) {
	ctx := NewContext(Identity{UserID: "u1"})
	ctx.Phase = PhaseAwaitingReason
	ctx.Transaction = &PendingTransaction{Type: TransactionReturn, Order: &OrderSnapshot{OrderID: "ORD-2"}}

	ctx.ClearTransaction()

	if ctx.Phase != PhaseIdle || ctx.Transaction != nil {
		t.Errorf("transaction not cleared: phase=%s tx=%+v", ctx.Phase, ctx.Transaction)
	}

	// Escalation offer is not a transaction phase and must survive.
	ctx.Phase = PhaseEscalationOffered
	ctx.ClearTransaction()
	if ctx.Phase != PhaseEscalationOffered {
		t.Errorf("escalation phase clobbered: %s", ctx.Phase)
	}
}
