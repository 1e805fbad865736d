package transaction

import (
	"context"
	"strings"
	"testing"

	"shop-assistant-be/pkg/store"
)

type fakeStore struct {
	orders map[string]*store.OrderSnapshot

	committed     bool
	committedType store.TransactionType
	committedID   string
}

func (s *fakeStore) Get(ctx context.Context, orderID string) (*store.OrderSnapshot, error) {
	return s.orders[orderID], nil
}

func (s *fakeStore) ListForUser(ctx context.Context, userID string) ([]store.OrderSnapshot, error) {
	var out []store.OrderSnapshot
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *fakeStore) Commit(ctx context.Context, t store.TransactionType, user store.Identity, order *store.OrderSnapshot, reason string) (string, error) {
	s.committed = true
	s.committedType = t
	s.committedID = NewID(t)
	return s.committedID, nil
}

func newFixture() (*Workflow, *fakeStore, *store.Context) {
	orders := &fakeStore{orders: map[string]*store.OrderSnapshot{
		"ORD-1001": {OrderID: "ORD-1001", ProductName: "HP Pavilion Gaming Laptop", Price: 149833, Status: "Delivered"},
		"ORD-1005": {OrderID: "ORD-1005", ProductName: "APPLE 2020 Macbook Air M1", Price: 241638, Status: "Confirmed"},
	}}
	sctx := store.NewContext(store.Identity{UserID: "u1", Username: "kenji"})
	return NewWorkflow(orders, nil), orders, sctx
}

func TestEnterWithoutOrderID(t *testing.T) {
	w, _, sctx := newFixture()

	out, err := w.Enter(context.Background(), sctx, store.TransactionReturn, "")
	if err != nil {
		t.Fatal(err)
	}
	if sctx.Phase != store.PhaseAwaitingOrderID {
		t.Errorf("phase = %s", sctx.Phase)
	}
	if !strings.Contains(out.Text, "Order ID") {
		t.Errorf("text = %q", out.Text)
	}
}

func TestCancellationOfDeliveredSuggestsReturn(t *testing.T) {
	w, _, sctx := newFixture()

	out, err := w.Enter(context.Background(), sctx, store.TransactionCancellation, "ORD-1001")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Text, "return instead") {
		t.Errorf("should suggest a return, got %q", out.Text)
	}
	if sctx.Phase != store.PhaseIdle || sctx.Transaction != nil {
		t.Errorf("transaction should be cleared: phase=%s", sctx.Phase)
	}
}

func TestReturnRequiresDelivered(t *testing.T) {
	w, _, sctx := newFixture()

	out, err := w.Enter(context.Background(), sctx, store.TransactionReturn, "ORD-1005")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Text, "only possible for delivered") {
		t.Errorf("text = %q", out.Text)
	}
	if sctx.Transaction != nil {
		t.Error("transaction should be cleared")
	}
}

func TestWarrantyShowsPolicyBeforeReason(t *testing.T) {
	w, _, sctx := newFixture()

	out, err := w.Enter(context.Background(), sctx, store.TransactionWarranty, "ORD-1001")
	if err != nil {
		t.Fatal(err)
	}
	if sctx.Phase != store.PhaseAwaitingWarrantyAck {
		t.Errorf("phase = %s", sctx.Phase)
	}
	if out.DisplayType != "policy_view" || !strings.Contains(out.Text, "1-year warranty") {
		t.Errorf("policy view expected, got %+v", out)
	}
}

func TestWarrantyAckWithoutOrderAsksForID(t *testing.T) {
	w, _, sctx := newFixture()
	sctx.Phase = store.PhaseAwaitingWarrantyAck
	sctx.Transaction = nil

	out, err := w.HandleWarrantyAck(context.Background(), sctx, "yes, proceed")
	if err != nil {
		t.Fatal(err)
	}
	if sctx.Phase != store.PhaseAwaitingOrderID {
		t.Errorf("phase = %s", sctx.Phase)
	}
	if !strings.Contains(out.Text, "Order ID") {
		t.Errorf("text = %q", out.Text)
	}
}

func TestFullReturnFlow(t *testing.T) {
	w, orders, sctx := newFixture()
	ctx := context.Background()

	out, err := w.Enter(ctx, sctx, store.TransactionReturn, "ORD-1001")
	if err != nil {
		t.Fatal(err)
	}
	if sctx.Phase != store.PhaseAwaitingReason {
		t.Fatalf("phase = %s", sctx.Phase)
	}
	if len(out.Orders) != 1 || out.DisplayType != "order_grid" {
		t.Errorf("expected order grid, got %+v", out)
	}

	out, err = w.HandleReason(ctx, sctx, "it arrived broken", "")
	if err != nil {
		t.Fatal(err)
	}
	if sctx.Transaction.Reason != "Faulty/Defective" {
		t.Errorf("reason = %q", sctx.Transaction.Reason)
	}
	if sctx.Phase != store.PhaseAwaitingConfirmation {
		t.Fatalf("phase = %s", sctx.Phase)
	}
	if !strings.Contains(out.Text, "Confirm return") || !strings.Contains(out.Text, "¥149833") {
		t.Errorf("confirmation text = %q", out.Text)
	}

	out, err = w.HandleConfirmation(ctx, sctx, "yes please")
	if err != nil {
		t.Fatal(err)
	}
	if !orders.committed || orders.committedType != store.TransactionReturn {
		t.Error("commit not recorded")
	}
	if !strings.HasPrefix(out.TransactionID, "REF-") {
		t.Errorf("transaction id = %q", out.TransactionID)
	}
	if !strings.Contains(out.Text, out.TransactionID) {
		t.Errorf("reference missing from %q", out.Text)
	}
	if sctx.Phase != store.PhaseIdle || sctx.Transaction != nil {
		t.Error("context not cleaned up after commit")
	}
}

func TestDeclinedConfirmationAbandons(t *testing.T) {
	w, orders, sctx := newFixture()
	ctx := context.Background()

	if _, err := w.Enter(ctx, sctx, store.TransactionCancellation, "ORD-1005"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.HandleReason(ctx, sctx, "changed my mind", ""); err != nil {
		t.Fatal(err)
	}

	out, err := w.HandleConfirmation(ctx, sctx, "no, forget it")
	if err != nil {
		t.Fatal(err)
	}
	if orders.committed {
		t.Error("declined transaction must not commit")
	}
	if !strings.Contains(out.Text, "cancelled") {
		t.Errorf("text = %q", out.Text)
	}
	if sctx.Transaction != nil || sctx.Phase != store.PhaseIdle {
		t.Error("context not cleared after decline")
	}
}

func TestMapReason(t *testing.T) {
	tests := []struct {
		in   string
		t    store.TransactionType
		want string
	}{
		{"it's broken", store.TransactionReturn, "Faulty/Defective"},
		{"you sent the wrong one", store.TransactionReturn, "Wrong item received"},
		{"not as described at all", store.TransactionReturn, "Item not as described"},
		{"i changed mind", store.TransactionCancellation, "Changed my mind"},
		{"battery dies fast", store.TransactionWarranty, "Battery issues"},
		{"screen flickers", store.TransactionWarranty, "Screen problems"},
		{"blah blah", store.TransactionReturn, "Other"},
	}
	for _, tt := range tests {
		if got := MapReason(tt.in, tt.t); got != tt.want {
			t.Errorf("MapReason(%q, %s) = %q, want %q", tt.in, tt.t, got, tt.want)
		}
	}
}

func TestNewID(t *testing.T) {
	id := NewID(store.TransactionCancellation)
	if !strings.HasPrefix(id, "CXL-") || len(id) != 12 {
		t.Errorf("cancellation id = %q", id)
	}
	if id := NewID(store.TransactionWarranty); !strings.HasPrefix(id, "WAR-") {
		t.Errorf("warranty id = %q", id)
	}
	if NewID(store.TransactionReturn) == NewID(store.TransactionReturn) {
		t.Error("ids must be unique")
	}
}
