package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/pkg/dialogue/escalation"
	"shop-assistant-be/pkg/dialogue/product"
	"shop-assistant-be/pkg/dialogue/transaction"
	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/nlu"
	"shop-assistant-be/pkg/store"
)

type fakeOracle struct {
	res    *nlu.Resolution
	err    error
	called bool
}

func (o *fakeOracle) Understand(ctx context.Context, message, hint string) (*nlu.Resolution, error) {
	o.called = true
	if o.err != nil {
		return nil, o.err
	}
	if o.res != nil {
		return o.res, nil
	}
	return &nlu.Resolution{Intent: constant.IntentGeneralQuestion, Entities: map[string]string{}}, nil
}

// fakeResponder errors on every method unless a scripted value is set,
// so tests exercise both the model path and the deterministic fallbacks.
type fakeResponder struct {
	answer         string
	searchQuery    string
	compareTargets []string
	orderSummary   string
}

var errNoModel = errors.New("model unavailable")

func (f *fakeResponder) Answer(ctx context.Context, user store.Identity, sctx *store.Context, history []llm.Message, message, intent string) (string, error) {
	if f.answer == "" {
		return "", errNoModel
	}
	return f.answer, nil
}

func (f *fakeResponder) Rephrase(ctx context.Context, instruction string) (string, error) {
	return "", errNoModel
}

func (f *fakeResponder) PresentProducts(ctx context.Context, products []store.ProductRecord, query, message string) (string, error) {
	return "", errNoModel
}

func (f *fakeResponder) Compare(ctx context.Context, products []store.ProductRecord, message string) (string, error) {
	return "", errNoModel
}

func (f *fakeResponder) ExtractComparisonTargets(ctx context.Context, message string) ([]string, error) {
	if f.compareTargets == nil {
		return nil, errNoModel
	}
	return f.compareTargets, nil
}

func (f *fakeResponder) BuildSearchQuery(ctx context.Context, message string) (string, error) {
	if f.searchQuery == "" {
		return "", errNoModel
	}
	return f.searchQuery, nil
}

func (f *fakeResponder) DescribeOrder(ctx context.Context, order store.OrderSnapshot) (string, error) {
	if f.orderSummary == "" {
		return "", errNoModel
	}
	return f.orderSummary, nil
}

func (f *fakeResponder) DescribeTracking(ctx context.Context, order store.OrderSnapshot) (string, error) {
	return "", errNoModel
}

func (f *fakeResponder) DescribeColors(ctx context.Context, products []store.ProductRecord, requested []string, message string) (string, error) {
	return "", errNoModel
}

type fakeOrders struct {
	orders map[string]store.OrderSnapshot
}

func (s *fakeOrders) Get(ctx context.Context, orderID string) (*store.OrderSnapshot, error) {
	o, ok := s.orders[nlu.NormalizeOrderID(orderID)]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *fakeOrders) ListForUser(ctx context.Context, userID string) ([]store.OrderSnapshot, error) {
	var out []store.OrderSnapshot
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *fakeOrders) Commit(ctx context.Context, t store.TransactionType, user store.Identity, order *store.OrderSnapshot, reason string) (string, error) {
	return transaction.NewID(t), nil
}

type fakeIndex struct {
	hits []product.Candidate
}

func (s *fakeIndex) Search(ctx context.Context, query string, topK int) ([]product.Candidate, error) {
	return s.hits, nil
}

func (s *fakeIndex) SearchByBrand(ctx context.Context, variants []string, topK int) ([]product.Candidate, error) {
	return nil, nil
}

type fakeHandoff struct {
	fail      bool
	called    bool
	sessionID string
}

func (h *fakeHandoff) Escalate(ctx context.Context, sessionID string, user store.Identity, transcript []llm.Message) error {
	h.called = true
	h.sessionID = sessionID
	if h.fail {
		return errors.New("no agents")
	}
	return nil
}

type routerFixture struct {
	router    *Router
	oracle    *fakeOracle
	responder *fakeResponder
	orders    *fakeOrders
	index     *fakeIndex
	handoff   *fakeHandoff
}

func newFixture() *routerFixture {
	oracle := &fakeOracle{}
	responder := &fakeResponder{}
	index := &fakeIndex{}
	handoff := &fakeHandoff{}
	orders := &fakeOrders{orders: map[string]store.OrderSnapshot{
		"ORD-1001": {
			OrderID: "ORD-1001", ProductID: "p1", ProductName: "HP Pavilion 15",
			Price: 149833, Status: constant.OrderStatusDelivered,
			OrderDate: "2026-08-01", Carrier: "Yamato", TrackingNumber: "YT2233",
			DeliveryDate: "2026-08-10",
		},
		"ORD-1005": {
			OrderID: "ORD-1005", ProductID: "p2", ProductName: "Macbook Air M2",
			Price: 241638, Status: constant.OrderStatusShipped,
			OrderDate: "2026-08-20", Carrier: "Sagawa", TrackingNumber: "SG9911",
		},
	}}

	finder := product.NewFinder(index, product.DefaultConfig(), nil)
	workflow := transaction.NewWorkflow(orders, nil)
	policy := escalation.NewPolicy(handoff, escalation.DefaultThreshold, nil)

	return &routerFixture{
		router:    NewRouter(oracle, finder, workflow, policy, responder, orders, 0.60, nil),
		oracle:    oracle,
		responder: responder,
		orders:    orders,
		index:     index,
		handoff:   handoff,
	}
}

func newSession() *store.Context {
	return store.NewContext(store.Identity{UserID: "u1", Username: "kenji", FirstName: "Kenji"})
}

func hit(id, name string, priceJPY int) product.Candidate {
	return product.Candidate{
		ID:    id,
		Score: 0.85,
		Metadata: map[string]interface{}{
			"product_id": id,
			"name":       name,
			"brand":      "Dell",
			"price":      float64(priceJPY) * 0.60,
			"rating":     4.4,
			"ram":        "16GB",
			"storage":    "512GB SSD",
			"processor":  "Core i7",
		},
	}
}

func TestMenuCommandResetsSession(t *testing.T) {
	f := newFixture()
	sctx := newSession()
	sctx.InPurchaseFlow = true
	sctx.TurnCount = 7
	sctx.Phase = store.PhaseAwaitingReason

	reply := f.router.Handle(context.Background(), sctx, "Main Menu", nil)

	if !reply.ResetContext {
		t.Fatal("menu command should flag a context reset")
	}
	if reply.Intent != constant.IntentMainMenu {
		t.Fatalf("intent = %s", reply.Intent)
	}
	if len(reply.Buttons) != len(constant.MenuButtons) {
		t.Fatalf("buttons = %v", reply.Buttons)
	}
	if sctx.TurnCount != 0 || sctx.InPurchaseFlow || sctx.Phase != store.PhaseIdle {
		t.Fatalf("session not reset: %+v", sctx)
	}
}

func TestPurchaseFlowCachesProductsAndCapsButtons(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentProductInquiry,
		Entities: map[string]string{"max_price": "under 200000"},
	}
	f.index.hits = []product.Candidate{
		hit("p1", "Dell XPS 13", 180000),
		hit("p2", "Dell Inspiron 16", 120000),
	}

	sctx := newSession()
	reply := f.router.Handle(context.Background(), sctx, "I want a dell laptop", nil)

	if reply.DisplayType != constant.DisplayProductGrid {
		t.Fatalf("display = %s", reply.DisplayType)
	}
	if len(reply.Products) != 2 || len(sctx.Products) != 2 {
		t.Fatalf("products not cached: reply %d session %d", len(reply.Products), len(sctx.Products))
	}
	if !sctx.InPurchaseFlow {
		t.Fatal("purchase flow flag not set")
	}
	if reply.Buttons[len(reply.Buttons)-1] != "Main Menu" {
		t.Fatalf("last button = %s", reply.Buttons[len(reply.Buttons)-1])
	}
	if len(reply.Buttons) > 9 {
		t.Fatalf("too many buttons: %v", reply.Buttons)
	}
}

func TestPurchaseFlowEmptySearchSuggestsByUseCase(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{Intent: constant.IntentProductInquiry, Entities: map[string]string{}}
	f.responder.searchQuery = "gaming laptop"

	reply := f.router.Handle(context.Background(), newSession(), "I need a gaming laptop", nil)

	if !strings.Contains(reply.Response, "gaming laptop") {
		t.Fatalf("response = %q", reply.Response)
	}
	if len(reply.Products) != 0 || reply.DisplayType != "" {
		t.Fatal("empty search should not render a product grid")
	}
	found := false
	for _, b := range reply.Buttons {
		if b == "RTX Graphics" {
			found = true
		}
	}
	if !found {
		t.Fatalf("want gaming suggestions, got %v", reply.Buttons)
	}
}

func TestOrderStatusButtonsDependOnStatus(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentOrderStatus,
		Entities: map[string]string{"order_id": "ORD-1001"},
	}

	reply := f.router.Handle(context.Background(), newSession(), "where is my order ORD-1001", nil)

	if reply.DisplayType != constant.DisplayOrderGrid {
		t.Fatalf("display = %s", reply.DisplayType)
	}
	want := []string{"Return", "Warranty", "Track", "Main Menu"}
	if len(reply.Buttons) != len(want) {
		t.Fatalf("buttons = %v", reply.Buttons)
	}
	for i, b := range want {
		if reply.Buttons[i] != b {
			t.Fatalf("buttons = %v, want %v", reply.Buttons, want)
		}
	}
}

func TestSingleOrderViewUsesModelDescription(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentOrderStatus,
		Entities: map[string]string{"order_id": "ORD-1001"},
	}
	f.responder.orderSummary = "Your HP Pavilion 15 arrived on August 10th. Anything else?"

	reply := f.router.Handle(context.Background(), newSession(), "where is my order ORD-1001", nil)

	if reply.Response != f.responder.orderSummary {
		t.Fatalf("response = %q", reply.Response)
	}
	if reply.DisplayType != constant.DisplayOrderGrid || len(reply.Orders) != 1 {
		t.Fatalf("want the order card, got %+v", reply)
	}
}

func TestTrackActionReturnsTrackingCard(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{Intent: constant.IntentOrderStatus, Entities: map[string]string{}}

	reply := f.router.Handle(context.Background(), newSession(), "Track ORD-1005", nil)

	if reply.Intent != constant.IntentOrderTracking {
		t.Fatalf("intent = %s", reply.Intent)
	}
	if reply.Tracking == nil || reply.Tracking.TrackingNumber != "SG9911" {
		t.Fatalf("tracking = %+v", reply.Tracking)
	}
	if reply.Tracking.Price != "¥241638" {
		t.Fatalf("price = %s", reply.Tracking.Price)
	}
	if reply.DisplayType != constant.DisplayTrackingDetails {
		t.Fatalf("display = %s", reply.DisplayType)
	}
}

func TestCancellationIntentEntersWorkflow(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentCancellationRequest,
		Entities: map[string]string{"order_id": "ORD-1005"},
	}

	sctx := newSession()
	reply := f.router.Handle(context.Background(), sctx, "cancel my order ORD-1005", nil)

	if sctx.Phase != store.PhaseAwaitingReason {
		t.Fatalf("phase = %s", sctx.Phase)
	}
	if reply.DisplayType != constant.DisplayOrderGrid || len(reply.Orders) != 1 {
		t.Fatalf("want the order card, got %+v", reply)
	}
}

func TestWarrantyPolicyInquiryShowsPolicyFirst(t *testing.T) {
	f := newFixture()
	sctx := newSession()

	reply := f.router.Handle(context.Background(), sctx, "what is your warranty policy?", nil)

	if reply.DisplayType != constant.DisplayPolicyView {
		t.Fatalf("display = %s", reply.DisplayType)
	}
	if sctx.Phase != store.PhaseAwaitingWarrantyAck {
		t.Fatalf("phase = %s", sctx.Phase)
	}
	if f.oracle.called {
		t.Fatal("policy inquiry should short-circuit before the oracle")
	}
}

func TestWarrantyClaimTriggerLeavesPurchaseFlow(t *testing.T) {
	f := newFixture()
	sctx := newSession()
	sctx.InPurchaseFlow = true
	sctx.Products = []store.ProductRecord{{ID: "p1"}}

	reply := f.router.Handle(context.Background(), sctx, "I want to file warranty for ORD-1001", nil)

	if sctx.InPurchaseFlow || len(sctx.Products) != 0 {
		t.Fatal("purchase context should be cleared")
	}
	// ORD-1001 is delivered, so the claim goes straight to the policy ack
	if sctx.Phase != store.PhaseAwaitingWarrantyAck {
		t.Fatalf("phase = %s", sctx.Phase)
	}
	if reply.DisplayType != constant.DisplayPolicyView {
		t.Fatalf("display = %s", reply.DisplayType)
	}
}

func TestEscalationOfferedAfterFourTurns(t *testing.T) {
	f := newFixture()
	sctx := newSession()
	sctx.TurnCount = 3

	reply := f.router.Handle(context.Background(), sctx, "still not working", nil)

	if reply.Intent != constant.IntentEscalationOffer {
		t.Fatalf("intent = %s", reply.Intent)
	}
	if sctx.Phase != store.PhaseEscalationOffered || !sctx.EscalationOffered {
		t.Fatalf("session = %+v", sctx)
	}

	accept := f.router.Handle(context.Background(), sctx, "yes please", nil)
	if !accept.Escalated || !f.handoff.called {
		t.Fatalf("handoff not run: %+v", accept)
	}
}

func TestEscalationDeclineContinuesRouting(t *testing.T) {
	f := newFixture()
	f.responder.answer = "Sure, here's how the keyboard backlight works."
	sctx := newSession()
	sctx.TurnCount = 4
	sctx.EscalationOffered = true
	sctx.Phase = store.PhaseEscalationOffered

	reply := f.router.Handle(context.Background(), sctx, "no, how do I turn on the keyboard light?", nil)

	if f.handoff.called {
		t.Fatal("decline must not escalate")
	}
	if reply.Response != f.responder.answer {
		t.Fatalf("declined message should route normally, got %q", reply.Response)
	}
	if sctx.Phase != store.PhaseIdle {
		t.Fatalf("phase = %s", sctx.Phase)
	}
}

func TestMultilineQuestionSkipsStructuredRouting(t *testing.T) {
	f := newFixture()
	f.responder.answer = "Here's a detailed answer."

	reply := f.router.Handle(context.Background(), newSession(), "I have a few questions:\n1. battery life?\n2. weight?", nil)

	if f.oracle.called {
		t.Fatal("multi-line messages should bypass the oracle")
	}
	if reply.Response != f.responder.answer {
		t.Fatalf("response = %q", reply.Response)
	}
}

func TestOrderStatusIntentClearsPurchaseContext(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentOrderStatus,
		Entities: map[string]string{"order_id": "ORD-1001"},
	}

	sctx := newSession()
	sctx.InPurchaseFlow = true
	sctx.Products = []store.ProductRecord{{ID: "p1"}}

	f.router.Handle(context.Background(), sctx, "check order ORD-1001", nil)

	if sctx.InPurchaseFlow || len(sctx.Products) != 0 {
		t.Fatal("order status should end the purchase flow")
	}
}

func TestUnrelatedQuestionClearsProductCache(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentProductInquiry,
		Entities: map[string]string{},
	}
	f.index.hits = []product.Candidate{hit("p1", "Dell XPS 13", 180000)}

	sctx := newSession()
	f.router.Handle(context.Background(), sctx, "I need a laptop", nil)
	if !sctx.InPurchaseFlow || len(sctx.Products) == 0 {
		t.Fatal("search turn should populate the purchase context")
	}

	f.oracle.res = &nlu.Resolution{Intent: constant.IntentGeneralQuestion, Entities: map[string]string{}}
	f.responder.answer = "I'm sorry to hear that. I can only help with laptops and orders though."

	reply := f.router.Handle(context.Background(), sctx, "my cat seems unwell today", nil)

	if sctx.InPurchaseFlow || len(sctx.Products) != 0 {
		t.Fatalf("stale purchase context survived: in_flow=%v products=%d", sctx.InPurchaseFlow, len(sctx.Products))
	}
	if reply.DisplayType == constant.DisplayProductGrid {
		t.Fatal("unrelated question must not run a product search")
	}
	if reply.Response != f.responder.answer {
		t.Fatalf("response = %q", reply.Response)
	}
}

func TestCancellationIntentInterruptsPurchaseFlow(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{
		Intent:   constant.IntentCancellationRequest,
		Entities: map[string]string{},
	}

	sctx := newSession()
	sctx.InPurchaseFlow = true
	sctx.Products = []store.ProductRecord{{ID: "p1"}}

	f.router.Handle(context.Background(), sctx, "I want to cancel my order", nil)

	if sctx.Phase != store.PhaseAwaitingOrderID {
		t.Fatalf("phase = %s, cancellation should enter the workflow", sctx.Phase)
	}
	if sctx.InPurchaseFlow || len(sctx.Products) != 0 {
		t.Fatal("cancellation should end the purchase flow")
	}
}

func TestComparisonLooksUpBothTargets(t *testing.T) {
	f := newFixture()
	f.responder.compareTargets = []string{"Dell XPS 13", "Dell Inspiron 16"}
	f.index.hits = []product.Candidate{hit("p1", "Dell XPS 13", 180000)}

	reply := f.router.Handle(context.Background(), newSession(), "compare dell xps vs inspiron", nil)

	if reply.Intent != constant.IntentProductComparison {
		t.Fatalf("intent = %s", reply.Intent)
	}
	if reply.DisplayType != constant.DisplayComparisonView {
		t.Fatalf("display = %s", reply.DisplayType)
	}
	if len(reply.Products) != 2 {
		t.Fatalf("products = %d", len(reply.Products))
	}
	if !strings.Contains(reply.Response, "Dell XPS 13") {
		t.Fatalf("fallback text should list the products, got %q", reply.Response)
	}
}

func TestColorInquiryUsesCachedProducts(t *testing.T) {
	f := newFixture()
	f.oracle.res = &nlu.Resolution{Intent: constant.IntentColorInquiry, Entities: map[string]string{}}

	sctx := newSession()
	sctx.InPurchaseFlow = true
	sctx.Products = []store.ProductRecord{
		{ID: "p1", Brand: "Dell", Name: "XPS 13", Colors: "Silver, Black"},
	}

	reply := f.router.Handle(context.Background(), sctx, "what colors does it come in?", nil)

	if !strings.Contains(reply.Response, "Silver, Black") {
		t.Fatalf("response = %q", reply.Response)
	}
	if len(reply.Products) != 1 {
		t.Fatalf("products = %d", len(reply.Products))
	}
}

func TestOracleFailureFallsBackToGeneralAnswer(t *testing.T) {
	f := newFixture()
	f.oracle.err = errors.New("timeout")
	f.responder.answer = "Happy to help with that."

	reply := f.router.Handle(context.Background(), newSession(), "can you help me", nil)

	if reply.Response != f.responder.answer {
		t.Fatalf("response = %q", reply.Response)
	}
	if reply.Intent != constant.IntentGeneralQuestion {
		t.Fatalf("intent = %s", reply.Intent)
	}
}
