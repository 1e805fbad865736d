package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/pkg/dialogue/budget"
	"shop-assistant-be/pkg/dialogue/escalation"
	"shop-assistant-be/pkg/dialogue/product"
	"shop-assistant-be/pkg/dialogue/transaction"
	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/nlu"
	"shop-assistant-be/pkg/store"
)

// TrackingInfo is the tracking details card payload.
type TrackingInfo struct {
	OrderID           string `json:"order_id"`
	ProductName       string `json:"product_name"`
	Price             string `json:"price"`
	Carrier           string `json:"carrier"`
	TrackingNumber    string `json:"tracking_number"`
	EstimatedDelivery string `json:"estimated_delivery"`
	OrderDate         string `json:"order_date"`
	Status            string `json:"status"`
}

// Reply is one assistant turn as sent to the client.
type Reply struct {
	Response     string                `json:"response"`
	Buttons      []string              `json:"buttons,omitempty"`
	Intent       string                `json:"intent"`
	Entities     map[string]string     `json:"entities,omitempty"`
	Products     []store.ProductRecord `json:"products,omitempty"`
	Orders       []store.OrderSnapshot `json:"orders,omitempty"`
	Tracking     *TrackingInfo         `json:"tracking_info,omitempty"`
	DisplayType  string                `json:"display_type,omitempty"`
	Escalated    bool                  `json:"escalated,omitempty"`
	ResetContext bool                  `json:"reset_context,omitempty"`
}

// Responder produces the model-written text for replies. Every method
// can fail; the router falls back to deterministic text when one does.
type Responder interface {
	Answer(ctx context.Context, user store.Identity, sctx *store.Context, history []llm.Message, message, intent string) (string, error)
	Rephrase(ctx context.Context, instruction string) (string, error)
	PresentProducts(ctx context.Context, products []store.ProductRecord, query, message string) (string, error)
	Compare(ctx context.Context, products []store.ProductRecord, message string) (string, error)
	ExtractComparisonTargets(ctx context.Context, message string) ([]string, error)
	BuildSearchQuery(ctx context.Context, message string) (string, error)
	DescribeOrder(ctx context.Context, order store.OrderSnapshot) (string, error)
	DescribeTracking(ctx context.Context, order store.OrderSnapshot) (string, error)
	DescribeColors(ctx context.Context, products []store.ProductRecord, requested []string, message string) (string, error)
}

// Router owns one dialogue turn: it applies the fixed-priority cascade
// over the session phase, the understood intent, and the keyword
// rules, then delegates to the matching handler. The session context is
// mutated in place; the caller persists it afterwards.
type Router struct {
	oracle     nlu.Oracle
	finder     *product.Finder
	workflow   *transaction.Workflow
	escalation *escalation.Policy
	responder  Responder
	orders     transaction.Store
	rate       float64 // native currency per JPY for budget parsing
	logger     *log.Logger
}

func NewRouter(
	oracle nlu.Oracle,
	finder *product.Finder,
	workflow *transaction.Workflow,
	escalationPolicy *escalation.Policy,
	responder Responder,
	orders transaction.Store,
	nativePerYen float64,
	logger *log.Logger,
) *Router {
	if logger == nil {
		logger = log.Default()
	}
	if nativePerYen <= 0 {
		nativePerYen = 0.60
	}
	return &Router{
		oracle:     oracle,
		finder:     finder,
		workflow:   workflow,
		escalation: escalationPolicy,
		responder:  responder,
		orders:     orders,
		rate:       nativePerYen,
		logger:     logger,
	}
}

// Handle routes one inbound message. history is the recent transcript,
// oldest first, used by the generic responder and the handoff.
func (r *Router) Handle(ctx context.Context, sctx *store.Context, message string, history []llm.Message) *Reply {
	// The menu escape works from any phase and doesn't count as a turn
	if isMenuCommand(message) {
		sctx.ResetToMenu()
		return &Reply{
			Response:     "🏠 Main Menu - How can I help you today?",
			Buttons:      constant.MenuButtons,
			Intent:       constant.IntentMainMenu,
			Entities:     map[string]string{},
			ResetContext: true,
		}
	}

	sctx.TurnCount++

	if sctx.Phase == store.PhaseEscalationOffered {
		out := r.escalation.HandleResponse(ctx, sctx, message, history)
		if !out.Continue {
			return &Reply{
				Response:  out.Text,
				Buttons:   out.Buttons,
				Intent:    out.Intent,
				Entities:  map[string]string{},
				Escalated: out.Escalated,
			}
		}
		// Declined: the same message continues through normal routing
	}

	if r.escalation.ShouldOffer(sctx) {
		out := r.escalation.Offer(sctx)
		return &Reply{
			Response: out.Text,
			Buttons:  out.Buttons,
			Intent:   out.Intent,
			Entities: map[string]string{},
		}
	}

	if isWarrantyPolicyInquiry(message) {
		// Policy inquiry with no order attached; the ack step starts
		// the claim if the user proceeds
		sctx.Transaction = nil
		sctx.Phase = store.PhaseAwaitingWarrantyAck
		return &Reply{
			Response:    transaction.PolicyText(),
			Buttons:     []string{"Yes, proceed", "No, cancel"},
			Intent:      constant.IntentWarrantyPolicy,
			Entities:    map[string]string{},
			DisplayType: constant.DisplayPolicyView,
		}
	}

	// Explicit warranty claim phrasing jumps the queue regardless of
	// whatever flow the session was in
	if containsAny(message, constant.WarrantyClaimTriggers) {
		sctx.ClearPurchase()
		out, err := r.workflow.Enter(ctx, sctx, store.TransactionWarranty, nlu.ExtractOrderID(message))
		if err != nil {
			r.logger.Printf("[ROUTER] warranty entry failed: %v", err)
			return r.errorReply()
		}
		return r.replyFromOutcome(ctx, out, nil)
	}

	if shouldAnswerDirectly(message) {
		return r.answerWith(ctx, sctx, history, message, constant.IntentGeneralQuestion, map[string]string{})
	}

	res := r.understand(ctx, sctx, message)
	intent := res.Intent
	entities := res.Entities

	// Context bleed guards: an order question ends the purchase flow,
	// and stale product context is dropped once the topic moves on
	if intent == constant.IntentOrderStatus && sctx.InPurchaseFlow {
		sctx.ClearPurchase()
	}
	// Color and comparison follow-ups still consume the cache, so they
	// are exempt from the clear.
	if intent != constant.IntentProductInquiry &&
		!containsAny(message, constant.PurchaseKeywords) &&
		!containsAny(message, constant.ColorKeywords) &&
		!containsAny(message, constant.ComparisonKeywords) {
		sctx.ClearPurchase()
	}

	switch {
	case containsAny(message, constant.ComparisonKeywords):
		return r.handleComparison(ctx, sctx, history, message, intent, entities)

	case len(sctx.Products) > 0 && containsAny(message, constant.ColorKeywords):
		return r.handleColorInquiry(ctx, sctx, message, intent, entities)

	case intent == constant.IntentProductInquiry || sctx.InPurchaseFlow || containsAny(message, constant.PurchaseKeywords):
		return r.handlePurchase(ctx, sctx, message, intent, entities)

	case sctx.Phase == store.PhaseAwaitingConfirmation:
		out, err := r.workflow.HandleConfirmation(ctx, sctx, message)
		return r.outcomeOrError(ctx, out, err, entities)

	case sctx.Phase == store.PhaseAwaitingReason:
		out, err := r.workflow.HandleReason(ctx, sctx, message, entities["reason"])
		return r.outcomeOrError(ctx, out, err, entities)

	case sctx.Phase == store.PhaseAwaitingOrderID:
		out, err := r.workflow.HandleOrderID(ctx, sctx, message, entities["order_id"])
		return r.outcomeOrError(ctx, out, err, entities)

	case sctx.Phase == store.PhaseAwaitingWarrantyAck:
		out, err := r.workflow.HandleWarrantyAck(ctx, sctx, message)
		return r.outcomeOrError(ctx, out, err, entities)

	case intent == constant.IntentReturnRequest || intent == constant.IntentCancellationRequest || intent == constant.IntentWarrantyClaim:
		out, err := r.workflow.Enter(ctx, sctx, transactionType(intent), entities["order_id"])
		return r.outcomeOrError(ctx, out, err, entities)

	case intent == constant.IntentOrderStatus:
		return r.handleOrderStatus(ctx, sctx, history, message, intent, entities)

	default:
		return r.answerWith(ctx, sctx, history, message, intent, entities)
	}
}

// understand resolves the message, falling back to a general question
// when the oracle fails.
func (r *Router) understand(ctx context.Context, sctx *store.Context, message string) *nlu.Resolution {
	hint, _ := json.Marshal(sctx)
	res, err := r.oracle.Understand(ctx, message, string(hint))
	if err != nil {
		r.logger.Printf("[ROUTER] understanding failed, defaulting to general question: %v", err)
		return &nlu.Resolution{Intent: constant.IntentGeneralQuestion, Entities: map[string]string{}}
	}
	if res.Entities == nil {
		res.Entities = map[string]string{}
	}
	return res
}

func (r *Router) handlePurchase(ctx context.Context, sctx *store.Context, message, intent string, entities map[string]string) *Reply {
	sctx.InPurchaseFlow = true

	query, err := r.responder.BuildSearchQuery(ctx, message)
	if err != nil || strings.TrimSpace(query) == "" {
		query = message
	}
	sctx.LastSearchQuery = query

	constraint := budget.Parse(entities["max_price"], r.rate)

	products, err := r.finder.Find(ctx, query, constraint)
	if err != nil {
		r.logger.Printf("[ROUTER] product search failed: %v", err)
		products = nil
	}

	if len(products) == 0 {
		return r.handleNoProducts(query, intent, entities)
	}

	sctx.Products = products

	text, err := r.responder.PresentProducts(ctx, products, query, message)
	if err != nil {
		text = fmt.Sprintf("I found %d laptops matching your search. Here are the best options:", len(products))
	}

	buttons := append(contextButtons(query), "Main Menu")

	return &Reply{
		Response:    text,
		Buttons:     buttons,
		Intent:      intent,
		Entities:    entities,
		Products:    products,
		DisplayType: constant.DisplayProductGrid,
	}
}

// handleNoProducts answers an empty search with targeted suggestions
// keyed off the query's use case.
func (r *Router) handleNoProducts(query, intent string, entities map[string]string) *Reply {
	lowered := strings.ToLower(query)

	var text string
	var buttons []string
	switch {
	case containsAny(lowered, []string{"gaming", "game", "gamer"}):
		text = "Looking for a gaming laptop? Great choice! Could you tell me your budget range and any specific features you'd like, like graphics card or screen size?"
		buttons = []string{"Under ¥80000", "Under ¥120000", "RTX Graphics", "16GB RAM", "ASUS ROG", "MSI Gaming"}
	case containsAny(lowered, []string{"business", "work", "office"}):
		text = "For business use, I recommend looking at reliable brands with good battery life. What's your budget and do you need specific features like lightweight design or long battery life?"
		buttons = []string{"Under ¥60000", "Lightweight", "Long Battery", "Dell Latitude", "HP EliteBook", "Lenovo ThinkPad"}
	case containsAny(lowered, []string{"student", "school", "college"}):
		text = "Perfect for student life! What's your budget range? Student laptops usually offer great value with good performance for studying and entertainment."
		buttons = []string{"Under ¥50000", "Under ¥40000", "Portable", "Good Battery", "Chromebooks", "2-in-1 Laptops"}
	case containsAny(lowered, []string{"budget", "cheap", "affordable", "price"}):
		text = "Looking for a great value laptop? I can help! What's your maximum budget and what will you mainly use it for?"
		buttons = []string{"Under ¥40000", "Under ¥50000", "Basic Use", "Web Browsing", "Study", "Entertainment"}
	default:
		text = "I'd love to help you find the perfect laptop! Could you tell me more about what you're looking for? For example:\n• Your budget range\n• Preferred brand\n• What you'll use it for\n• Any specific features you need"
		buttons = []string{"Gaming", "Business", "Student", "Under ¥50000", "Dell", "HP", "Apple"}
	}

	return &Reply{Response: text, Buttons: buttons, Intent: intent, Entities: entities}
}

func (r *Router) handleComparison(ctx context.Context, sctx *store.Context, history []llm.Message, message, intent string, entities map[string]string) *Reply {
	names, err := r.responder.ExtractComparisonTargets(ctx, message)
	if err != nil || len(names) == 0 {
		names = brandWordFallback(message)
	}
	if len(names) < 2 {
		return r.answerWith(ctx, sctx, history,
			"I need at least two products to compare. Please specify which models you'd like to compare.",
			intent, entities)
	}

	var targets []store.ProductRecord
	for _, name := range names {
		rec, err := r.finder.Lookup(ctx, name)
		if err != nil {
			r.logger.Printf("[ROUTER] comparison lookup %q failed: %v", name, err)
			continue
		}
		if rec != nil {
			targets = append(targets, *rec)
		}
	}
	if len(targets) < 2 {
		return r.answerWith(ctx, sctx, history,
			"I couldn't find enough matching products to compare. Please be more specific about the models.",
			intent, entities)
	}

	text, err := r.responder.Compare(ctx, targets, message)
	if err != nil {
		var lines []string
		for _, p := range targets {
			lines = append(lines, fmt.Sprintf("• %s %s - ¥%d - %s - %s", p.Brand, p.Name, p.Price, p.RAM, p.Processor))
		}
		text = fmt.Sprintf("I found %d products for comparison:\n\n%s", len(targets), strings.Join(lines, "\n"))
	}

	return &Reply{
		Response:    text,
		Buttons:     []string{"Main Menu", "Purchase Laptop", "More Details"},
		Intent:      constant.IntentProductComparison,
		Entities:    entities,
		Products:    targets,
		DisplayType: constant.DisplayComparisonView,
	}
}

func (r *Router) handleColorInquiry(ctx context.Context, sctx *store.Context, message, intent string, entities map[string]string) *Reply {
	requested := extractColors(message)

	text, err := r.responder.DescribeColors(ctx, sctx.Products, requested, message)
	if err != nil {
		var lines []string
		for _, p := range sctx.Products {
			colors := p.Colors
			if colors == "" {
				colors = "Not specified"
			}
			lines = append(lines, fmt.Sprintf("%s %s: %s", p.Brand, p.Name, colors))
		}
		text = "Here are the available colors:\n" + strings.Join(lines, "\n")
	}

	buttons := append(contextButtons("color inquiry"), "Main Menu")

	return &Reply{
		Response:    text,
		Buttons:     buttons,
		Intent:      intent,
		Entities:    entities,
		Products:    sctx.Products,
		DisplayType: constant.DisplayProductGrid,
	}
}

func (r *Router) handleOrderStatus(ctx context.Context, sctx *store.Context, history []llm.Message, message, intent string, entities map[string]string) *Reply {
	lowered := strings.ToLower(message)

	// Button actions come back as "Track ORD-1001", "Cancel ORD-1002" etc.
	if orderID := nlu.ExtractOrderID(message); orderID != "" {
		switch {
		case strings.Contains(lowered, "track"):
			return r.handleTracking(ctx, sctx, history, orderID, entities)
		case strings.Contains(lowered, "warranty"):
			out, err := r.workflow.Enter(ctx, sctx, store.TransactionWarranty, orderID)
			return r.outcomeOrError(ctx, out, err, entities)
		case strings.Contains(lowered, "cancel"):
			out, err := r.workflow.Enter(ctx, sctx, store.TransactionCancellation, orderID)
			return r.outcomeOrError(ctx, out, err, entities)
		case strings.Contains(lowered, "return"):
			out, err := r.workflow.Enter(ctx, sctx, store.TransactionReturn, orderID)
			return r.outcomeOrError(ctx, out, err, entities)
		}
	}

	orderID := entities["order_id"]
	if orderID == "" {
		orderID = nlu.ExtractOrderID(message)
	}

	if orderID != "" {
		order, err := r.orders.Get(ctx, orderID)
		if err != nil {
			r.logger.Printf("[ROUTER] order fetch %s failed: %v", orderID, err)
			return r.errorReply()
		}
		if order == nil {
			return r.answerWith(ctx, sctx, history,
				fmt.Sprintf("Order %s not found. Please check your Order ID and try again.", orderID),
				constant.IntentOrderStatus, entities)
		}

		text, err := r.responder.DescribeOrder(ctx, *order)
		if err != nil || strings.TrimSpace(text) == "" {
			text = fmt.Sprintf("Here are the details for your order %s:", orderID)
		}

		return &Reply{
			Response:    text,
			Buttons:     statusButtons(order.Status),
			Intent:      intent,
			Entities:    entities,
			Orders:      []store.OrderSnapshot{*order},
			DisplayType: constant.DisplayOrderGrid,
		}
	}

	orders, err := r.orders.ListForUser(ctx, sctx.User.UserID)
	if err != nil {
		r.logger.Printf("[ROUTER] order list for %s failed: %v", sctx.User.UserID, err)
		return r.errorReply()
	}
	if len(orders) == 0 {
		return r.answerWith(ctx, sctx, history,
			"I couldn't find any orders for your account. Would you like to check with a specific Order ID?",
			constant.IntentOrderStatus, entities)
	}

	return &Reply{
		Response:    "Here are your recent orders:",
		Buttons:     []string{"Main Menu"},
		Intent:      intent,
		Entities:    entities,
		Orders:      orders,
		DisplayType: constant.DisplayOrderGrid,
	}
}

func (r *Router) handleTracking(ctx context.Context, sctx *store.Context, history []llm.Message, orderID string, entities map[string]string) *Reply {
	order, err := r.orders.Get(ctx, orderID)
	if err != nil {
		r.logger.Printf("[ROUTER] tracking fetch %s failed: %v", orderID, err)
		return r.errorReply()
	}
	if order == nil {
		return r.answerWith(ctx, sctx, history,
			fmt.Sprintf("Order %s not found. Please check your Order ID and try again.", orderID),
			constant.IntentOrderStatus, entities)
	}

	text, err := r.responder.DescribeTracking(ctx, *order)
	if err != nil {
		text = fmt.Sprintf("Here are your tracking details for order %s:\n\nStatus: %s\nCarrier: %s\nTracking #: %s\nEstimated Delivery: %s",
			order.OrderID, order.Status, valueOr(order.Carrier, "Not specified"),
			valueOr(order.TrackingNumber, "Not available"), valueOr(order.DeliveryDate, "Not specified"))
	}

	return &Reply{
		Response: text,
		Buttons:  []string{"Order Status", "Main Menu", "Contact Support"},
		Intent:   constant.IntentOrderTracking,
		Entities: entities,
		Tracking: &TrackingInfo{
			OrderID:           order.OrderID,
			ProductName:       order.ProductName,
			Price:             fmt.Sprintf("¥%d", order.Price),
			Carrier:           valueOr(order.Carrier, "Not specified"),
			TrackingNumber:    valueOr(order.TrackingNumber, "Not available"),
			EstimatedDelivery: valueOr(order.DeliveryDate, "Not specified"),
			OrderDate:         valueOr(order.OrderDate, "Not specified"),
			Status:            valueOr(order.Status, "Unknown"),
		},
		DisplayType: constant.DisplayTrackingDetails,
	}
}

// answerWith runs the generic assistant over the message (or a canned
// text standing in for it) and falls back to a static apology when the
// model is unavailable.
func (r *Router) answerWith(ctx context.Context, sctx *store.Context, history []llm.Message, message, intent string, entities map[string]string) *Reply {
	if !sctx.InPurchaseFlow {
		sctx.Products = nil
		sctx.LastSearchQuery = ""
	}

	text, err := r.responder.Answer(ctx, sctx.User, sctx, history, message, intent)
	if err != nil {
		r.logger.Printf("[ROUTER] generic answer failed: %v", err)
		text = "I apologize, but I'm having trouble processing your request right now. Please try again, or return to the main menu."
	}

	return &Reply{
		Response: text,
		Buttons:  []string{"Main Menu"},
		Intent:   intent,
		Entities: entities,
	}
}

func (r *Router) replyFromOutcome(ctx context.Context, out *transaction.Outcome, entities map[string]string) *Reply {
	if entities == nil {
		entities = map[string]string{}
	}

	text := out.Text
	if out.Instruction != "" {
		if rendered, err := r.responder.Rephrase(ctx, out.Instruction); err == nil && rendered != "" {
			text = rendered
		}
	}

	return &Reply{
		Response:    text,
		Buttons:     out.Buttons,
		Intent:      out.Intent,
		Entities:    entities,
		Orders:      out.Orders,
		DisplayType: out.DisplayType,
	}
}

func (r *Router) outcomeOrError(ctx context.Context, out *transaction.Outcome, err error, entities map[string]string) *Reply {
	if err != nil {
		r.logger.Printf("[ROUTER] workflow step failed: %v", err)
		return r.errorReply()
	}
	return r.replyFromOutcome(ctx, out, entities)
}

func (r *Router) errorReply() *Reply {
	return &Reply{
		Response: "I apologize, but I'm having trouble processing your request right now. Please try again, or return to the main menu.",
		Buttons:  []string{"Main Menu"},
		Intent:   constant.IntentUnknown,
		Entities: map[string]string{},
	}
}

// --- routing predicates ---

func isMenuCommand(message string) bool {
	lowered := strings.ToLower(strings.TrimSpace(message))
	for _, cmd := range constant.MenuCommands {
		if lowered == cmd {
			return true
		}
	}
	return false
}

func isWarrantyPolicyInquiry(message string) bool {
	lowered := strings.ToLower(message)
	return containsAny(lowered, constant.WarrantyPolicyKeywords) &&
		!containsAny(lowered, constant.WarrantyClaimKeywords)
}

var generalChatPatterns = compilePatterns(constant.GeneralChatPatterns)

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// shouldAnswerDirectly catches multi-line and open-ended questions that
// the structured handlers would only mangle.
func shouldAnswerDirectly(message string) bool {
	if strings.Count(message, "\n") >= 1 {
		return true
	}
	lowered := strings.ToLower(message)
	if strings.Contains(lowered, "which is better") {
		return true
	}
	for _, p := range generalChatPatterns {
		if p.MatchString(lowered) {
			return true
		}
	}
	return containsAny(lowered, constant.ComplexQuestionIndicators)
}

func transactionType(intent string) store.TransactionType {
	switch intent {
	case constant.IntentCancellationRequest:
		return store.TransactionCancellation
	case constant.IntentReturnRequest:
		return store.TransactionReturn
	case constant.IntentWarrantyClaim:
		return store.TransactionWarranty
	}
	return ""
}

// statusButtons picks the action row for a single order by status.
func statusButtons(status string) []string {
	switch strings.ToLower(status) {
	case constant.OrderStatusDelivered:
		return []string{"Return", "Warranty", "Track", "Main Menu"}
	case constant.OrderStatusShipped, constant.OrderStatusProcessing, constant.OrderStatusConfirmed:
		return []string{"Track", "Cancel", "Main Menu"}
	default:
		return []string{"Track", "Main Menu"}
	}
}

// contextButtons builds the quick-reply row under a product grid from
// whatever the query hinted at. Capped at eight.
func contextButtons(query string) []string {
	lowered := strings.ToLower(query)
	var buttons []string

	for _, brand := range []string{"dell", "hp", "lenovo", "apple", "asus", "acer"} {
		if strings.Contains(lowered, brand) {
			upper := strings.ToUpper(brand)
			buttons = append(buttons, upper+" Colors", upper+" Under ¥50000", upper+" 16GB RAM")
			break
		}
	}

	if strings.Contains(lowered, "ram") {
		buttons = append(buttons, "8GB RAM", "16GB RAM", "32GB RAM")
	}
	if strings.Contains(lowered, "ssd") || strings.Contains(lowered, "storage") {
		buttons = append(buttons, "256GB SSD", "512GB SSD", "1TB SSD")
	}
	if containsAny(lowered, []string{"price", "budget", "under", "¥", "yen"}) {
		buttons = append(buttons, "Under ¥50000", "Under ¥80000", "Under ¥100000")
	}

	for _, color := range []string{"blue", "red", "black", "silver", "gray", "white"} {
		if strings.Contains(lowered, color) {
			title := strings.ToUpper(color[:1]) + color[1:]
			buttons = append(buttons, title+" Laptops", title+" Options")
			break
		}
	}

	buttons = append(buttons, "Gaming Laptops", "Business Laptops", "Student Laptops", "All Brands")

	seen := map[string]bool{}
	var out []string
	for _, b := range buttons {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
		if len(out) == 8 {
			break
		}
	}
	return out
}

// brandWordFallback is the cheap comparison-target extraction used when
// the model can't produce one: any word carrying a major brand name.
func brandWordFallback(message string) []string {
	brands := []string{"lenovo", "dell", "hp", "apple", "asus", "acer", "msi"}
	var out []string
	for _, word := range strings.Fields(strings.ToLower(message)) {
		for _, brand := range brands {
			if strings.Contains(word, brand) {
				out = append(out, word)
				break
			}
		}
	}
	return out
}

func extractColors(message string) []string {
	lowered := strings.ToLower(message)
	var out []string
	for _, c := range constant.ExtractableColors {
		if strings.Contains(lowered, c) {
			out = append(out, c)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	lowered := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

func valueOr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
