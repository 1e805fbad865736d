package transaction

import (
	"context"
	"fmt"
	"log"
	"strings"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/pkg/nlu"
	"shop-assistant-be/pkg/store"
)

// Store is the order backend the workflow runs against. Commit writes
// the transaction record and returns the minted reference id.
type Store interface {
	Get(ctx context.Context, orderID string) (*store.OrderSnapshot, error)
	ListForUser(ctx context.Context, userID string) ([]store.OrderSnapshot, error)
	Commit(ctx context.Context, t store.TransactionType, user store.Identity, order *store.OrderSnapshot, reason string) (string, error)
}

// Outcome is one workflow step's result. Text is always usable as-is;
// Instruction, when set, lets the response generator rephrase it with
// conversational context.
type Outcome struct {
	Text          string
	Instruction   string
	Buttons       []string
	Orders        []store.OrderSnapshot
	DisplayType   string
	Intent        string
	TransactionID string
}

// Workflow drives the cancellation, return, and warranty claim state
// machines. It mutates the session context phases; persistence is the
// caller's concern.
type Workflow struct {
	orders Store
	logger *log.Logger
}

func NewWorkflow(orders Store, logger *log.Logger) *Workflow {
	if logger == nil {
		logger = log.Default()
	}
	return &Workflow{orders: orders, logger: logger}
}

// Enter starts (or resumes) a transaction. With no order id it parks
// the session in AwaitingOrderID; with one it resolves the order,
// gates on eligibility, and advances to the next waiting phase.
func (w *Workflow) Enter(ctx context.Context, sctx *store.Context, t store.TransactionType, orderID string) (*Outcome, error) {
	sctx.Transaction = &store.PendingTransaction{Type: t}

	if orderID == "" {
		sctx.Phase = store.PhaseAwaitingOrderID
		return &Outcome{
			Text:        fmt.Sprintf("I can help with your %s. Please provide your Order ID.", t),
			Instruction: fmt.Sprintf("The user wants to initiate a %s but hasn't provided an order ID. Ask for their order ID in a friendly way, 1-2 sentences.", t),
			Intent:      intentFor(t),
		}, nil
	}

	order, err := w.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("resolve order %s: %w", orderID, err)
	}
	if order == nil {
		sctx.ClearTransaction()
		return w.orderNotFound(orderID), nil
	}

	sctx.Transaction.Order = order
	status := strings.ToLower(order.Status)

	switch t {
	case store.TransactionCancellation:
		if status == constant.OrderStatusDelivered {
			sctx.ClearTransaction()
			return &Outcome{
				Text:        "This order has already been delivered. Cancellation is not possible for delivered orders. Would you like to initiate a return instead?",
				Intent:      constant.IntentCancellationRequest,
				Buttons:     []string{"Return", "Main Menu"},
			}, nil
		}
	case store.TransactionReturn:
		if status != constant.OrderStatusDelivered {
			sctx.ClearTransaction()
			return &Outcome{
				Text:   fmt.Sprintf("This order has status: %s. Returns are only possible for delivered items.", status),
				Intent: constant.IntentReturnRequest,
			}, nil
		}
	case store.TransactionWarranty:
		if status != constant.OrderStatusDelivered {
			sctx.ClearTransaction()
			return &Outcome{
				Text:   fmt.Sprintf("This order has status: %s. Warranty claims are only possible for delivered items.", status),
				Intent: constant.IntentWarrantyClaim,
			}, nil
		}
		// Warranty claims acknowledge the policy before the reason step
		sctx.Phase = store.PhaseAwaitingWarrantyAck
		return &Outcome{
			Text:        PolicyText(),
			Buttons:     []string{"Yes, proceed", "No, cancel"},
			Intent:      constant.IntentWarrantyPolicy,
			DisplayType: constant.DisplayPolicyView,
		}, nil
	}

	return w.askReason(sctx, order), nil
}

// HandleOrderID consumes the message answering an AwaitingOrderID
// prompt and re-enters the workflow with the resolved id.
func (w *Workflow) HandleOrderID(ctx context.Context, sctx *store.Context, message string, entityOrderID string) (*Outcome, error) {
	orderID := entityOrderID
	if orderID == "" {
		orderID = nlu.ExtractOrderID(message)
	}
	if orderID == "" {
		return &Outcome{
			Text:        "I couldn't find an Order ID in your message. Please provide your Order ID (e.g., ORD-1234).",
			Instruction: "The user was asked for an order id but the message doesn't contain one. Ask again, mention the ORD-1234 format.",
			Intent:      constant.IntentOrderStatus,
		}, nil
	}

	t := sctx.Transaction.Type
	return w.Enter(ctx, sctx, t, orderID)
}

// HandleWarrantyAck consumes the yes/no answer to the warranty policy
// view. A session that saw the policy without a resolved order (policy
// inquiry path) is routed on to the order id prompt.
func (w *Workflow) HandleWarrantyAck(ctx context.Context, sctx *store.Context, message string) (*Outcome, error) {
	if !containsAny(message, constant.WarrantyAckWords) {
		sctx.ClearTransaction()
		return &Outcome{
			Text:        "Warranty claim cancelled. Is there anything else I can help you with?",
			Instruction: "The user declined to proceed with the warranty claim. Acknowledge and offer further help.",
			Intent:      constant.IntentGeneralQuestion,
		}, nil
	}

	if sctx.Transaction == nil || sctx.Transaction.Order == nil {
		return w.Enter(ctx, sctx, store.TransactionWarranty, "")
	}

	return w.askReason(sctx, sctx.Transaction.Order), nil
}

// HandleReason consumes the reason answer, maps it onto the canonical
// list, and advances to confirmation.
func (w *Workflow) HandleReason(ctx context.Context, sctx *store.Context, message string, entityReason string) (*Outcome, error) {
	if sctx.Transaction == nil || sctx.Transaction.Order == nil {
		sctx.ClearTransaction()
		return &Outcome{
			Text:        "I'm not sure which order you're referring to. Please provide your Order ID again.",
			Instruction: "The transaction lost its order reference. Ask the user for the order ID again.",
			Intent:      constant.IntentUnknown,
		}, nil
	}

	raw := entityReason
	if raw == "" {
		raw = strings.TrimSpace(message)
	}
	reason := MapReason(raw, sctx.Transaction.Type)
	sctx.Transaction.Reason = reason
	sctx.Phase = store.PhaseAwaitingConfirmation

	return w.askConfirmation(sctx), nil
}

// HandleConfirmation consumes the final yes/no. A confirmation word
// commits the transaction; anything else abandons it.
func (w *Workflow) HandleConfirmation(ctx context.Context, sctx *store.Context, message string) (*Outcome, error) {
	if sctx.Transaction == nil || sctx.Transaction.Order == nil || sctx.Transaction.Reason == "" {
		sctx.ClearTransaction()
		return &Outcome{
			Text:        "I'm having trouble processing your request. Please start over.",
			Instruction: "The transaction state was incomplete at confirmation. Apologize and ask the user to start over.",
			Intent:      constant.IntentUnknown,
		}, nil
	}

	t := sctx.Transaction.Type
	order := sctx.Transaction.Order
	reason := sctx.Transaction.Reason

	if !containsAny(message, constant.ConfirmationWords) {
		sctx.ClearTransaction()
		return &Outcome{
			Text:        fmt.Sprintf("%s cancelled. Is there anything else I can help you with?", capitalize(string(t))),
			Instruction: fmt.Sprintf("The user declined the %s at the confirmation step. Acknowledge and offer further help.", t),
			Intent:      intentFor(t),
		}, nil
	}

	w.logger.Printf("[TXN] committing %s for order %s, reason: %s", t, order.OrderID, reason)

	txnID, err := w.orders.Commit(ctx, t, sctx.User, order, reason)
	if err != nil {
		// State is kept so the user can retry the confirmation
		return nil, fmt.Errorf("commit %s for %s: %w", t, order.OrderID, err)
	}

	sctx.ClearTransaction()

	var text string
	switch t {
	case store.TransactionCancellation:
		text = fmt.Sprintf("✅ Cancellation processed! Refund of ¥%d will be processed within 5-7 business days. Reference: %s", order.Price, txnID)
	case store.TransactionReturn:
		text = fmt.Sprintf("✅ Return approved! Refund of ¥%d will be processed after we receive the item. Reference: %s", order.Price, txnID)
	case store.TransactionWarranty:
		text = fmt.Sprintf("✅ Warranty claim submitted! Our team will contact you within 24 hours. Reference: %s", txnID)
	}

	return &Outcome{
		Text:          text,
		Intent:        intentFor(t),
		TransactionID: txnID,
		Buttons:       []string{"Main Menu"},
	}, nil
}

func (w *Workflow) askReason(sctx *store.Context, order *store.OrderSnapshot) *Outcome {
	t := sctx.Transaction.Type
	sctx.Phase = store.PhaseAwaitingReason

	reasons := Reasons(t)
	var numbered []string
	for i, r := range reasons {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, r))
	}

	return &Outcome{
		Text:        fmt.Sprintf("Please select the reason for %s:\n\n%s", t, strings.Join(numbered, "\n")),
		Instruction: fmt.Sprintf("The user wants to initiate a %s and you need to ask for the reason. Available reasons: %s. Ask them to pick one, 2-3 sentences.", t, strings.Join(reasons, ", ")),
		Buttons:     reasons,
		Orders:      []store.OrderSnapshot{*order},
		Intent:      intentFor(t),
		DisplayType: constant.DisplayOrderGrid,
	}
}

func (w *Workflow) askConfirmation(sctx *store.Context) *Outcome {
	t := sctx.Transaction.Type
	order := sctx.Transaction.Order
	reason := sctx.Transaction.Reason

	var text string
	switch t {
	case store.TransactionCancellation:
		text = fmt.Sprintf("Confirm cancellation for %s?\nReason: %s\nRefund amount: ¥%d\n\nPlease confirm with 'yes' or 'no'.", order.ProductName, reason, order.Price)
	case store.TransactionReturn:
		text = fmt.Sprintf("Confirm return for %s?\nReason: %s\nRefund amount: ¥%d\n\nPlease confirm with 'yes' or 'no'.", order.ProductName, reason, order.Price)
	case store.TransactionWarranty:
		text = fmt.Sprintf("Confirm warranty claim for %s?\nReason: %s\n\nPlease confirm with 'yes' or 'no'.", order.ProductName, reason)
	}

	return &Outcome{
		Text:    text,
		Buttons: []string{"Yes", "No"},
		Intent:  intentFor(t),
	}
}

func (w *Workflow) orderNotFound(orderID string) *Outcome {
	return &Outcome{
		Text:        fmt.Sprintf("Order %s not found. Please check your Order ID and try again.", orderID),
		Instruction: fmt.Sprintf("Order %s was not found. Tell the user and ask them to double-check the id.", orderID),
		Intent:      constant.IntentOrderStatus,
	}
}

// PolicyText renders the published warranty policy as a numbered list
// with the proceed question appended.
func PolicyText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s:\n\n", constant.WarrantyPolicyCompany, constant.WarrantyPolicyType)
	for i, line := range constant.WarrantyPolicyLines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	b.WriteString("\nWould you like to proceed with your warranty claim?")
	return b.String()
}

func intentFor(t store.TransactionType) string {
	switch t {
	case store.TransactionCancellation:
		return constant.IntentCancellationRequest
	case store.TransactionReturn:
		return constant.IntentReturnRequest
	case store.TransactionWarranty:
		return constant.IntentWarrantyClaim
	}
	return constant.IntentUnknown
}

func containsAny(message string, words []string) bool {
	lowered := strings.ToLower(message)
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
