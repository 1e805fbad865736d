package store

import "fmt"

// Phase is the single dialogue state a session can be in. Exactly one
// phase is active at a time; waiting phases tell the router which step
// handler owns the next inbound message.
type Phase string

const (
	PhaseIdle                 Phase = "IDLE"
	PhaseAwaitingOrderID      Phase = "AWAITING_ORDER_ID"
	PhaseAwaitingReason       Phase = "AWAITING_REASON"
	PhaseAwaitingConfirmation Phase = "AWAITING_CONFIRMATION"
	PhaseAwaitingWarrantyAck  Phase = "AWAITING_WARRANTY_ACK"
	PhaseEscalationOffered    Phase = "ESCALATION_OFFERED"
)

// TransactionType distinguishes the three after-sales workflows.
type TransactionType string

const (
	TransactionCancellation TransactionType = "cancellation"
	TransactionReturn       TransactionType = "return"
	TransactionWarranty     TransactionType = "warranty"
)

// Identity is the minimal user info the dialogue needs.
type Identity struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// ProductRecord is a catalog hit cached on the session so follow-up
// turns (colors, comparison) can refer back to it without re-searching.
type ProductRecord struct {
	ID          string  `json:"id"`
	Brand       string  `json:"brand"`
	Name        string  `json:"name"`
	Price       int     `json:"price"` // JPY
	PriceNative float64 `json:"price_native"`
	RAM         string  `json:"ram"`
	Storage     string  `json:"storage"`
	Processor   string  `json:"processor"`
	Colors      string  `json:"colors"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// OrderSnapshot is the order view the transaction workflow operates on.
type OrderSnapshot struct {
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Price          int    `json:"price"` // JPY
	Status         string `json:"status"`
	OrderDate      string `json:"order_date"`
	DeliveryDate   string `json:"delivery_date,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	ReturnDeadline string `json:"return_deadline,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// PendingTransaction accumulates the workflow inputs across turns.
// Order and Reason fill in as the waiting phases advance.
type PendingTransaction struct {
	Type   TransactionType `json:"type"`
	Order  *OrderSnapshot  `json:"order,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// Context is the full per-session dialogue state. It is owned by the
// session store; the router receives it, mutates it, and hands it back
// for persistence. Nothing in here is shared between sessions.
type Context struct {
	SessionID      string        `json:"session_id,omitempty"`
	User           Identity      `json:"user"`
	Phase          Phase         `json:"phase"`
	InPurchaseFlow bool          `json:"in_purchase_flow"`
	Transaction    *PendingTransaction `json:"transaction,omitempty"`

	// Product cache from the most recent search.
	Products        []ProductRecord `json:"products,omitempty"`
	LastSearchQuery string          `json:"last_search_query,omitempty"`

	TurnCount         int  `json:"turn_count"`
	EscalationOffered bool `json:"escalation_offered"`
	Escalated         bool `json:"escalated"`
}

// NewContext returns a fresh idle context for a user.
func NewContext(user Identity) *Context {
	return &Context{
		User:  user,
		Phase: PhaseIdle,
	}
}

// ResetToMenu wipes everything except the identity and session id.
// This is the "main menu" escape hatch and must always work regardless
// of phase.
func (c *Context) ResetToMenu() {
	*c = Context{SessionID: c.SessionID, User: c.User, Phase: PhaseIdle}
}

// ClearPurchase drops the purchase-flow residue (cached products and
// the last query) without touching any transaction in progress.
func (c *Context) ClearPurchase() {
	c.InPurchaseFlow = false
	c.Products = nil
	c.LastSearchQuery = ""
}

// ClearTransaction abandons any pending transaction and returns the
// session to idle if it was in a transaction waiting phase.
func (c *Context) ClearTransaction() {
	c.Transaction = nil
	switch c.Phase {
	case PhaseAwaitingOrderID, PhaseAwaitingReason, PhaseAwaitingConfirmation, PhaseAwaitingWarrantyAck:
		c.Phase = PhaseIdle
	}
}

// InTransaction reports whether a workflow is mid-flight.
func (c *Context) InTransaction() bool {
	switch c.Phase {
	case PhaseAwaitingOrderID, PhaseAwaitingReason, PhaseAwaitingConfirmation, PhaseAwaitingWarrantyAck:
		return true
	}
	return false
}

// Validate checks the phase/transaction invariants. A waiting phase
// without its accumulated inputs means the state machine was corrupted.
func (c *Context) Validate() error {
	switch c.Phase {
	case PhaseIdle, PhaseEscalationOffered:
		return nil
	case PhaseAwaitingOrderID:
		if c.Transaction == nil {
			return fmt.Errorf("phase %s with no pending transaction", c.Phase)
		}
	case PhaseAwaitingReason, PhaseAwaitingWarrantyAck:
		if c.Transaction == nil || c.Transaction.Order == nil {
			return fmt.Errorf("phase %s with no resolved order", c.Phase)
		}
	case PhaseAwaitingConfirmation:
		if c.Transaction == nil || c.Transaction.Order == nil || c.Transaction.Reason == "" {
			return fmt.Errorf("phase %s with incomplete transaction", c.Phase)
		}
	default:
		return fmt.Errorf("unknown phase %q", c.Phase)
	}
	return nil
}
