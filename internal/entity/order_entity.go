package entity

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id             uuid.UUID
	OrderID        string // business key, ORD-1001
	UserId         uuid.UUID
	SKU            string
	ProductName    string
	PriceYen       int
	Status         string
	OrderDate      time.Time
	DeliveryDate   *time.Time
	ReturnDeadline *time.Time
	Carrier        string
	TrackingNumber string
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TransactionStatus string

const (
	TransactionStatusProcessed TransactionStatus = "processed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// TransactionRecord is one committed cancellation, return, or warranty
// claim. ReferenceID carries the customer-facing CXL-/REF-/WAR- id.
type TransactionRecord struct {
	Id          uuid.UUID
	ReferenceID string
	Type        string
	OrderID     string
	UserId      uuid.UUID
	Reason      string
	AmountYen   int
	RefundKey   string
	Status      TransactionStatus
	CreatedAt   time.Time
}
