package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID        string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	SKU            string     `gorm:"type:varchar(64);not null"`
	ProductName    string     `gorm:"type:varchar(255);not null"`
	PriceYen       int        `gorm:"not null"`
	Status         string     `gorm:"type:varchar(50);not null;index"`
	OrderDate      time.Time  `gorm:"not null"`
	DeliveryDate   *time.Time
	ReturnDeadline *time.Time
	Carrier        string    `gorm:"type:varchar(100)"`
	TrackingNumber string    `gorm:"type:varchar(100)"`
	ImageURL       string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Order) TableName() string {
	return "orders"
}

type TransactionRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenceID string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	Type        string    `gorm:"type:varchar(32);not null"`
	OrderID     string    `gorm:"type:varchar(32);not null;index"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason      string    `gorm:"type:varchar(255)"`
	AmountYen   int       `gorm:"default:0"`
	RefundKey   string    `gorm:"type:varchar(128)"`
	Status      string    `gorm:"type:varchar(32);not null;default:'processed'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (TransactionRecord) TableName() string {
	return "transaction_records"
}
