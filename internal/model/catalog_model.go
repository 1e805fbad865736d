package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Brand       string    `gorm:"type:varchar(100);index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PriceYen    int       `gorm:"not null"`
	PriceNative float64   `gorm:"not null"`
	RAM         string    `gorm:"type:varchar(50)"`
	Storage     string    `gorm:"type:varchar(50)"`
	Processor   string    `gorm:"type:varchar(100)"`
	OS          string    `gorm:"type:varchar(100)"`
	Colors      string    `gorm:"type:varchar(255)"`
	Rating      float64   `gorm:"default:0"`
	Reviews     int       `gorm:"default:0"`
	ImageURL    string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type ProductEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU       string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Document  string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (ProductEmbedding) TableName() string {
	return "product_embeddings"
}
