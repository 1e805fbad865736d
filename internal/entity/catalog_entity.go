package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog laptop. PriceYen is the customer-facing JPY
// price; PriceNative is what the index stores.
type Product struct {
	Id          uuid.UUID
	SKU         string
	Brand       string
	Name        string
	PriceYen    int
	PriceNative float64
	RAM         string
	Storage     string
	Processor   string
	OS          string
	Colors      string
	Rating      float64
	Reviews     int
	ImageURL    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductEmbedding is the indexed document for one product.
type ProductEmbedding struct {
	Id        uuid.UUID
	SKU       string
	Document  string
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt time.Time
}
