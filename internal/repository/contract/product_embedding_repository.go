package contract

import (
	"context"

	"shop-assistant-be/internal/entity"
)

// ScoredProduct is a semantic search hit: the product joined with its
// cosine similarity against the query vector.
type ScoredProduct struct {
	Product    *entity.Product
	Similarity float64
}

type ProductEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.ProductEmbedding) error
	DeleteBySKU(ctx context.Context, sku string) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*ScoredProduct, error)
	Count(ctx context.Context) (int64, error)
}
