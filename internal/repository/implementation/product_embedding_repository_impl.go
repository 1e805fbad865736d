package implementation

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/mapper"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewProductEmbeddingRepository(db *gorm.DB) contract.ProductEmbeddingRepository {
	return &ProductEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *ProductEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ProductEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "embedding", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.EmbeddingToEntity(m)
	return nil
}

func (r *ProductEmbeddingRepositoryImpl) DeleteBySKU(ctx context.Context, sku string) error {
	return r.db.WithContext(ctx).Where("sku = ?", sku).Delete(&model.ProductEmbedding{}).Error
}

// SearchSimilar joins embeddings with their products and returns the
// nearest by cosine similarity. pgvector's <=> is cosine distance, so
// similarity is 1 - distance.
func (r *ProductEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		model.Product
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*, 1 - (product_embeddings.embedding <=> ?) as similarity", queryVector).
		Joins("JOIN product_embeddings ON product_embeddings.sku = products.sku").
		Where("products.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredProduct, len(results))
	for i, res := range results {
		product := res.Product
		scored[i] = &contract.ScoredProduct{
			Product:    r.mapper.ProductToEntity(&product),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *ProductEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProductEmbedding{}).Count(&count).Error
	return count, err
}
