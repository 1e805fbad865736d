package mapper

import (
	"github.com/pgvector/pgvector-go"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ProductToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:          p.Id,
		SKU:         p.SKU,
		Brand:       p.Brand,
		Name:        p.Name,
		PriceYen:    p.PriceYen,
		PriceNative: p.PriceNative,
		RAM:         p.RAM,
		Storage:     p.Storage,
		Processor:   p.Processor,
		OS:          p.OS,
		Colors:      p.Colors,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *CatalogMapper) ProductToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:          p.Id,
		SKU:         p.SKU,
		Brand:       p.Brand,
		Name:        p.Name,
		PriceYen:    p.PriceYen,
		PriceNative: p.PriceNative,
		RAM:         p.RAM,
		Storage:     p.Storage,
		Processor:   p.Processor,
		OS:          p.OS,
		Colors:      p.Colors,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *CatalogMapper) ProductsToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ProductToEntity(p)
	}
	return entities
}

func (m *CatalogMapper) EmbeddingToEntity(e *model.ProductEmbedding) *entity.ProductEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ProductEmbedding{
		Id:        e.Id,
		SKU:       e.SKU,
		Document:  e.Document,
		Embedding: e.Embedding.Slice(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *CatalogMapper) EmbeddingToModel(e *entity.ProductEmbedding) *model.ProductEmbedding {
	if e == nil {
		return nil
	}
	return &model.ProductEmbedding{
		Id:        e.Id,
		SKU:       e.SKU,
		Document:  e.Document,
		Embedding: pgvector.NewVector(e.Embedding),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
