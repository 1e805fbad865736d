package service

import (
	"context"
	"fmt"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/dialogue/product"
	"shop-assistant-be/pkg/embedding"
)

// productSearcherService is the catalog index behind the product
// finder: pgvector for semantic search, a plain brand filter for the
// metadata fallback.
type productSearcherService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewProductSearcherService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) product.Searcher {
	return &productSearcherService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (s *productSearcherService) Search(ctx context.Context, query string, topK int) ([]product.Candidate, error) {
	resp, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ProductEmbeddingRepository().SearchSimilar(ctx, resp.Embedding.Values, topK)
	if err != nil {
		return nil, err
	}

	candidates := make([]product.Candidate, 0, len(scored))
	for _, hit := range scored {
		candidates = append(candidates, product.Candidate{
			ID:       hit.Product.SKU,
			Score:    hit.Similarity,
			Metadata: productMetadata(hit.Product),
		})
	}
	return candidates, nil
}

func (s *productSearcherService) SearchByBrand(ctx context.Context, brandVariants []string, topK int) ([]product.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ByBrandIn{Brands: brandVariants},
		specification.OrderBy{Field: "rating", Desc: true},
		specification.Pagination{Limit: topK},
	)
	if err != nil {
		return nil, err
	}

	candidates := make([]product.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, product.Candidate{
			ID:       p.SKU,
			Score:    1,
			Metadata: productMetadata(p),
		})
	}
	return candidates, nil
}

func productMetadata(p *entity.Product) map[string]interface{} {
	return map[string]interface{}{
		"product_id":    p.SKU,
		"brand":         p.Brand,
		"name":          p.Name,
		"price":         p.PriceNative,
		"ram":           p.RAM,
		"storage":       p.Storage,
		"processor":     p.Processor,
		"os":            p.OS,
		"colors":        p.Colors,
		"rating":        p.Rating,
		"no_of_reviews": p.Reviews,
		"img_link":      p.ImageURL,
	}
}
