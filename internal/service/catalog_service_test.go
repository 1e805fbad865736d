package service

import (
	"context"
	"testing"

	"shop-assistant-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestIngestRejectsInvalidMessages(t *testing.T) {
	cs := NewCatalogService(nil, "catalog.upsert", nil, nil)

	err := cs.Ingest(context.Background(), &dto.CatalogUpsertMessage{PriceYen: 100000})
	assert.ErrorContains(t, err, "missing sku")

	err = cs.Ingest(context.Background(), &dto.CatalogUpsertMessage{SKU: "HP-PAV-15", PriceYen: 0})
	assert.ErrorContains(t, err, "invalid price")
}

func TestBuildProductDocument(t *testing.T) {
	doc := buildProductDocument(&dto.CatalogUpsertMessage{
		SKU:         "HP-PAV-15",
		Brand:       "HP",
		Name:        "HP Pavilion 15",
		PriceYen:    149833,
		RAM:         "16GB",
		Storage:     "512GB SSD",
		Colors:      "Silver, Blue",
		Rating:      4.3,
		Reviews:     1842,
		Description: "Balanced everyday laptop.",
	})

	assert.Contains(t, doc, "HP HP Pavilion 15")
	assert.Contains(t, doc, "Price: 149833 yen")
	assert.Contains(t, doc, "RAM: 16GB")
	assert.Contains(t, doc, "Colors: Silver, Blue")
	assert.Contains(t, doc, "Rating: 4.3 (1842 reviews)")
	assert.Contains(t, doc, "Balanced everyday laptop.")
	// unset specs stay out of the document
	assert.NotContains(t, doc, "Processor:")
	assert.NotContains(t, doc, "Operating System:")
}
