package main

import (
	"context"
	"log"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/internal/service"
	"shop-assistant-be/pkg/embedding"
)

// SeedCatalog ingests the demo laptop catalog, embeddings included.
func SeedCatalog(ctx context.Context, uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) {
	catalog := service.NewCatalogService(nil, "", uowFactory, provider)

	products := []dto.CatalogUpsertMessage{
		{
			SKU: "HP-PAV-15", Brand: "HP", Name: "HP Pavilion 15", PriceYen: 149833,
			RAM: "16GB", Storage: "512GB SSD", Processor: "Intel Core i5-1335U", OS: "Windows 11",
			Colors: "Silver, Blue", Rating: 4.3, Reviews: 1842,
			Description: "Balanced everyday laptop for work and study with a bright 15.6 inch display.",
		},
		{
			SKU: "APL-MBA-M2", Brand: "Apple", Name: "Apple MacBook Air M2", PriceYen: 241638,
			RAM: "16GB", Storage: "512GB SSD", Processor: "Apple M2", OS: "macOS",
			Colors: "Midnight, Starlight, Silver, Space Gray", Rating: 4.8, Reviews: 5210,
			Description: "Thin and light with all day battery life, great for students and creators.",
		},
		{
			SKU: "LEN-IDEA-3", Brand: "Lenovo", Name: "Lenovo IdeaPad Slim 3", PriceYen: 82500,
			RAM: "8GB", Storage: "256GB SSD", Processor: "AMD Ryzen 5 7520U", OS: "Windows 11",
			Colors: "Arctic Grey", Rating: 4.1, Reviews: 964,
			Description: "Affordable student laptop that covers browsing, documents and online classes.",
		},
		{
			SKU: "LEN-LEG-5", Brand: "Lenovo", Name: "Lenovo Legion 5", PriceYen: 189000,
			RAM: "16GB", Storage: "1TB SSD", Processor: "AMD Ryzen 7 7735HS", OS: "Windows 11",
			Colors: "Storm Grey", Rating: 4.6, Reviews: 2310,
			Description: "Gaming laptop with RTX 4060 graphics and a 165Hz display.",
		},
		{
			SKU: "DEL-XPS-13", Brand: "Dell", Name: "Dell XPS 13", PriceYen: 219800,
			RAM: "16GB", Storage: "512GB SSD", Processor: "Intel Core i7-1360P", OS: "Windows 11",
			Colors: "Platinum Silver, Graphite", Rating: 4.5, Reviews: 3105,
			Description: "Premium ultrabook for business travel with a near borderless display.",
		},
		{
			SKU: "DEL-INS-15", Brand: "Dell", Name: "Dell Inspiron 15", PriceYen: 98600,
			RAM: "8GB", Storage: "512GB SSD", Processor: "Intel Core i5-1235U", OS: "Windows 11",
			Colors: "Carbon Black, Platinum Silver", Rating: 4.0, Reviews: 1577,
			Description: "Dependable home laptop with a full size keyboard and number pad.",
		},
		{
			SKU: "ASU-ROG-S16", Brand: "ASUS", Name: "ASUS ROG Strix G16", PriceYen: 264500,
			RAM: "32GB", Storage: "1TB SSD", Processor: "Intel Core i9-13980HX", OS: "Windows 11",
			Colors: "Eclipse Gray, Volt Green", Rating: 4.7, Reviews: 1890,
			Description: "High end gaming laptop with RTX 4070 graphics and aggressive cooling.",
		},
		{
			SKU: "ASU-ZEN-14", Brand: "ASUS", Name: "ASUS Zenbook 14 OLED", PriceYen: 159800,
			RAM: "16GB", Storage: "512GB SSD", Processor: "AMD Ryzen 7 8840HS", OS: "Windows 11",
			Colors: "Ponder Blue, Foggy Silver", Rating: 4.4, Reviews: 1260,
			Description: "Light business laptop with a vivid OLED screen and long battery life.",
		},
		{
			SKU: "ACE-ASP-5", Brand: "Acer", Name: "Acer Aspire 5", PriceYen: 76980,
			RAM: "8GB", Storage: "512GB SSD", Processor: "AMD Ryzen 5 7530U", OS: "Windows 11",
			Colors: "Steel Gray", Rating: 3.9, Reviews: 2046,
			Description: "Budget friendly all rounder for students and first time buyers.",
		},
		{
			SKU: "MSI-KAT-15", Brand: "MSI", Name: "MSI Katana 15", PriceYen: 139800,
			RAM: "16GB", Storage: "512GB SSD", Processor: "Intel Core i7-13620H", OS: "Windows 11",
			Colors: "Black", Rating: 4.2, Reviews: 1105,
			Description: "Entry gaming laptop with RTX 4050 graphics at a sharp price.",
		},
	}

	for _, p := range products {
		if err := catalog.Ingest(ctx, &p); err != nil {
			log.Printf("Error ingesting product '%s': %v", p.SKU, err)
		} else {
			log.Printf("Ingested product: %s (%s %s)", p.SKU, p.Brand, p.Name)
		}
	}
}
