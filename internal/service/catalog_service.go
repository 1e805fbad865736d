package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ICatalogService ingests products into the catalog and keeps their
// vector embeddings in sync. Upserts flow through an in-process queue
// so embedding generation never blocks the publisher.
type ICatalogService interface {
	Consume(ctx context.Context) error
	PublishUpsert(msg *dto.CatalogUpsertMessage) error
	Ingest(ctx context.Context, msg *dto.CatalogUpsertMessage) error
}

const yenPerNativeRate = 0.60

type catalogService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewCatalogService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) ICatalogService {
	return &catalogService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *catalogService) PublishUpsert(upsert *dto.CatalogUpsertMessage) error {
	payload, err := json.Marshal(upsert)
	if err != nil {
		return err
	}
	return cs.pubSub.Publish(cs.topicName, message.NewMessage(watermill.NewUUID(), payload))
}

func (cs *catalogService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *catalogService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CatalogUpsertMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal catalog message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.Ingest(ctx, &payload); err != nil {
		log.Printf("[ERROR] Failed to ingest product %s: %v", payload.SKU, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

// Ingest upserts the product row and its embedding in one transaction.
func (cs *catalogService) Ingest(ctx context.Context, payload *dto.CatalogUpsertMessage) error {
	if payload.SKU == "" {
		return fmt.Errorf("catalog message missing sku")
	}
	if payload.PriceYen <= 0 {
		return fmt.Errorf("catalog message for %s has invalid price %d", payload.SKU, payload.PriceYen)
	}

	document := buildProductDocument(payload)

	log.Printf("[INFO] Generating embedding for product %s (document length: %d)", payload.SKU, len(document))
	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return fmt.Errorf("generate embedding: %w", err)
	}

	now := time.Now()
	product := &entity.Product{
		Id:          uuid.New(),
		SKU:         payload.SKU,
		Brand:       payload.Brand,
		Name:        payload.Name,
		PriceYen:    payload.PriceYen,
		PriceNative: float64(payload.PriceYen) * yenPerNativeRate,
		RAM:         payload.RAM,
		Storage:     payload.Storage,
		Processor:   payload.Processor,
		OS:          payload.OS,
		Colors:      payload.Colors,
		Rating:      payload.Rating,
		Reviews:     payload.Reviews,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
		CreatedAt:   now,
	}

	productEmbedding := &entity.ProductEmbedding{
		Id:        uuid.New(),
		SKU:       payload.SKU,
		Document:  document,
		Embedding: res.Embedding.Values,
		CreatedAt: now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Upsert(ctx, product); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	if err := uow.ProductEmbeddingRepository().Upsert(ctx, productEmbedding); err != nil {
		return fmt.Errorf("upsert embedding: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	log.Printf("[INFO] Ingested product %s (%s %s)", payload.SKU, payload.Brand, payload.Name)
	return nil
}

// buildProductDocument flattens the product into the text that gets
// embedded. Field labels help the model anchor spec-style queries.
func buildProductDocument(p *dto.CatalogUpsertMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.Brand, p.Name)
	fmt.Fprintf(&b, "Brand: %s\n", p.Brand)
	fmt.Fprintf(&b, "Price: %d yen\n", p.PriceYen)
	if p.RAM != "" {
		fmt.Fprintf(&b, "RAM: %s\n", p.RAM)
	}
	if p.Storage != "" {
		fmt.Fprintf(&b, "Storage: %s\n", p.Storage)
	}
	if p.Processor != "" {
		fmt.Fprintf(&b, "Processor: %s\n", p.Processor)
	}
	if p.OS != "" {
		fmt.Fprintf(&b, "Operating System: %s\n", p.OS)
	}
	if p.Colors != "" {
		fmt.Fprintf(&b, "Colors: %s\n", p.Colors)
	}
	if p.Rating > 0 {
		fmt.Fprintf(&b, "Rating: %.1f (%d reviews)\n", p.Rating, p.Reviews)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	return b.String()
}
