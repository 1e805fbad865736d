package bootstrap

import (
	"context"
	"log"
	"time"

	"shop-assistant-be/internal/config"
	"shop-assistant-be/internal/controller"
	"shop-assistant-be/internal/handler"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/pkg/mailer"
	"shop-assistant-be/internal/repository/memory"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/internal/service"
	"shop-assistant-be/internal/websocket"
	"shop-assistant-be/pkg/dialogue"
	"shop-assistant-be/pkg/dialogue/escalation"
	"shop-assistant-be/pkg/dialogue/product"
	"shop-assistant-be/pkg/dialogue/response"
	"shop-assistant-be/pkg/dialogue/transaction"
	"shop-assistant-be/pkg/embedding"
	"shop-assistant-be/pkg/llm/factory"
	"shop-assistant-be/pkg/nlu"
	"shop-assistant-be/pkg/refund"

	pktNats "shop-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// catalogTopic is the in-process queue for product ingestion.
const catalogTopic = "catalog.upsert"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	CatalogService service.ICatalogService

	// Exposed for the websocket route and for cmd tooling
	ChatHandler      *handler.ChatHandler
	WebSocketHub     *websocket.Hub
	AssistantService service.IAssistantService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Dialogue Engine
	searcher := service.NewProductSearcherService(uowFactory, embeddingProvider, sysLogger)

	finderCfg := product.DefaultConfig()
	finderCfg.TopK = cfg.Assistant.SearchTopK
	finderCfg.ScoreThreshold = cfg.Assistant.ScoreThreshold
	finderCfg.MatchThreshold = cfg.Assistant.MatchThreshold
	finderCfg.MaxResults = cfg.Assistant.MaxProducts
	finderCfg.NativePerYen = cfg.Assistant.NativePerYen
	finder := product.NewFinder(searcher, finderCfg, nil)

	var refundGateway refund.Gateway
	if cfg.Payment.MidtransServerKey != "" {
		refundGateway = refund.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.Production)
	}
	orderStore := service.NewOrderStoreService(uowFactory, refundGateway, natsPub, emailService, sysLogger)
	workflow := transaction.NewWorkflow(orderStore, nil)

	handoff := service.NewEscalationHandoffService(uowFactory, natsPub, emailService, cfg.SMTP.SupportEmail, sysLogger)
	policy := escalation.NewPolicy(handoff, cfg.Assistant.EscalationThreshold, nil)

	oracle := nlu.NewLLMOracle(llmProvider, nil)
	generator := response.NewGenerator(llmProvider, nil)

	router := dialogue.NewRouter(
		oracle,
		finder,
		workflow,
		policy,
		generator,
		orderStore,
		cfg.Assistant.NativePerYen,
		nil,
	)

	// 5. Session + Orchestration
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Assistant.SessionTTLMinutes) * time.Minute)
	assistantService := service.NewAssistantService(uowFactory, sessionRepo, router, cfg.Assistant.HistoryTurns, sysLogger)
	authService := service.NewAuthService(uowFactory, natsPub)

	catalogService := service.NewCatalogService(pubSub, catalogTopic, uowFactory, embeddingProvider)

	// 6. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	chatHandler := handler.NewChatHandler(assistantService, natsPub, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		if err := chatHandler.StartEventBridge(); err != nil {
			log.Printf("[WARN] Failed to start event bridge: %v", err)
		}
	}

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		AssistantController: controller.NewAssistantController(assistantService),

		CatalogService: catalogService,

		ChatHandler:      chatHandler,
		WebSocketHub:     wsHub,
		AssistantService: assistantService,
	}
}
