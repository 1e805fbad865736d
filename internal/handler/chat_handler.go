package handler

import (
	"context"
	"os"

	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/pkg/serverutils"
	internalWS "shop-assistant-be/internal/websocket"
	"shop-assistant-be/pkg/events"
	pktNats "shop-assistant-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ChatHandler owns the websocket chat endpoint and bridges bus events
// into connected sockets.
type ChatHandler struct {
	chat       internalWS.ChatProcessor
	publisher  *pktNats.Publisher
	subscriber *pktNats.Subscriber
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewChatHandler(chat internalWS.ChatProcessor, pub *pktNats.Publisher, sub *pktNats.Subscriber, hub *internalWS.Hub, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		chat:       chat,
		publisher:  pub,
		subscriber: sub,
		hub:        hub,
		logger:     log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on the WS handshake, so the token may
	// arrive as a query param instead.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("ChatHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("ChatHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, c, userID, h.chat)
			h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// StartEventBridge binds the bus events that must reach open sockets.
// Escalations go to agents as a broadcast; transaction receipts go to
// the customer who owns them.
func (h *ChatHandler) StartEventBridge() error {
	if h.subscriber == nil {
		h.logger.Warn("ChatHandler", "No subscriber configured, event bridge disabled", nil)
		return nil
	}

	err := h.subscriber.Subscribe("ESCALATION_REQUESTED", "ws-escalations", func(ctx context.Context, event events.Event) error {
		h.hub.Broadcast(internalWS.Frame{Type: "escalation", Data: event.Payload()})
		return nil
	})
	if err != nil {
		return err
	}

	return h.subscriber.Subscribe("TRANSACTION_COMMITTED", "ws-transactions", func(ctx context.Context, event events.Event) error {
		raw, ok := event.Payload()["user_id"].(string)
		if !ok {
			return nil
		}
		uid, err := uuid.Parse(raw)
		if err != nil {
			return nil
		}
		h.hub.Send(uid, internalWS.Frame{Type: "transaction", Data: event.Payload()})
		return nil
	})
}

// Broadcast sends a system-wide announcement over the bus.
func (h *ChatHandler) Broadcast(c *fiber.Ctx) error {
	type Request struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and Message are required"})
	}

	h.hub.Broadcast(internalWS.Frame{Type: "announcement", Data: fiber.Map{
		"title":   req.Title,
		"message": req.Message,
	}})

	if h.publisher != nil {
		evt := events.New("SYSTEM_BROADCAST", map[string]interface{}{
			"title":   req.Title,
			"message": req.Message,
		})
		if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
			h.logger.Warn("ChatHandler", "Broadcast publish failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"status": "Broadcast Queued"})
}

// RegisterRoutes registers the websocket and broadcast routes.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)

	admin := router.Group("/admin")
	admin.Use(serverutils.JwtMiddleware)
	admin.Post("/broadcast", h.Broadcast)
}
