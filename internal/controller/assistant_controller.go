package controller

import (
	"strconv"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/serverutils"
	"shop-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	Sessions(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Orders(ctx *fiber.Ctx) error
	Transactions(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant", serverutils.JwtMiddleware)
	h.Post("/chat", c.Chat)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions", c.Sessions)
	h.Get("/history/:session_id", c.History)
	h.Get("/orders", c.Orders)
	h.Get("/transactions", c.Transactions)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("user_id").(string)
	if !ok || userID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChatRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.HandleMessage(ctx.Context(), userID, &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("user_id").(string)
	if !ok || userID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	res, err := c.service.StartSession(ctx.Context(), userID)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Session created", res)
}

func (c *assistantController) Sessions(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("user_id").(string)
	if !ok || userID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	sessions, err := c.service.Sessions(ctx.Context(), userID)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}

	res := make([]dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		res = append(res, dto.SessionResponse{
			SessionID:    sess.SessionID,
			Turns:        sess.Turns,
			LastActivity: sess.LastActivity.Format("2006-01-02 15:04:05"),
		})
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "session_id is required")
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	logs, err := c.service.History(ctx.Context(), sessionID, limit)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", logs)
}

func (c *assistantController) Orders(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("user_id").(string)
	if !ok || userID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	orders, err := c.service.Orders(ctx.Context(), userID)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}

	res := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func (c *assistantController) Transactions(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("user_id").(string)
	if !ok || userID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	txs, err := c.service.Transactions(ctx.Context(), userID)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}

	res := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		res = append(res, dto.TransactionResponse{
			ReferenceID: t.ReferenceID,
			Type:        t.Type,
			OrderID:     t.OrderID,
			Reason:      t.Reason,
			AmountYen:   t.AmountYen,
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "OK", res)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	res := dto.OrderResponse{
		OrderID:        o.OrderID,
		ProductName:    o.ProductName,
		PriceYen:       o.PriceYen,
		Status:         o.Status,
		OrderDate:      o.OrderDate.Format("2006-01-02"),
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
	}
	if o.DeliveryDate != nil {
		res.DeliveryDate = o.DeliveryDate.Format("2006-01-02")
	}
	return res
}
