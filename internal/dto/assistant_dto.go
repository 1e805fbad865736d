package dto

import "shop-assistant-be/pkg/dialogue"

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required,max=4000"`
}

type ChatResponse struct {
	SessionID string          `json:"session_id"`
	Reply     *dialogue.Reply `json:"reply"`
}

type SessionResponse struct {
	SessionID    string `json:"session_id"`
	Turns        int    `json:"turns,omitempty"`
	LastActivity string `json:"last_activity,omitempty"`
}

// CatalogUpsertMessage is the ingest queue payload for one product.
type CatalogUpsertMessage struct {
	SKU         string  `json:"sku"`
	Brand       string  `json:"brand"`
	Name        string  `json:"name"`
	PriceYen    int     `json:"price_yen"`
	RAM         string  `json:"ram"`
	Storage     string  `json:"storage"`
	Processor   string  `json:"processor"`
	OS          string  `json:"os"`
	Colors      string  `json:"colors"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

type OrderResponse struct {
	OrderID        string `json:"order_id"`
	ProductName    string `json:"product_name"`
	PriceYen       int    `json:"price_yen"`
	Status         string `json:"status"`
	OrderDate      string `json:"order_date"`
	DeliveryDate   string `json:"delivery_date,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

type TransactionResponse struct {
	ReferenceID string `json:"reference_id"`
	Type        string `json:"type"`
	OrderID     string `json:"order_id"`
	Reason      string `json:"reason"`
	AmountYen   int    `json:"amount_yen"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
