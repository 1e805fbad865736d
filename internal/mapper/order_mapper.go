package mapper

import (
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	return &entity.Order{
		Id:             o.Id,
		OrderID:        o.OrderID,
		UserId:         o.UserId,
		SKU:            o.SKU,
		ProductName:    o.ProductName,
		PriceYen:       o.PriceYen,
		Status:         o.Status,
		OrderDate:      o.OrderDate,
		DeliveryDate:   o.DeliveryDate,
		ReturnDeadline: o.ReturnDeadline,
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		ImageURL:       o.ImageURL,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	return &model.Order{
		Id:             o.Id,
		OrderID:        o.OrderID,
		UserId:         o.UserId,
		SKU:            o.SKU,
		ProductName:    o.ProductName,
		PriceYen:       o.PriceYen,
		Status:         o.Status,
		OrderDate:      o.OrderDate,
		DeliveryDate:   o.DeliveryDate,
		ReturnDeadline: o.ReturnDeadline,
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		ImageURL:       o.ImageURL,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (m *OrderMapper) ToEntities(orders []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, len(orders))
	for i, o := range orders {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

func (m *OrderMapper) TransactionToEntity(t *model.TransactionRecord) *entity.TransactionRecord {
	if t == nil {
		return nil
	}
	return &entity.TransactionRecord{
		Id:          t.Id,
		ReferenceID: t.ReferenceID,
		Type:        t.Type,
		OrderID:     t.OrderID,
		UserId:      t.UserId,
		Reason:      t.Reason,
		AmountYen:   t.AmountYen,
		RefundKey:   t.RefundKey,
		Status:      entity.TransactionStatus(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func (m *OrderMapper) TransactionToModel(t *entity.TransactionRecord) *model.TransactionRecord {
	if t == nil {
		return nil
	}
	return &model.TransactionRecord{
		Id:          t.Id,
		ReferenceID: t.ReferenceID,
		Type:        t.Type,
		OrderID:     t.OrderID,
		UserId:      t.UserId,
		Reason:      t.Reason,
		AmountYen:   t.AmountYen,
		RefundKey:   t.RefundKey,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}
