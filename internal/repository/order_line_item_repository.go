package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
)

type OrderLineItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderLineItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderLineItem, error)
	// 削除件数を返す
	DeleteByOrderID(ctx context.Context, orderID string) (int64, error)
	CountByInventoryID(ctx context.Context, inventoryID string) (int64, error)
}
