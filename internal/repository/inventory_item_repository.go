package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
)

type InventoryItemRepository interface {
	// qは名前の部分一致（空なら全件）
	List(ctx context.Context, q string) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id string) (model.InventoryItem, error)
	// 存在するものだけ返す
	FindByIDs(ctx context.Context, ids []string) ([]model.InventoryItem, error)
	Create(ctx context.Context, item *model.InventoryItem) error
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id string) error
}
