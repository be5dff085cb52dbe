package usecase

import (
	"context"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"
)

// 注文する在庫アイテムと数量
type OrderItemInput struct {
	InventoryID string `json:"inventoryId"`
	Quantity    int64  `json:"quantity"`
}

func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errBadRequest("orderedItems are required")
	}
	for _, it := range items {
		if strings.TrimSpace(it.InventoryID) == "" {
			return errBadRequest("inventoryId is required")
		}
		if it.Quantity < 1 {
			return errBadRequest("quantity must be >= 1")
		}
	}
	return nil
}

// 全inventoryIdの存在確認。id -> item を返す
func loadInventory(ctx context.Context, items repo.InventoryItemRepository, in []OrderItemInput) (map[string]model.InventoryItem, error) {
	ids := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, it := range in {
		id := strings.TrimSpace(it.InventoryID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	found, err := items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errDB
	}

	byID := make(map[string]model.InventoryItem, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, errBadRequest("unknown inventory item: " + id)
		}
	}
	return byID, nil
}

func toLineItems(in []OrderItemInput) []model.OrderLineItem {
	out := make([]model.OrderLineItem, 0, len(in))
	for _, it := range in {
		out = append(out, model.OrderLineItem{
			InventoryID: strings.TrimSpace(it.InventoryID),
			Quantity:    it.Quantity,
		})
	}
	return out
}

// 空文字はnil
func normalizeCoupon(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	return &c
}
