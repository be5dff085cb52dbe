package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineItemGormRepository struct {
	db *gorm.DB
}

var _ repo.OrderLineItemRepository = (*OrderLineItemGormRepository)(nil)

func NewOrderLineItemGormRepository(db *gorm.DB) *OrderLineItemGormRepository {
	return &OrderLineItemGormRepository{db: db}
}

func (r *OrderLineItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error)
}

func (r *OrderLineItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderLineItem, error) {
	items := []model.OrderLineItem{}
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderLineItemGormRepository) DeleteByOrderID(ctx context.Context, orderID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderLineItem{})
	return res.RowsAffected, res.Error
}

func (r *OrderLineItemGormRepository) CountByInventoryID(ctx context.Context, inventoryID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrderLineItem{}).Where("inventory_id = ?", inventoryID).Count(&n).Error
	return n, err
}
