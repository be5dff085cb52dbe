package repository

import (
	"context"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
)

type InventoryItemGormRepository struct {
	db *gorm.DB
}

var _ repo.InventoryItemRepository = (*InventoryItemGormRepository)(nil)

func NewInventoryItemGormRepository(db *gorm.DB) *InventoryItemGormRepository {
	return &InventoryItemGormRepository{db: db}
}

func (r *InventoryItemGormRepository) List(ctx context.Context, q string) ([]model.InventoryItem, error) {
	tx := r.db.WithContext(ctx).Model(&model.InventoryItem{})

	// q nameを対象（大小文字無視）
	if s := strings.TrimSpace(q); s != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	items := []model.InventoryItem{}
	if err := tx.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryItemGormRepository) FindByID(ctx context.Context, id string) (model.InventoryItem, error) {
	var it model.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error; err != nil {
		return model.InventoryItem{}, mapErr(err)
	}
	return it, nil
}

func (r *InventoryItemGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryItemGormRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return mapErr(r.db.WithContext(ctx).Create(item).Error)
}

func (r *InventoryItemGormRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	res := r.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":        item.Name,
		"slug":        item.Slug,
		"description": item.Description,
		"price":       item.Price,
		"image_url":   item.ImageURL,
	})
	return affected(res)
}

func (r *InventoryItemGormRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.InventoryItem{}))
}
