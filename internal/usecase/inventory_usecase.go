package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InventoryUsecase struct {
	items repo.InventoryItemRepository
	lines repo.OrderLineItemRepository
	log   *zap.Logger
}

// DI
func NewInventoryUsecase(items repo.InventoryItemRepository, lines repo.OrderLineItemRepository, log *zap.Logger) *InventoryUsecase {
	return &InventoryUsecase{items: items, lines: lines, log: log}
}

// POST/PUT /admin/inventory の入力
type InventoryItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

func (in InventoryItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errBadRequest("name is required")
	}
	if len(in.Name) > 255 {
		return errBadRequest("name too long")
	}
	if in.Price.IsNegative() {
		return errBadRequest("price must be >= 0")
	}
	return nil
}

func (u *InventoryUsecase) List(ctx context.Context, q string) ([]model.InventoryItem, error) {
	items, err := u.items.List(ctx, q)
	if err != nil {
		u.log.Error("list inventory failed", zap.Error(err))
		return nil, errDB
	}
	return items, nil
}

func (u *InventoryUsecase) Get(ctx context.Context, id string) (model.InventoryItem, error) {
	it, err := u.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.InventoryItem{}, errNotFound("inventory item not found")
		}
		return model.InventoryItem{}, errDB
	}
	return it, nil
}

func (u *InventoryUsecase) Create(ctx context.Context, in InventoryItemInput) (model.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return model.InventoryItem{}, err
	}

	it := model.InventoryItem{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug.Make(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if err := u.items.Create(ctx, &it); err != nil {
		u.log.Error("create inventory item failed", zap.Error(err))
		return model.InventoryItem{}, errDB
	}
	return it, nil
}

func (u *InventoryUsecase) Update(ctx context.Context, id string, in InventoryItemInput) (model.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return model.InventoryItem{}, err
	}

	it, err := u.Get(ctx, id)
	if err != nil {
		return model.InventoryItem{}, err
	}

	it.Name = strings.TrimSpace(in.Name)
	it.Slug = slug.Make(in.Name)
	it.Description = strings.TrimSpace(in.Description)
	it.Price = in.Price.Round(2)
	it.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := u.items.Update(ctx, &it); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.InventoryItem{}, errNotFound("inventory item not found")
		}
		u.log.Error("update inventory item failed", zap.String("id", id), zap.Error(err))
		return model.InventoryItem{}, errDB
	}
	return it, nil
}

// 注文明細から参照されていれば409
func (u *InventoryUsecase) Delete(ctx context.Context, id string) error {
	n, err := u.lines.CountByInventoryID(ctx, id)
	if err != nil {
		return errDB
	}
	if n > 0 {
		return errConflict("inventory item is referenced by orders")
	}

	if err := u.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("inventory item not found")
		}
		u.log.Error("delete inventory item failed", zap.String("id", id), zap.Error(err))
		return errDB
	}
	return nil
}
