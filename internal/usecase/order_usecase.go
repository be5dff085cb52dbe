package usecase

import (
	"context"
	"errors"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"
)

// ログインユーザー自身の注文
type OrderUsecase struct {
	orders repo.OrderRepository
}

func NewOrderUsecase(orders repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{orders: orders}
}

func (u *OrderUsecase) ListMine(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, errUnauthorized
	}
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errDB
	}
	return orders, nil
}

// 他人の注文は404
func (u *OrderUsecase) GetMine(ctx context.Context, userID string, orderID string) (model.Order, error) {
	if userID == "" {
		return model.Order{}, errUnauthorized
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, errNotFound("order not found")
		}
		return model.Order{}, errDB
	}
	if o.UserID != userID {
		return model.Order{}, errNotFound("order not found")
	}
	return o, nil
}
