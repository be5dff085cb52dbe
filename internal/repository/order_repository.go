package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 部分更新。nilの項目は変更しない
type OrderPatch struct {
	TotalBill *decimal.Decimal
	Discount  *decimal.Decimal
	// 空文字ならクーポンを外す
	CouponCode *string
}

func (p OrderPatch) IsEmpty() bool {
	return p.TotalBill == nil && p.Discount == nil && p.CouponCode == nil
}

// 読み取りは明細(+在庫アイテム)とユーザーをpreloadして返す
type OrderRepository interface {
	// 注文本体のみ作成（明細はOrderLineItemRepository）
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, orderID string, patch OrderPatch) error
	Delete(ctx context.Context, orderID string) error
}
