package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

var _ repo.OrderRepository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 明細→在庫アイテム、ユーザーをまとめて読む
func (r *OrderGormRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("OrderedItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("OrderedItems.Inventory").
		Preload("User")
}

// 関連(明細・ユーザー)は保存しない
func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	if err := r.joined(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, mapErr(err)
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context) ([]model.Order, error) {
	orders := []model.Order{}
	if err := r.joined(ctx).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.joined(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// totalBill/discount/couponCodeのみ更新
func (r *OrderGormRepository) Update(ctx context.Context, orderID string, patch repo.OrderPatch) error {
	updates := map[string]interface{}{}
	if patch.TotalBill != nil {
		updates["total_bill"] = *patch.TotalBill
	}
	if patch.Discount != nil {
		updates["discount"] = *patch.Discount
	}
	if patch.CouponCode != nil {
		if *patch.CouponCode == "" {
			updates["coupon_code"] = nil
		} else {
			updates["coupon_code"] = *patch.CouponCode
		}
	}
	if len(updates) == 0 {
		// 存在確認だけ
		_, err := r.FindByID(ctx, orderID)
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Updates(updates)
	return affected(res)
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&model.Order{}))
}
