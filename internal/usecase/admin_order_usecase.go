package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const sourceAdmin = "admin"

// 管理者向けの注文サービス
type AdminOrderUsecase struct {
	orders    repo.OrderRepository
	tx        repo.TransactionManager
	publisher OrderEventPublisher
	metrics   OrderMetrics
	log       *zap.Logger
}

func NewAdminOrderUsecase(
	orders repo.OrderRepository,
	tx repo.TransactionManager,
	publisher OrderEventPublisher,
	metrics OrderMetrics,
	log *zap.Logger,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		orders:    orders,
		tx:        tx,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// totalBillは計算し直さずそのまま保存する
type CreateOrderInput struct {
	UserID     string
	Items      []OrderItemInput
	TotalBill  decimal.Decimal
	Discount   *decimal.Decimal
	CouponCode *string
}

// nilの項目は変更しない。couponCodeに空文字でクーポンを外す
type UpdateOrderInput struct {
	TotalBill  *decimal.Decimal
	Discount   *decimal.Decimal
	CouponCode *string
}

func (u *AdminOrderUsecase) Create(ctx context.Context, in CreateOrderInput) (model.Order, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return model.Order{}, errBadRequest("userId is required")
	}
	if err := validateItems(in.Items); err != nil {
		return model.Order{}, err
	}
	discount := decimal.Zero
	if in.Discount != nil {
		discount = *in.Discount
	}
	if in.TotalBill.IsNegative() || discount.IsNegative() {
		return model.Order{}, errBadRequest("totalBill and discount must be >= 0")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("user not found")
			}
			return errDB
		}
		if _, err := loadInventory(ctx, r.InventoryItems(), in.Items); err != nil {
			return err
		}

		created, err := createOrderTx(ctx, r, model.Order{
			UserID:     userID,
			TotalBill:  in.TotalBill.Round(2),
			Discount:   discount.Round(2),
			CouponCode: normalizeCoupon(in.CouponCode),
		}, in.Items)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		u.logTxErr("create order failed", err)
		return model.Order{}, passOrDB(err)
	}

	u.metrics.OrderCreated(sourceAdmin)
	u.publish(ctx, out, u.publisher.OrderCreated)
	return out, nil
}

// 注文本体→明細の順で作り、結合済みで読み直す
func createOrderTx(ctx context.Context, r repo.TxRepos, order model.Order, items []OrderItemInput) (model.Order, error) {
	if err := r.Orders().Create(ctx, &order); err != nil {
		return model.Order{}, errDB
	}
	if err := r.OrderLineItems().CreateBulk(ctx, order.ID, toLineItems(items)); err != nil {
		return model.Order{}, errDB
	}
	created, err := r.Orders().FindByID(ctx, order.ID)
	if err != nil {
		return model.Order{}, errDB
	}
	return created, nil
}

func (u *AdminOrderUsecase) List(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		u.log.Error("list orders failed", zap.Error(err))
		return nil, errDB
	}
	return orders, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, id string) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, errNotFound("order not found")
		}
		return model.Order{}, errDB
	}
	return o, nil
}

func (u *AdminOrderUsecase) ListByCustomer(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errDB
	}
	return orders, nil
}

// totalBill/discount/couponCodeだけ更新。明細はそのまま
func (u *AdminOrderUsecase) Update(ctx context.Context, actorID string, id string, in UpdateOrderInput) (model.Order, error) {
	if (in.TotalBill != nil && in.TotalBill.IsNegative()) || (in.Discount != nil && in.Discount.IsNegative()) {
		return model.Order{}, errBadRequest("totalBill and discount must be >= 0")
	}

	patch := repo.OrderPatch{CouponCode: in.CouponCode}
	if in.TotalBill != nil {
		v := in.TotalBill.Round(2)
		patch.TotalBill = &v
	}
	if in.Discount != nil {
		v := in.Discount.Round(2)
		patch.Discount = &v
	}
	if patch.CouponCode != nil {
		c := strings.TrimSpace(*patch.CouponCode)
		patch.CouponCode = &c
	}

	if patch.IsEmpty() {
		return u.Get(ctx, id)
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("order not found")
			}
			return errDB
		}

		if err := r.Orders().Update(ctx, id, patch); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("order not found")
			}
			return errDB
		}

		after, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return errDB
		}

		// ★監査ログ（UPDATE_ORDER）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   id,
			BeforeJSON:   orderSnapshot(before),
			AfterJSON:    orderSnapshot(after),
			CreatedAt:    time.Now(),
		}); err != nil {
			return errDB
		}

		out = after
		return nil
	})
	if err != nil {
		u.logTxErr("update order failed", err)
		return model.Order{}, passOrDB(err)
	}

	u.publish(ctx, out, u.publisher.OrderUpdated)
	return out, nil
}

// 明細→注文の順で削除。削除前の注文を返す
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorID string, id string) (model.Order, error) {
	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("order not found")
			}
			return errDB
		}

		if _, err := r.OrderLineItems().DeleteByOrderID(ctx, id); err != nil {
			return errDB
		}
		if err := r.Orders().Delete(ctx, id); err != nil {
			return errDB
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   id,
			BeforeJSON:   orderSnapshot(o),
			AfterJSON:    "{}",
			CreatedAt:    time.Now(),
		}); err != nil {
			return errDB
		}

		out = o
		return nil
	})
	if err != nil {
		u.logTxErr("delete order failed", err)
		return model.Order{}, passOrDB(err)
	}

	u.publish(ctx, out, u.publisher.OrderDeleted)
	return out, nil
}

// コミット後に送る。失敗してもリクエストは成功扱い
func (u *AdminOrderUsecase) publish(ctx context.Context, o model.Order, send func(context.Context, model.Order) error) {
	if err := send(ctx, o); err != nil {
		u.log.Warn("publish order event failed", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (u *AdminOrderUsecase) logTxErr(msg string, err error) {
	if he, ok := AsHTTPError(err); ok && he.Status < 500 {
		return
	}
	u.log.Error(msg, zap.Error(err))
}

func orderSnapshot(o model.Order) string {
	snap := map[string]interface{}{
		"totalBill":  o.TotalBill,
		"discount":   o.Discount,
		"couponCode": o.CouponCode,
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return "{}"
	}
	return string(b)
}
