package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	"github.com/gimhantharuke456/sachi-itpm/internal/domain/pricing"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"go.uber.org/zap"
)

const sourceCheckout = "checkout"

// カートの中身 or 単品（数量1）
type CheckoutInput struct {
	Items          []OrderItemInput
	InventoryID    string
	CouponCode     string
	PointsToRedeem int64
}

func (in CheckoutInput) resolveItems() ([]OrderItemInput, error) {
	single := strings.TrimSpace(in.InventoryID)
	if single != "" && len(in.Items) > 0 {
		return nil, errBadRequest("use either items or inventoryId")
	}
	if single != "" {
		return []OrderItemInput{{InventoryID: single, Quantity: 1}}, nil
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	return in.Items, nil
}

// 顧客の注文確定フロー
type CheckoutUsecase struct {
	items     repo.InventoryItemRepository
	points    repo.PointsRepository
	tx        repo.TransactionManager
	coupons   pricing.Coupons
	publisher OrderEventPublisher
	metrics   OrderMetrics
	log       *zap.Logger
}

func NewCheckoutUsecase(
	items repo.InventoryItemRepository,
	points repo.PointsRepository,
	tx repo.TransactionManager,
	coupons pricing.Coupons,
	publisher OrderEventPublisher,
	metrics OrderMetrics,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		items:     items,
		points:    points,
		tx:        tx,
		coupons:   coupons,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// 見積もり（何も保存しない）
func (u *CheckoutUsecase) Quote(ctx context.Context, userID string, in CheckoutInput) (pricing.Quote, error) {
	if userID == "" {
		return pricing.Quote{}, errUnauthorized
	}

	q, err := u.quote(ctx, u.items, in)
	if err != nil {
		return pricing.Quote{}, err
	}

	if q.PointsRedeemed > 0 {
		balance, err := balanceOf(ctx, u.points, userID)
		if err != nil {
			return pricing.Quote{}, err
		}
		if balance < q.PointsRedeemed {
			return pricing.Quote{}, errBadRequest("insufficient points")
		}
	}
	return q, nil
}

// 1トランザクションで再見積もり・ポイント減算・注文作成
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID string, in CheckoutInput) (model.Order, error) {
	if userID == "" {
		return model.Order{}, errUnauthorized
	}

	var (
		out model.Order
		q   pricing.Quote
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errUnauthorized
			}
			return errDB
		}

		var err error
		q, err = u.quote(ctx, r.InventoryItems(), in)
		if err != nil {
			return err
		}

		if q.PointsRedeemed > 0 {
			ok, err := r.Points().DecreaseIfEnough(ctx, userID, q.PointsRedeemed)
			if err != nil {
				return errDB
			}
			if !ok {
				return errBadRequest("insufficient points")
			}
		}

		order := model.Order{
			UserID:    userID,
			TotalBill: q.Total,
			Discount:  q.Discount,
		}
		if q.CouponCode != "" {
			code := q.CouponCode
			order.CouponCode = &code
		}

		items, _ := in.resolveItems()
		created, err := createOrderTx(ctx, r, order, items)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		if he, ok := AsHTTPError(err); !ok || he.Status >= 500 {
			u.log.Error("place order failed", zap.String("user_id", userID), zap.Error(err))
		}
		return model.Order{}, passOrDB(err)
	}

	u.metrics.OrderCreated(sourceCheckout)
	u.metrics.CouponApplied(q.CouponCode)
	u.metrics.PointsRedeemedAdd(q.PointsRedeemed)

	if err := u.publisher.OrderCreated(ctx, out); err != nil {
		u.log.Warn("publish order event failed", zap.String("order_id", out.ID), zap.Error(err))
	}

	u.log.Info("order placed",
		zap.String("order_id", out.ID),
		zap.String("user_id", userID),
		zap.String("total_bill", out.TotalBill.StringFixed(2)),
	)
	return out, nil
}

func (u *CheckoutUsecase) quote(ctx context.Context, itemsRepo repo.InventoryItemRepository, in CheckoutInput) (pricing.Quote, error) {
	items, err := in.resolveItems()
	if err != nil {
		return pricing.Quote{}, err
	}

	inventory, err := loadInventory(ctx, itemsRepo, items)
	if err != nil {
		return pricing.Quote{}, err
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		inv := inventory[strings.TrimSpace(it.InventoryID)]
		line, err := pricing.NewLine(inv.ID, inv.Name, inv.Price, it.Quantity)
		if err != nil {
			return pricing.Quote{}, errBadRequest(err.Error())
		}
		lines = append(lines, line)
	}

	q, err := u.coupons.Calculate(lines, in.CouponCode, in.PointsToRedeem)
	if err != nil {
		return pricing.Quote{}, errBadRequest(err.Error())
	}
	return q, nil
}

// レコードが無ければ0
func balanceOf(ctx context.Context, points repo.PointsRepository, userID string) (int64, error) {
	p, err := points.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, nil
		}
		return 0, errDB
	}
	return p.Balance, nil
}
