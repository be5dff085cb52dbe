package usecase

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
)

// 注文イベントの送信先（RabbitMQ or noop）
type OrderEventPublisher interface {
	OrderCreated(ctx context.Context, order model.Order) error
	OrderUpdated(ctx context.Context, order model.Order) error
	OrderDeleted(ctx context.Context, order model.Order) error
}

// 注文まわりのカウンタ
type OrderMetrics interface {
	OrderCreated(source string)
	CouponApplied(code string)
	PointsRedeemedAdd(points int64)
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}
