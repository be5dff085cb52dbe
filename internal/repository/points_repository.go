package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
)

type PointsRepository interface {
	// 未作成ならErrNotFound
	FindByUserID(ctx context.Context, userID string) (model.Points, error)
	// 無ければ作る
	Set(ctx context.Context, userID string, balance int64) error
	// 残高が足りるときだけ減算
	DecreaseIfEnough(ctx context.Context, userID string, amount int64) (bool, error)
	// ユーザー削除時。無くてもエラーにしない
	Delete(ctx context.Context, userID string) error
}
