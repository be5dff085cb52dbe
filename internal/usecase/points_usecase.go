package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"go.uber.org/zap"
)

type PointsUsecase struct {
	points repo.PointsRepository
	tx     repo.TransactionManager
	log    *zap.Logger
}

func NewPointsUsecase(points repo.PointsRepository, tx repo.TransactionManager, log *zap.Logger) *PointsUsecase {
	return &PointsUsecase{points: points, tx: tx, log: log}
}

func (u *PointsUsecase) GetBalance(ctx context.Context, userID string) (model.Points, error) {
	if userID == "" {
		return model.Points{}, errBadRequest("userId is required")
	}
	balance, err := balanceOf(ctx, u.points, userID)
	if err != nil {
		return model.Points{}, err
	}
	return model.Points{UserID: userID, Balance: balance}, nil
}

// 管理者がポイント残高を設定（監査ログあり）
func (u *PointsUsecase) SetBalance(ctx context.Context, actorID string, userID string, balance int64) (model.Points, error) {
	if userID == "" {
		return model.Points{}, errBadRequest("userId is required")
	}
	if balance < 0 {
		return model.Points{}, errBadRequest("balance must be >= 0")
	}

	var out model.Points
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("user not found")
			}
			return errDB
		}

		before, err := balanceOf(ctx, r.Points(), userID)
		if err != nil {
			return err
		}
		if err := r.Points().Set(ctx, userID, balance); err != nil {
			return errDB
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionSetPoints,
			ResourceType: model.AuditResourcePoints,
			ResourceID:   userID,
			BeforeJSON:   fmt.Sprintf(`{"balance":%d}`, before),
			AfterJSON:    fmt.Sprintf(`{"balance":%d}`, balance),
			CreatedAt:    time.Now(),
		}); err != nil {
			return errDB
		}

		p, err := r.Points().FindByUserID(ctx, userID)
		if err != nil {
			return errDB
		}
		out = p
		return nil
	})
	if err != nil {
		if he, ok := AsHTTPError(err); !ok || he.Status >= 500 {
			u.log.Error("set points failed", zap.String("user_id", userID), zap.Error(err))
		}
		return model.Points{}, passOrDB(err)
	}
	return out, nil
}
