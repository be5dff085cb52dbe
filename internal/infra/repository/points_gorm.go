package repository

import (
	"context"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointsGormRepository struct {
	db *gorm.DB
}

var _ repo.PointsRepository = (*PointsGormRepository)(nil)

func NewPointsGormRepository(db *gorm.DB) *PointsGormRepository {
	return &PointsGormRepository{db: db}
}

func (r *PointsGormRepository) FindByUserID(ctx context.Context, userID string) (model.Points, error) {
	var p model.Points
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return model.Points{}, mapErr(err)
	}
	return p, nil
}

// upsert
func (r *PointsGormRepository) Set(ctx context.Context, userID string, balance int64) error {
	p := model.Points{UserID: userID, Balance: balance, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
	}).Create(&p).Error
	return mapErr(err)
}

// 残高が足りるときだけ減らす
func (r *PointsGormRepository) DecreaseIfEnough(ctx context.Context, userID string, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Points{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PointsGormRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Points{}).Error
}
