package repository

import (
	"errors"

	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
)

// gormのエラーをrepositoryのエラーに変換
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	default:
		return err
	}
}

// 0件更新は「対象がない」
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
