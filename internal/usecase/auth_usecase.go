package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"go.uber.org/zap"
)

type ForceLogoutResponse struct {
	UserID          string `json:"userId"`
	NewTokenVersion int    `json:"newTokenVersion"`
}

// ログイン中ユーザー自身の情報と強制ログアウト
type AuthUsecase struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewAuthUsecase(users repository.UserRepository, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{users: users, log: log}
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, errUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, errUnauthorized
		}
		u.log.Error("find user failed", zap.String("user_id", userID), zap.Error(err))
		return model.User{}, errDB
	}

	//停止ユーザー
	if !user.IsActive {
		return model.User{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return *user, nil
}

// token_versionを上げて発行済みJWTを無効にする
func (u *AuthUsecase) ForceLogout(ctx context.Context, targetUserID string) (ForceLogoutResponse, error) {
	if strings.TrimSpace(targetUserID) == "" {
		return ForceLogoutResponse{}, errBadRequest("invalid id")
	}

	if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ForceLogoutResponse{}, errNotFound("user not found")
		}
		u.log.Error("increment token version failed", zap.String("user_id", targetUserID), zap.Error(err))
		return ForceLogoutResponse{}, errDB
	}

	//更新後を取得してnew_token_versionを返す
	user, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		return ForceLogoutResponse{}, errDB
	}

	return ForceLogoutResponse{
		UserID:          user.ID,
		NewTokenVersion: user.TokenVersion,
	}, nil
}
