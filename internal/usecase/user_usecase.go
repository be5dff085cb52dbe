package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"go.uber.org/zap"
)

// 管理者向けユーザー管理
type UserUsecase struct {
	users  repo.UserRepository
	tx     repo.TransactionManager
	hasher PasswordHasher
	log    *zap.Logger
}

func NewUserUsecase(users repo.UserRepository, tx repo.TransactionManager, hasher PasswordHasher, log *zap.Logger) *UserUsecase {
	return &UserUsecase{users: users, tx: tx, hasher: hasher, log: log}
}

type UpdateUserInput struct {
	Name          string
	Username      string
	ContactNumber string
	Email         string
	Role          string
	// nilなら変更しない
	Password *string
	IsActive *bool
}

func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		u.log.Error("list users failed", zap.Error(err))
		return nil, errDB
	}
	return users, nil
}

func (u *UserUsecase) Get(ctx context.Context, id string) (model.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.User{}, errNotFound("user not found")
		}
		return model.User{}, errDB
	}
	return *user, nil
}

func (u *UserUsecase) Update(ctx context.Context, id string, in UpdateUserInput) (model.User, error) {
	if !present(in.Name, in.Username, in.ContactNumber, in.Email) {
		return model.User{}, errBadRequest("name, username, contactNumber and email are required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !isEmail(email) {
		return model.User{}, errBadRequest("invalid email")
	}
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return model.User{}, errBadRequest("invalid role")
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.User{}, errNotFound("user not found")
		}
		return model.User{}, errDB
	}

	// 他人とのemail/username重複
	if err := u.ensureUnique(ctx, id, email, strings.TrimSpace(in.Username)); err != nil {
		return model.User{}, err
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Username = strings.TrimSpace(in.Username)
	user.ContactNumber = strings.TrimSpace(in.ContactNumber)
	user.Email = email

	// ロール変更・停止は発行済みトークンを無効化
	revoke := user.Role != role
	user.Role = role
	if in.IsActive != nil {
		if user.IsActive && !*in.IsActive {
			revoke = true
		}
		user.IsActive = *in.IsActive
	}

	if in.Password != nil {
		if len(*in.Password) < 8 {
			return model.User{}, errBadRequest("password too short")
		}
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			u.log.Error("hash password failed", zap.Error(err))
			return model.User{}, errInternal
		}
		user.PasswordHash = hashed
		revoke = true
	}
	if revoke {
		user.TokenVersion++
	}

	if err := u.users.Update(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.User{}, errConflict("email or username already exists")
		}
		u.log.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return model.User{}, errDB
	}
	return *user, nil
}

func (u *UserUsecase) ensureUnique(ctx context.Context, selfID, email, username string) error {
	other, err := u.users.FindByEmail(ctx, email)
	if err == nil && other.ID != selfID {
		return errConflict("email already exists")
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return errDB
	}

	other, err = u.users.FindByUsername(ctx, username)
	if err == nil && other.ID != selfID {
		return errConflict("username already exists")
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return errDB
	}
	return nil
}

// 注文を持つユーザーは消せない（409）
func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		n, err := r.Orders().CountByUserID(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errConflict("user still has orders")
		}
		if err := r.Points().Delete(ctx, id); err != nil {
			return err
		}
		if err := r.Users().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound("user not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); !ok {
			u.log.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		}
		return passOrDB(err)
	}
	return nil
}
