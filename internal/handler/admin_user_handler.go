package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"
	auth "github.com/gimhantharuke456/sachi-itpm/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PUT /admin/users/:id のボディ
type UserUpdateRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Username      string  `json:"username" validate:"required,max=100"`
	ContactNumber string  `json:"contactNumber" validate:"required,max=30"`
	Email         string  `json:"email" validate:"required,email"`
	Role          string  `json:"role"`
	Password      *string `json:"password"`
	IsActive      *bool   `json:"isActive"`
}

type AdminUserHandler struct {
	users      *usecase.UserUsecase
	authUC     *usecase.AuthUsecase
	registerUC *auth.RegisterUserUsecase
	log        *zap.Logger
}

func NewAdminUserHandler(
	users *usecase.UserUsecase,
	authUC *usecase.AuthUsecase,
	registerUC *auth.RegisterUserUsecase,
	log *zap.Logger,
) *AdminUserHandler {
	return &AdminUserHandler{users: users, authUC: authUC, registerUC: registerUC, log: log}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	// /admin 配下は全部「JWT必須 + token_version一致 + ADMIN限定」
	admin := e.Group("/admin/users", adminOnly(cfg, userRepo)...)

	admin.GET("", h.list)
	admin.POST("", h.create)
	admin.GET("/:id", h.detail)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
	admin.POST("/:id/force-logout", h.ForceLogout)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	out, err := h.users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) detail(c echo.Context) error {
	u, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// 管理者によるユーザー作成（会員登録と同じ検証）
func (h *AdminUserHandler) create(c echo.Context) error {
	var req registerRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:          req.Name,
		Username:      req.Username,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
	})
	if err != nil {
		return writeAuthError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, out.User)
}

func (h *AdminUserHandler) update(c echo.Context) error {
	var req UserUpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	u, err := h.users.Update(c.Request().Context(), c.Param("id"), usecase.UpdateUserInput{
		Name:          req.Name,
		Username:      req.Username,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Role:          req.Role,
		Password:      req.Password,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminUserHandler) ForceLogout(c echo.Context) error {
	res, err := h.authUC.ForceLogout(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
