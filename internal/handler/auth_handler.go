package handler

import (
	"errors"
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"
	auth "github.com/gimhantharuke456/sachi-itpm/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	meUC       *usecase.AuthUsecase
	log        *zap.Logger
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	meUC *usecase.AuthUsecase,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		meUC:       meUC,
		log:        log,
	}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	Name          string `json:"name" validate:"required"`
	Username      string `json:"username" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Role          string `json:"role"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/me", h.Me, authed(cfg, userRepo)...)
}

// POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
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

	return c.JSON(http.StatusCreated, out)
}

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	user, err := h.meUC.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// auth usecaseのエラーをステータスに変換
func writeAuthError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmailFormat),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailAlreadyExists),
		errors.Is(err, auth.ErrUsernameAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrUserInactive):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		log.Error("auth failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
