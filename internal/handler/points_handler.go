package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PUT /admin/points/:userId のボディ
type PointsSetRequest struct {
	Balance *int64 `json:"balance" validate:"required,min=0"`
}

type PointsHandler struct {
	uc *usecase.PointsUsecase
}

func NewPointsHandler(uc *usecase.PointsUsecase) *PointsHandler {
	return &PointsHandler{uc: uc}
}

func (h *PointsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/me/points", h.mine, authed(cfg, userRepo)...)

	admin := e.Group("/admin/points", adminOnly(cfg, userRepo)...)
	admin.GET("/:userId", h.get)
	admin.PUT("/:userId", h.set)
}

func (h *PointsHandler) mine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.GetBalance(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PointsHandler) get(c echo.Context) error {
	p, err := h.uc.GetBalance(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PointsHandler) set(c echo.Context) error {
	var req PointsSetRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.SetBalance(c.Request().Context(), adminID, c.Param("userId"), *req.Balance)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
