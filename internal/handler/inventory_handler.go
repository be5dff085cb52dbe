package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// POST/PUT /admin/inventory のボディ
type InventoryItemRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string           `json:"imageUrl" validate:"max=2048"`
}

func (r InventoryItemRequest) toInput() usecase.InventoryItemInput {
	return usecase.InventoryItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		ImageURL:    r.ImageURL,
	}
}

// /inventory（公開）と /admin/inventory をまとめる
type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

// DI
func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/inventory", h.list)
	e.GET("/inventory/:id", h.detail)

	admin := e.Group("/admin/inventory", adminOnly(cfg, userRepo)...)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

// ?q= で名前の部分一致
func (h *InventoryHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) detail(c echo.Context) error {
	it, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *InventoryHandler) create(c echo.Context) error {
	var req InventoryItemRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	it, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *InventoryHandler) update(c echo.Context) error {
	var req InventoryItemRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	it, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *InventoryHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
