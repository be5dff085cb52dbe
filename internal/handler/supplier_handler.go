package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SupplierRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contactNumber" validate:"required,max=30"`
	Address       string `json:"address" validate:"required"`
}

func (r SupplierRequest) toInput() usecase.SupplierInput {
	return usecase.SupplierInput{
		Name:          r.Name,
		Email:         r.Email,
		ContactNumber: r.ContactNumber,
		Address:       r.Address,
	}
}

type SupplierHandler struct {
	uc *usecase.SupplierUsecase
}

func NewSupplierHandler(uc *usecase.SupplierUsecase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func (h *SupplierHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin/suppliers", adminOnly(cfg, userRepo)...)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *SupplierHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) detail(c echo.Context) error {
	s, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SupplierHandler) create(c echo.Context) error {
	var req SupplierRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	s, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SupplierHandler) update(c echo.Context) error {
	var req SupplierRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	s, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SupplierHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
