package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

// POST /admin/orders のボディ。totalBillはそのまま保存される
type OrderCreateRequest struct {
	UserID       string                   `json:"userId" validate:"required"`
	OrderedItems []usecase.OrderItemInput `json:"orderedItems" validate:"required,min=1,dive"`
	TotalBill    *decimal.Decimal         `json:"totalBill" validate:"required"`
	Discount     *decimal.Decimal         `json:"discount"`
	CouponCode   *string                  `json:"couponCode"`
}

// PATCH /admin/orders/:id のボディ。省略した項目は変更しない
type OrderUpdateRequest struct {
	TotalBill  *decimal.Decimal `json:"totalBill"`
	Discount   *decimal.Decimal `json:"discount"`
	CouponCode *string          `json:"couponCode"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin/orders", adminOnly(cfg, userRepo)...)

	admin.POST("", h.create)
	admin.GET("", h.list)
	admin.GET("/customer/:userId", h.listByCustomer)
	admin.GET("/:id", h.detail)
	admin.PATCH("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *AdminOrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	o, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		UserID:     req.UserID,
		Items:      req.OrderedItems,
		TotalBill:  *req.TotalBill,
		Discount:   req.Discount,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) listByCustomer(c echo.Context) error {
	out, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	o, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *AdminOrderHandler) update(c echo.Context) error {
	var req OrderUpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	// 操作した管理者IDを取得（監査ログ用）
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	o, err := h.uc.Update(c.Request().Context(), adminID, c.Param("id"), usecase.UpdateOrderInput{
		TotalBill:  req.TotalBill,
		Discount:   req.Discount,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// 削除した注文を返す
func (h *AdminOrderHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	o, err := h.uc.Delete(c.Request().Context(), adminID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
