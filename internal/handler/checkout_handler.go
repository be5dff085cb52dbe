package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カート（orderedItems）か単品（inventoryId）のどちらか
type CheckoutRequest struct {
	OrderedItems   []usecase.OrderItemInput `json:"orderedItems" validate:"omitempty,dive"`
	InventoryID    string                   `json:"inventoryId"`
	CouponCode     string                   `json:"couponCode" validate:"max=50"`
	PointsToRedeem int64                    `json:"pointsToRedeem" validate:"min=0"`
}

func (r CheckoutRequest) toInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Items:          r.OrderedItems,
		InventoryID:    r.InventoryID,
		CouponCode:     r.CouponCode,
		PointsToRedeem: r.PointsToRedeem,
	}
}

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/checkout", authed(cfg, userRepo)...)

	g.POST("/quote", h.quote)
	g.POST("", h.placeOrder)
}

// 見積もりだけ（保存しない）
func (h *CheckoutHandler) quote(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	q, err := h.uc.Quote(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	o, err := h.uc.PlaceOrder(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}
