package server

import (
	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/handler"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers is every route group the API serves.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Inventory  *handler.InventoryHandler
	Suppliers  *handler.SupplierHandler
	AdminUsers *handler.AdminUserHandler
	AdminOrder *handler.AdminOrderHandler
	Orders     *handler.OrderHandler
	Checkout   *handler.CheckoutHandler
	Points     *handler.PointsHandler
	AuditLogs  *handler.AuditLogHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	//公開
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Inventory.RegisterRoutes(e, cfg, userRepo)

	//ログイン必須
	h.Orders.RegisterRoutes(e, cfg, userRepo)
	h.Checkout.RegisterRoutes(e, cfg, userRepo)
	h.Points.RegisterRoutes(e, cfg, userRepo)

	//ADMIN
	h.AdminUsers.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.Suppliers.RegisterRoutes(e, cfg, userRepo)
	h.AuditLogs.RegisterRoutes(e, cfg, userRepo)
}
