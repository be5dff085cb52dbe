package server

import (
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/domain/pricing"
	"github.com/gimhantharuke456/sachi-itpm/internal/handler"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/db"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"
	infraRepo "github.com/gimhantharuke456/sachi-itpm/internal/infra/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"
	auth "github.com/gimhantharuke456/sachi-itpm/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher is the RabbitMQ publisher or its no-op stand-in.
type EventPublisher interface {
	usecase.OrderEventPublisher
	IsHealthy() bool
}

// NewAPI wires repositories, usecases and handlers onto a configured echo.
func NewAPI(cfg config.Config, gdb *gorm.DB, publisher EventPublisher, m *metrics.Metrics, log *zap.Logger) *echo.Echo {
	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gdb)
	itemRepo := infraRepo.NewInventoryItemGormRepository(gdb)
	supplierRepo := infraRepo.NewSupplierGormRepository(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	lineRepo := infraRepo.NewOrderLineItemGormRepository(gdb)
	pointsRepo := infraRepo.NewPointsGormRepository(gdb)
	auditRepo := infraRepo.NewAuditLogGormRepository(gdb)
	tx := infraRepo.NewTxManagerGorm(gdb)

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMin)*time.Minute)
	idGen := auth.UUIDGenerator{}
	clock := auth.SystemClock{}

	coupons := pricing.DefaultCoupons()
	if len(cfg.Coupons) > 0 {
		coupons = pricing.NewCoupons(cfg.Coupons)
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	authUC := usecase.NewAuthUsecase(userRepo, log)
	userUC := usecase.NewUserUsecase(userRepo, tx, hasher, log)
	inventoryUC := usecase.NewInventoryUsecase(itemRepo, lineRepo, log)
	supplierUC := usecase.NewSupplierUsecase(supplierRepo, log)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, tx, publisher, m, log)
	orderUC := usecase.NewOrderUsecase(orderRepo)
	checkoutUC := usecase.NewCheckoutUsecase(itemRepo, pointsRepo, tx, coupons, publisher, m, log)
	pointsUC := usecase.NewPointsUsecase(pointsRepo, tx, log)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	e := NewEcho(cfg, m, log)
	RegisterRoutes(e, cfg, userRepo, Handlers{
		Health:     handler.NewHealthHandler(db.Checker{DB: gdb}, publisher, m, log),
		Auth:       handler.NewAuthHandler(registerUC, loginUC, authUC, log),
		Inventory:  handler.NewInventoryHandler(inventoryUC),
		Suppliers:  handler.NewSupplierHandler(supplierUC),
		AdminUsers: handler.NewAdminUserHandler(userUC, authUC, registerUC, log),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Points:     handler.NewPointsHandler(pointsUC),
		AuditLogs:  handler.NewAuditLogHandler(auditUC),
	})
	return e
}
