package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	"github.com/gimhantharuke456/sachi-itpm/internal/domain/pricing"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"
	infrarepo "github.com/gimhantharuke456/sachi-itpm/internal/infra/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 送ったイベントを記録するだけ
type recordingPublisher struct {
	mu      sync.Mutex
	events  []string
	failAll bool
}

func (p *recordingPublisher) record(kind string, o model.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failAll {
		return errors.New("broker down")
	}
	p.events = append(p.events, kind+":"+o.ID)
	return nil
}

func (p *recordingPublisher) OrderCreated(_ context.Context, o model.Order) error {
	return p.record("created", o)
}
func (p *recordingPublisher) OrderUpdated(_ context.Context, o model.Order) error {
	return p.record("updated", o)
}
func (p *recordingPublisher) OrderDeleted(_ context.Context, o model.Order) error {
	return p.record("deleted", o)
}

type env struct {
	db        *gorm.DB
	publisher *recordingPublisher
	metrics   *metrics.Metrics

	adminOrders *AdminOrderUsecase
	orders      *OrderUsecase
	checkout    *CheckoutUsecase
	points      *PointsUsecase
	inventory   *InventoryUsecase
	suppliers   *SupplierUsecase
	users       *UserUsecase
	auth        *AuthUsecase
	audit       *AuditLogUsecase
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb := testutil.NewDB(t)
	log := zap.NewNop()
	pub := &recordingPublisher{}
	m := metrics.New()

	userRepo := infrarepo.NewUserGormRepository(gdb)
	itemRepo := infrarepo.NewInventoryItemGormRepository(gdb)
	orderRepo := infrarepo.NewOrderGormRepository(gdb)
	lineRepo := infrarepo.NewOrderLineItemGormRepository(gdb)
	pointsRepo := infrarepo.NewPointsGormRepository(gdb)
	auditRepo := infrarepo.NewAuditLogGormRepository(gdb)
	tx := infrarepo.NewTxManagerGorm(gdb)

	return &env{
		db:          gdb,
		publisher:   pub,
		metrics:     m,
		adminOrders: NewAdminOrderUsecase(orderRepo, tx, pub, m, log),
		orders:      NewOrderUsecase(orderRepo),
		checkout:    NewCheckoutUsecase(itemRepo, pointsRepo, tx, pricing.DefaultCoupons(), pub, m, log),
		points:      NewPointsUsecase(pointsRepo, tx, log),
		inventory:   NewInventoryUsecase(itemRepo, lineRepo, log),
		suppliers:   NewSupplierUsecase(infrarepo.NewSupplierGormRepository(gdb), log),
		users:       NewUserUsecase(userRepo, tx, fakeHasher{}, log),
		auth:        NewAuthUsecase(userRepo, log),
		audit:       NewAuditLogUsecase(auditRepo),
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, status, he.Status, he.Message)
}

