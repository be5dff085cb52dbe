package repository

import (
	"context"

	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users          repo.UserRepository
	inventoryItems repo.InventoryItemRepository
	orders         repo.OrderRepository
	orderLineItems repo.OrderLineItemRepository
	points         repo.PointsRepository
	auditLogs      repo.AuditLogRepository
}

func (r *txReposGorm) Users() repo.UserRepository                   { return r.users }
func (r *txReposGorm) InventoryItems() repo.InventoryItemRepository { return r.inventoryItems }
func (r *txReposGorm) Orders() repo.OrderRepository                 { return r.orders }
func (r *txReposGorm) OrderLineItems() repo.OrderLineItemRepository { return r.orderLineItems }
func (r *txReposGorm) Points() repo.PointsRepository                { return r.points }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository           { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

var _ repo.TransactionManager = (*TxManagerGorm)(nil)

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:          NewUserGormRepository(tx),
			inventoryItems: NewInventoryItemGormRepository(tx),
			orders:         NewOrderGormRepository(tx),
			orderLineItems: NewOrderLineItemGormRepository(tx),
			points:         NewPointsGormRepository(tx),
			auditLogs:      NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
