package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 注文と在庫アイテムの中間テーブル
type OrderLineItem struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID     string         `gorm:"type:varchar(36);not null;index" json:"orderId"`
	InventoryID string         `gorm:"type:varchar(36);not null;index" json:"inventoryId"`
	Inventory   *InventoryItem `gorm:"foreignKey:InventoryID" json:"inventory,omitempty"`
	Quantity    int64          `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (l *OrderLineItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
