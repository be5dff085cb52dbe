package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 注文。totalBillは呼び出し側が計算した値をそのまま保存する。
type Order struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string          `gorm:"type:varchar(36);not null;index" json:"userId"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TotalBill    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalBill"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	CouponCode   *string         `gorm:"type:varchar(50)" json:"couponCode,omitempty"`
	OrderedItems []OrderLineItem `gorm:"foreignKey:OrderID" json:"orderedItems"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
