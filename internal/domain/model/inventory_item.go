package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(1024)" json:"imageUrl"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
