package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 仕入先（注文とは独立）
type Supplier struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);not null" json:"email"`
	ContactNumber string    `gorm:"type:varchar(30);not null" json:"contactNumber"`
	Address       string    `gorm:"type:text;not null" json:"address"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
