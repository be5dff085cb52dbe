package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Username      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	ContactNumber string     `gorm:"type:varchar(30);not null" json:"contactNumber"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"column:password_hash;not null" json:"-"`
	Role          Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	TokenVersion  int        `gorm:"not null;default:0" json:"tokenVersion"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// IDが空なら採番
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// "User"/"Admin"など大小文字は問わない。空はUSER
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(RoleUser):
		return RoleUser, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}
