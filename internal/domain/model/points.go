package model

import "time"

// ポイント残高（1ポイント=1通貨単位）
type Points struct {
	UserID    string    `gorm:"type:varchar(36);primaryKey" json:"userId"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
