package model

import "time"

// 注文更新、ポイント変更など。
type AuditAction string

const (
	AuditActionUpdateOrder AuditAction = "UPDATE_ORDER"
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
	AuditActionSetPoints   AuditAction = "SET_POINTS"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder  AuditResourceType = "order"
	AuditResourcePoints AuditResourceType = "points"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のID。
	ActorUserID string `gorm:"type:varchar(36);not null;index" json:"actorUserId"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`
	ResourceID   string            `gorm:"type:varchar(36);not null;index" json:"resourceId"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"beforeJson"`
	AfterJSON  string `gorm:"type:text" json:"afterJson"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
